package entity

import (
	"slices"
	"strings"
)

type historyItem interface {
	Line() string
}

// History is the append-only log of one paradigm run.
type History[T historyItem] struct {
	items []T
}

type (
	ReActHistory = History[ReActItem]
	ReWOOHistory = History[ReWOOItem]
)

func (h *History[T]) Append(item T) {
	h.items = append(h.items, item)
}

func (h *History[T]) Len() int {
	return len(h.items)
}

// Items returns a copy of the recorded items in execution order.
func (h *History[T]) Items() []T {
	return slices.Clone(h.items)
}

func (h *History[T]) Context() string {
	return RenderContext(h.items)
}

// RenderContext folds items into newline-joined context lines, preserving order.
func RenderContext[T historyItem](items []T) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.Line())
	}
	return strings.Join(lines, "\n")
}
