package entity

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// Percept is a step result as seen by an agent type. Fields is non-nil only
// when the result text is a JSON object.
type Percept struct {
	Content string
	Fields  map[string]any
}

func NewPercept(content string) Percept {
	p := Percept{Content: content}

	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return p
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return p
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return p
	}
	if fields == nil {
		fields = map[string]any{}
	}
	p.Fields = fields
	return p
}

func (p Percept) IsMapping() bool {
	return p.Fields != nil
}
