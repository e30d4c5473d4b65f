package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ReActItem is the closed set of records a ReAct run appends to its history:
// Thought, Action and Observation.
type ReActItem interface {
	Line() string
	reactItem()
}

// ReWOOItem is the closed set of records a ReWOO run appends to its history:
// Action and Result.
type ReWOOItem interface {
	Line() string
	rewooItem()
}

type Thought struct {
	Content string
}

func (t Thought) Line() string { return "Thought: " + t.Content }
func (Thought) reactItem()     {}

type Action struct {
	Name string
	Args map[string]any
}

func (a Action) Line() string { return fmt.Sprintf("Action: %s (%s)", a.Name, a.FormatArgs()) }
func (Action) reactItem()     {}
func (Action) rewooItem()     {}

// FormatArgs renders the arguments as compact JSON with sorted keys.
func (a Action) FormatArgs() string {
	if len(a.Args) == 0 {
		return "{}"
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(a.Args); err != nil {
		return fmt.Sprint(a.Args)
	}
	return strings.TrimRight(buf.String(), "\n")
}

type Observation struct {
	Content string
}

func (o Observation) Line() string { return "Observation: " + o.Content }
func (Observation) reactItem()     {}

type Result struct {
	Content string
}

func (r Result) Line() string { return "Result: " + r.Content }
func (Result) rewooItem()     {}

type Plan struct {
	Steps []string
}
