package stub

import (
	"encoding/json"
	"strings"
	"sync"
)

type Request struct {
	Endpoint string
	Model    string
	Prompt   string
	System   string
}

type Responder interface {
	Respond(req Request) string
}

type ResponderFunc func(req Request) string

func (f ResponderFunc) Respond(req Request) string {
	return f(req)
}

// ScriptedResponder replies with a fixed sequence, then with Fallback.
type ScriptedResponder struct {
	mu        sync.Mutex
	responses []string
	next      int
	Fallback  string
}

func NewScriptedResponder(responses ...string) *ScriptedResponder {
	return &ScriptedResponder{responses: responses}
}

func (r *ScriptedResponder) Respond(Request) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.next >= len(r.responses) {
		return r.Fallback
	}
	resp := r.responses[r.next]
	r.next++
	return resp
}

func (r *ScriptedResponder) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.responses) - r.next
}

// CannedResponder recognizes the paradigm prompts by the JSON shape they ask
// for and answers with a well-formed reply, wrapped in a code fence the way
// local models often do.
type CannedResponder struct{}

func (CannedResponder) Respond(req Request) string {
	p := req.Prompt
	switch {
	case strings.Contains(p, `"steps"`):
		return fenced(map[string]any{
			"steps": []string{
				"Step 1: Clarify what the goal requires",
				"Step 2: Collect the information needed",
				"Step 3: Summarize the outcome",
			},
		})
	case strings.Contains(p, `"goal_achieved"`):
		return fenced(map[string]any{
			"goal_achieved": false,
			"confidence":    0.4,
			"feedback":      "More steps are needed before the goal is met.",
		})
	case strings.Contains(p, `"name": "action_name"`):
		return fenced(map[string]any{
			"name": "take_note",
			"args": map[string]any{"text": firstLine(afterColon(p))},
		})
	case strings.Contains(p, `"content": "I think`):
		return fenced(map[string]any{
			"content": "I think the next useful move is to break the goal into a concrete first action.",
		})
	default:
		return "The action completed and the environment now reflects it."
	}
}

func fenced(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return "```json\n" + string(data) + "\n```"
}

func afterColon(s string) string {
	if idx := strings.Index(s, ":\n"); idx >= 0 {
		return s[idx+2:]
	}
	return s
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	if len(s) > 80 {
		s = s[:80]
	}
	return s
}
