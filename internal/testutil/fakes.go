// Package testutil holds in-memory port implementations shared by tests.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"paradigm-agent/internal/application/port/output"
	"paradigm-agent/internal/domain/entity"
)

var (
	_ output.LLMPort             = (*ScriptedLLM)(nil)
	_ output.UserInteractionPort = (*RecordingUI)(nil)
)

var ErrScriptExhausted = errors.New("no scripted reply left")

// ScriptedLLM answers Generate calls with Replies in order.
type ScriptedLLM struct {
	mu       sync.Mutex
	Replies  []string
	Models   []entity.ModelInfo
	Err      error
	Requests []output.GenerateRequest
}

func NewScriptedLLM(replies ...string) *ScriptedLLM {
	return &ScriptedLLM{Replies: replies}
}

func (l *ScriptedLLM) ListModels(ctx context.Context) ([]entity.ModelInfo, error) {
	if l.Err != nil {
		return nil, l.Err
	}
	return l.Models, nil
}

func (l *ScriptedLLM) Generate(ctx context.Context, req output.GenerateRequest) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.Requests = append(l.Requests, req)
	if l.Err != nil {
		return "", l.Err
	}
	if len(l.Replies) == 0 {
		return "", ErrScriptExhausted
	}
	reply := l.Replies[0]
	l.Replies = l.Replies[1:]
	return reply, nil
}

func (l *ScriptedLLM) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Requests)
}

// RecordingUI records everything shown and answers prompts from queues.
// An empty Confirms queue means "continue".
type RecordingUI struct {
	Answers    []string
	Selections []string
	Confirms   []bool
	ConfirmErr error

	Events        []string
	Contexts      []string
	States        []map[string]any
	ConfirmCalls  int
	SelectPrompts []string
}

func (u *RecordingUI) AskQuestion(ctx context.Context, question string) (string, error) {
	if len(u.Answers) == 0 {
		return "", entity.ErrInterrupted
	}
	answer := u.Answers[0]
	u.Answers = u.Answers[1:]
	return answer, nil
}

func (u *RecordingUI) Select(ctx context.Context, message string, choices []output.Choice) (string, error) {
	u.SelectPrompts = append(u.SelectPrompts, message)
	if len(u.Selections) == 0 {
		return "", entity.ErrInterrupted
	}
	value := u.Selections[0]
	u.Selections = u.Selections[1:]
	return value, nil
}

func (u *RecordingUI) Confirm(ctx context.Context) (bool, error) {
	u.ConfirmCalls++
	if u.ConfirmErr != nil {
		return false, u.ConfirmErr
	}
	if len(u.Confirms) == 0 {
		return true, nil
	}
	proceed := u.Confirms[0]
	u.Confirms = u.Confirms[1:]
	return proceed, nil
}

func (u *RecordingUI) ShowGoal(ctx context.Context, goal string) {
	u.Events = append(u.Events, "goal: "+goal)
}

func (u *RecordingUI) ShowStep(ctx context.Context, step, maxSteps int) {
	u.Events = append(u.Events, fmt.Sprintf("step %d/%d", step, maxSteps))
}

func (u *RecordingUI) ShowPlan(ctx context.Context, plan entity.Plan) {
	u.Events = append(u.Events, fmt.Sprintf("plan: %d steps", len(plan.Steps)))
}

func (u *RecordingUI) ShowThought(ctx context.Context, thought entity.Thought) {
	u.Events = append(u.Events, thought.Line())
}

func (u *RecordingUI) ShowAction(ctx context.Context, action entity.Action) {
	u.Events = append(u.Events, action.Line())
}

func (u *RecordingUI) ShowObservation(ctx context.Context, observation entity.Observation) {
	u.Events = append(u.Events, observation.Line())
}

func (u *RecordingUI) ShowResult(ctx context.Context, result entity.Result) {
	u.Events = append(u.Events, result.Line())
}

func (u *RecordingUI) ShowContext(ctx context.Context, rendered string) {
	u.Contexts = append(u.Contexts, rendered)
}

func (u *RecordingUI) ShowAgentState(ctx context.Context, state map[string]any) {
	u.States = append(u.States, maps.Clone(state))
}

func (u *RecordingUI) ShowMessage(ctx context.Context, message string) {
	u.Events = append(u.Events, "message: "+message)
}

func (u *RecordingUI) ShowError(ctx context.Context, message string) {
	u.Events = append(u.Events, "error: "+message)
}

// CountingProcessor passes percepts through and counts the calls.
type CountingProcessor struct {
	Percepts []entity.Percept
}

func (p *CountingProcessor) ProcessResult(ctx context.Context, percept entity.Percept) (entity.Percept, error) {
	p.Percepts = append(p.Percepts, percept)
	return percept, nil
}
