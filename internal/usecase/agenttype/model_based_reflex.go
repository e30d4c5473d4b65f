package agenttype

import (
	"context"
	"encoding/json"
	"maps"
	"slices"

	"paradigm-agent/internal/application/port/input"
	"paradigm-agent/internal/application/port/output"
	"paradigm-agent/internal/domain/entity"
)

var (
	_ input.AgentExecutor    = (*ModelBasedReflex)(nil)
	_ output.ResultProcessor = (*ModelBasedReflex)(nil)
)

// ModelBasedReflex keeps an internal model of the environment built from
// every step result and annotates mapping results with it.
type ModelBasedReflex struct {
	paradigm  input.Paradigm
	evaluator output.GoalEvaluator
	logger    output.LoggerPort
	goal      string

	environmentState map[string]any
	actionHistory    []string
	actionsTaken     int
	goalsAchieved    int
}

type Option func(*ModelBasedReflex)

// WithEvaluator asks the evaluator about every result before it is processed.
func WithEvaluator(evaluator output.GoalEvaluator) Option {
	return func(a *ModelBasedReflex) {
		a.evaluator = evaluator
	}
}

func WithLogger(logger output.LoggerPort) Option {
	return func(a *ModelBasedReflex) {
		a.logger = logger.Named("model_based_reflex")
	}
}

func NewModelBasedReflex(paradigm input.Paradigm, opts ...Option) *ModelBasedReflex {
	a := &ModelBasedReflex{
		paradigm:         paradigm,
		environmentState: make(map[string]any),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *ModelBasedReflex) GetType() entity.AgentType {
	return entity.AgentTypeModelBasedReflex
}

func (a *ModelBasedReflex) Run(ctx context.Context, goal string, opts entity.RunOptions) (*entity.RunReport, error) {
	a.goal = goal
	return run(ctx, a.paradigm, a, a.GetType(), goal, opts)
}

func (a *ModelBasedReflex) ProcessResult(ctx context.Context, percept entity.Percept) (entity.Percept, error) {
	if a.evaluator != nil {
		percept = a.evaluate(ctx, percept)
	}

	if percept.IsMapping() {
		maps.Copy(a.environmentState, percept.Fields)
	}
	a.actionsTaken++
	a.actionHistory = append(a.actionHistory, percept.Content)

	if percept.IsMapping() && truthy(percept.Fields["goal_achieved"]) {
		a.goalsAchieved++
	}

	if !percept.IsMapping() {
		return percept, nil
	}

	fields := maps.Clone(percept.Fields)
	fields["model_state"] = a.EnvironmentState()
	fields["actions_taken"] = a.actionsTaken
	fields["goals_achieved"] = a.goalsAchieved

	if a.logger != nil {
		a.logger.Debug("Model updated", "actions_taken", a.actionsTaken, "goals_achieved", a.goalsAchieved)
	}
	return entity.Percept{Content: percept.Content, Fields: fields}, nil
}

func (a *ModelBasedReflex) EnvironmentState() map[string]any {
	return maps.Clone(a.environmentState)
}

func (a *ModelBasedReflex) ActionHistory() []string {
	return slices.Clone(a.actionHistory)
}

func (a *ModelBasedReflex) ActionsTaken() int {
	return a.actionsTaken
}

func (a *ModelBasedReflex) GoalsAchieved() int {
	return a.goalsAchieved
}

// evaluate merges the evaluator's verdict into the percept. Failures leave
// the percept untouched.
func (a *ModelBasedReflex) evaluate(ctx context.Context, percept entity.Percept) entity.Percept {
	eval, err := a.evaluator.Evaluate(ctx, entity.EvaluationCriteria{
		Goal:     a.goal,
		Paradigm: a.paradigm.Type(),
		Result:   percept.Content,
	})
	if err != nil {
		if a.logger != nil {
			a.logger.Warn("Goal evaluation failed", "error", err)
		}
		return percept
	}

	fields := maps.Clone(percept.Fields)
	if fields == nil {
		fields = make(map[string]any)
	}
	maps.Copy(fields, eval.Fields())
	return entity.Percept{Content: percept.Content, Fields: fields}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
