package output

import (
	"context"

	"paradigm-agent/internal/domain/entity"
)

type Choice struct {
	Value       string
	Label       string
	Description string
}

type UserInteractionPort interface {
	AskQuestion(ctx context.Context, question string) (string, error)
	Select(ctx context.Context, message string, choices []Choice) (string, error)
	// Confirm pauses between steps. It returns false when the user asked to quit.
	Confirm(ctx context.Context) (bool, error)

	ShowGoal(ctx context.Context, goal string)
	ShowStep(ctx context.Context, step, maxSteps int)
	ShowPlan(ctx context.Context, plan entity.Plan)
	ShowThought(ctx context.Context, thought entity.Thought)
	ShowAction(ctx context.Context, action entity.Action)
	ShowObservation(ctx context.Context, observation entity.Observation)
	ShowResult(ctx context.Context, result entity.Result)
	ShowContext(ctx context.Context, rendered string)
	ShowAgentState(ctx context.Context, state map[string]any)
	ShowMessage(ctx context.Context, message string)
	ShowError(ctx context.Context, message string)
}
