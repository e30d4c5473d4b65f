package output

import (
	"context"

	"paradigm-agent/internal/domain/entity"
)

// ResultProcessor post-processes the result of every paradigm step.
type ResultProcessor interface {
	ProcessResult(ctx context.Context, percept entity.Percept) (entity.Percept, error)
}

type GoalEvaluator interface {
	Evaluate(ctx context.Context, criteria entity.EvaluationCriteria) (*entity.Evaluation, error)
}

type GoalCatalog interface {
	ForCombination(paradigm entity.ParadigmType, agentType entity.AgentType) []entity.ExampleGoal
	Find(name string) (entity.ExampleGoal, bool)
	All() []entity.ExampleGoal
}
