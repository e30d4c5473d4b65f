package input

import (
	"context"

	"paradigm-agent/internal/application/port/output"
	"paradigm-agent/internal/domain/entity"
)

// AgentExecutor is an agent type wrapped around a running paradigm.
type AgentExecutor interface {
	GetType() entity.AgentType
	Run(ctx context.Context, goal string, opts entity.RunOptions) (*entity.RunReport, error)
}

// AgentDeps are optional collaborators for agent types. Evaluator may be nil.
type AgentDeps struct {
	Logger    output.LoggerPort
	Evaluator output.GoalEvaluator
}

type AgentExecutorFactory func(paradigm Paradigm, deps AgentDeps) AgentExecutor
