package agenttype

import (
	"context"

	"paradigm-agent/internal/application/port/input"
	"paradigm-agent/internal/application/port/output"
	"paradigm-agent/internal/domain/entity"
)

var (
	_ input.AgentExecutor    = (*SimpleReflex)(nil)
	_ output.ResultProcessor = (*SimpleReflex)(nil)
)

// SimpleReflex reacts to each result as it is, keeping no state.
type SimpleReflex struct {
	paradigm input.Paradigm
}

func NewSimpleReflex(paradigm input.Paradigm) *SimpleReflex {
	return &SimpleReflex{paradigm: paradigm}
}

func (a *SimpleReflex) GetType() entity.AgentType {
	return entity.AgentTypeSimpleReflex
}

func (a *SimpleReflex) Run(ctx context.Context, goal string, opts entity.RunOptions) (*entity.RunReport, error) {
	return run(ctx, a.paradigm, a, a.GetType(), goal, opts)
}

func (a *SimpleReflex) ProcessResult(ctx context.Context, percept entity.Percept) (entity.Percept, error) {
	return percept, nil
}

func run(
	ctx context.Context,
	paradigm input.Paradigm,
	processor output.ResultProcessor,
	agentType entity.AgentType,
	goal string,
	opts entity.RunOptions,
) (*entity.RunReport, error) {
	report, err := paradigm.Run(ctx, goal, opts, processor)
	if err != nil {
		return nil, err
	}
	report.AgentType = agentType
	return report, nil
}
