package input

import (
	"context"

	"paradigm-agent/internal/application/port/output"
	"paradigm-agent/internal/domain/entity"
)

type Paradigm interface {
	Type() entity.ParadigmType
	Run(ctx context.Context, goal string, opts entity.RunOptions, processor output.ResultProcessor) (*entity.RunReport, error)
}

// ParadigmDeps are the run-scoped collaborators a paradigm is built with.
type ParadigmDeps struct {
	Model  string
	LLM    output.LLMPort
	UI     output.UserInteractionPort
	Logger output.LoggerPort
}

type ParadigmFactory func(deps ParadigmDeps) Paradigm
