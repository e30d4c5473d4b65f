package output

import (
	"context"

	"paradigm-agent/internal/domain/entity"
)

type LLMPort interface {
	ListModels(ctx context.Context) ([]entity.ModelInfo, error)
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type GenerateRequest struct {
	Model  string
	Prompt string
	System string
}
