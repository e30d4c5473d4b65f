package service

import (
	"context"
	"testing"

	"paradigm-agent/internal/application/port/input"
	"paradigm-agent/internal/application/port/output"
	"paradigm-agent/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubParadigm struct {
	paradigmType entity.ParadigmType
	model        string
}

func (p *stubParadigm) Type() entity.ParadigmType { return p.paradigmType }

func (p *stubParadigm) Run(ctx context.Context, goal string, opts entity.RunOptions, processor output.ResultProcessor) (*entity.RunReport, error) {
	return &entity.RunReport{Paradigm: p.paradigmType, Goal: goal}, nil
}

type stubAgent struct {
	paradigm input.Paradigm
}

func (a *stubAgent) GetType() entity.AgentType { return entity.AgentTypeSimpleReflex }

func (a *stubAgent) Run(ctx context.Context, goal string, opts entity.RunOptions) (*entity.RunReport, error) {
	return a.paradigm.Run(ctx, goal, opts, nil)
}

func TestParadigmRegistry_RegisterAndGet(t *testing.T) {
	registry := NewParadigmRegistry()
	registry.Register(entity.ParadigmReWOO, "plan first", func(deps input.ParadigmDeps) input.Paradigm {
		return &stubParadigm{paradigmType: entity.ParadigmReWOO, model: deps.Model}
	})
	registry.Register(entity.ParadigmReAct, "think, act, observe", func(deps input.ParadigmDeps) input.Paradigm {
		return &stubParadigm{paradigmType: entity.ParadigmReAct, model: deps.Model}
	})

	entry, ok := registry.Get(entity.ParadigmReAct)
	require.True(t, ok)
	assert.Equal(t, "think, act, observe", entry.Description)

	paradigm := entry.New(input.ParadigmDeps{Model: "llama3"})
	assert.Equal(t, entity.ParadigmReAct, paradigm.Type())
	assert.Equal(t, "llama3", paradigm.(*stubParadigm).model)

	_, ok = registry.Get("unknown")
	assert.False(t, ok)

	list := registry.List()
	require.Len(t, list, 2)
	assert.Equal(t, entity.ParadigmReAct, list[0].Type)
	assert.Equal(t, entity.ParadigmReWOO, list[1].Type)
}

func TestAgentTypeRegistry_WrapsParadigm(t *testing.T) {
	registry := NewAgentTypeRegistry()
	registry.Register(entity.AgentTypeSimpleReflex, "stateless", func(p input.Paradigm, deps input.AgentDeps) input.AgentExecutor {
		return &stubAgent{paradigm: p}
	})

	entry, ok := registry.Get(entity.AgentTypeSimpleReflex)
	require.True(t, ok)

	agent := entry.New(&stubParadigm{paradigmType: entity.ParadigmReWOO}, input.AgentDeps{})
	report, err := agent.Run(context.Background(), "goal", entity.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, entity.ParadigmReWOO, report.Paradigm)
	assert.Equal(t, "goal", report.Goal)

	assert.Len(t, registry.List(), 1)
}
