package service

import (
	"sort"

	"paradigm-agent/internal/application/port/input"
	"paradigm-agent/internal/domain/entity"
)

type ParadigmEntry struct {
	Type        entity.ParadigmType
	Description string
	New         input.ParadigmFactory
}

type ParadigmRegistryImpl struct {
	paradigms map[entity.ParadigmType]ParadigmEntry
}

func NewParadigmRegistry() *ParadigmRegistryImpl {
	return &ParadigmRegistryImpl{
		paradigms: make(map[entity.ParadigmType]ParadigmEntry),
	}
}

func (r *ParadigmRegistryImpl) Register(paradigmType entity.ParadigmType, description string, factory input.ParadigmFactory) {
	r.paradigms[paradigmType] = ParadigmEntry{
		Type:        paradigmType,
		Description: description,
		New:         factory,
	}
}

func (r *ParadigmRegistryImpl) Get(paradigmType entity.ParadigmType) (ParadigmEntry, bool) {
	entry, ok := r.paradigms[paradigmType]
	return entry, ok
}

// List returns the registered paradigms sorted by type.
func (r *ParadigmRegistryImpl) List() []ParadigmEntry {
	result := make([]ParadigmEntry, 0, len(r.paradigms))
	for _, entry := range r.paradigms {
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Type < result[j].Type
	})
	return result
}

type AgentTypeEntry struct {
	Type        entity.AgentType
	Description string
	New         input.AgentExecutorFactory
}

type AgentTypeRegistryImpl struct {
	agentTypes map[entity.AgentType]AgentTypeEntry
}

func NewAgentTypeRegistry() *AgentTypeRegistryImpl {
	return &AgentTypeRegistryImpl{
		agentTypes: make(map[entity.AgentType]AgentTypeEntry),
	}
}

func (r *AgentTypeRegistryImpl) Register(agentType entity.AgentType, description string, factory input.AgentExecutorFactory) {
	r.agentTypes[agentType] = AgentTypeEntry{
		Type:        agentType,
		Description: description,
		New:         factory,
	}
}

func (r *AgentTypeRegistryImpl) Get(agentType entity.AgentType) (AgentTypeEntry, bool) {
	entry, ok := r.agentTypes[agentType]
	return entry, ok
}

func (r *AgentTypeRegistryImpl) List() []AgentTypeEntry {
	result := make([]AgentTypeEntry, 0, len(r.agentTypes))
	for _, entry := range r.agentTypes {
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Type < result[j].Type
	})
	return result
}
