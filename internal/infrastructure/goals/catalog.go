// Package goals serves the built-in example goals.
package goals

import (
	_ "embed"
	"fmt"

	"paradigm-agent/internal/application/port/output"
	"paradigm-agent/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

//go:embed goals.yaml
var builtinGoals []byte

var _ output.GoalCatalog = (*Catalog)(nil)

type goalRecord struct {
	Name        string `yaml:"name"`
	Paradigm    string `yaml:"paradigm"`
	AgentType   string `yaml:"agent_type"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Catalog struct {
	goals []entity.ExampleGoal
}

// NewCatalog returns the embedded catalog.
func NewCatalog() (*Catalog, error) {
	return Parse(builtinGoals)
}

func Parse(data []byte) (*Catalog, error) {
	var records []goalRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse goal catalog: %w", err)
	}

	seen := make(map[string]bool, len(records))
	goals := make([]entity.ExampleGoal, 0, len(records))
	for i, r := range records {
		if r.Name == "" || r.Description == "" {
			return nil, fmt.Errorf("goal %d: name and description are required", i+1)
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("goal %q defined twice", r.Name)
		}
		seen[r.Name] = true

		goals = append(goals, entity.ExampleGoal{
			Name:        r.Name,
			Title:       r.Title,
			Description: r.Description,
			Paradigm:    entity.ParadigmType(r.Paradigm),
			AgentType:   entity.AgentType(r.AgentType),
		})
	}
	return &Catalog{goals: goals}, nil
}

func (c *Catalog) ForCombination(paradigm entity.ParadigmType, agentType entity.AgentType) []entity.ExampleGoal {
	var out []entity.ExampleGoal
	for _, g := range c.goals {
		if g.Paradigm == paradigm && g.AgentType == agentType {
			out = append(out, g)
		}
	}
	return out
}

func (c *Catalog) Find(name string) (entity.ExampleGoal, bool) {
	for _, g := range c.goals {
		if g.Name == name {
			return g, true
		}
	}
	return entity.ExampleGoal{}, false
}

func (c *Catalog) All() []entity.ExampleGoal {
	out := make([]entity.ExampleGoal, len(c.goals))
	copy(out, c.goals)
	return out
}
