package entity

type ParadigmType string

const (
	ParadigmReAct ParadigmType = "react"
	ParadigmReWOO ParadigmType = "rewoo"
)

type AgentType string

const (
	AgentTypeSimpleReflex     AgentType = "simple_reflex"
	AgentTypeModelBasedReflex AgentType = "model_based_reflex"
)

const DefaultMaxSteps = 5

type RunOptions struct {
	MaxSteps int
	Verbose  bool
}

// Steps returns the effective step budget, falling back to DefaultMaxSteps
// when MaxSteps is not positive.
func (o RunOptions) Steps() int {
	if o.MaxSteps <= 0 {
		return DefaultMaxSteps
	}
	return o.MaxSteps
}

type RunReport struct {
	Paradigm      ParadigmType
	AgentType     AgentType
	Goal          string
	StepsExecuted int
	StoppedByUser bool
	Context       string
}
