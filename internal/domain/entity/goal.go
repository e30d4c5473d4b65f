package entity

type ExampleGoal struct {
	Name        string
	Title       string
	Description string
	Paradigm    ParadigmType
	AgentType   AgentType
}
