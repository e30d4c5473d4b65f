package entity

type Evaluation struct {
	GoalAchieved bool    `json:"goal_achieved"`
	Confidence   float64 `json:"confidence"`
	Feedback     string  `json:"feedback"`
}

type EvaluationCriteria struct {
	Goal     string
	Paradigm ParadigmType
	Result   string
}

// Fields returns the evaluation in the shape merged into a percept.
func (e Evaluation) Fields() map[string]any {
	return map[string]any{
		"goal_achieved": e.GoalAchieved,
		"confidence":    e.Confidence,
		"feedback":      e.Feedback,
	}
}
