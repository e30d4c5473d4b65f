package prompts

import (
	_ "embed"
)

//go:embed react_think.txt
var ReActThinkPrompt string

//go:embed react_act.txt
var ReActActPrompt string

//go:embed react_observe.txt
var ReActObservePrompt string

//go:embed rewoo_plan.txt
var ReWOOPlanPrompt string

//go:embed rewoo_action.txt
var ReWOOActionPrompt string

//go:embed rewoo_execute.txt
var ReWOOExecutePrompt string

//go:embed evaluation.txt
var EvaluationPrompt string
