package prompts

import (
	"bytes"
	"strings"
	"text/template"
)

type ThinkData struct {
	Goal     string
	Context  string
	Language string
}

type ThoughtActionData struct {
	Thought  string
	Language string
}

type ActionData struct {
	ActionName string
	ActionArgs string
	Language   string
}

type PlanData struct {
	Goal     string
	Language string
}

type StepActionData struct {
	Step     string
	Language string
}

type EvaluationData struct {
	Goal        string
	ResultLabel string
	Result      string
}

var (
	reactThinkTmpl   = template.Must(template.New("react_think").Parse(ReActThinkPrompt))
	reactActTmpl     = template.Must(template.New("react_act").Parse(ReActActPrompt))
	reactObserveTmpl = template.Must(template.New("react_observe").Parse(ReActObservePrompt))
	rewooPlanTmpl    = template.Must(template.New("rewoo_plan").Parse(ReWOOPlanPrompt))
	rewooActionTmpl  = template.Must(template.New("rewoo_action").Parse(ReWOOActionPrompt))
	rewooExecuteTmpl = template.Must(template.New("rewoo_execute").Parse(ReWOOExecutePrompt))
	evaluationTmpl   = template.Must(template.New("evaluation").Parse(EvaluationPrompt))
)

func ReActThink(data ThinkData) (string, error)       { return execute(reactThinkTmpl, data) }
func ReActAct(data ThoughtActionData) (string, error) { return execute(reactActTmpl, data) }
func ReActObserve(data ActionData) (string, error)    { return execute(reactObserveTmpl, data) }
func ReWOOPlan(data PlanData) (string, error)         { return execute(rewooPlanTmpl, data) }
func ReWOOAction(data StepActionData) (string, error) { return execute(rewooActionTmpl, data) }
func ReWOOExecute(data ActionData) (string, error)    { return execute(rewooExecuteTmpl, data) }
func Evaluation(data EvaluationData) (string, error)  { return execute(evaluationTmpl, data) }

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
