package prompts

import (
	"strings"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReActThink(t *testing.T) {
	prompt, err := ReActThink(ThinkData{
		Goal:     "Plan a trip",
		Context:  "Thought: start with dates",
		Language: "ja",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt, "Goal: Plan a trip\n\nPrevious steps:\nThought: start with dates\n"))
	assert.Contains(t, prompt, "Please respond in ja language.")
	assert.Contains(t, prompt, `"content": "I think ..."`)
	assert.True(t, strings.HasSuffix(prompt, "only return the JSON object."))
}

func TestReActAct(t *testing.T) {
	prompt, err := ReActAct(ThoughtActionData{Thought: "I should search", Language: "en"})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Based on this thought:\nI should search")
	assert.Contains(t, prompt, `"name": "action_name"`)
	assert.Contains(t, prompt, `"args": {`)
}

func TestReActObserve(t *testing.T) {
	prompt, err := ReActObserve(ActionData{ActionName: "search", ActionArgs: `{"q":"go"}`, Language: "en"})
	require.NoError(t, err)

	assert.Contains(t, prompt, `search with args {"q":"go"}`)
	assert.Contains(t, prompt, "What would be observed?")
	assert.NotContains(t, prompt, "JSON")
}

func TestReWOOPrompts(t *testing.T) {
	plan, err := ReWOOPlan(PlanData{Goal: "Write a report", Language: "en"})
	require.NoError(t, err)
	assert.Contains(t, plan, "Goal: Write a report")
	assert.Contains(t, plan, `"steps"`)
	assert.Contains(t, plan, "simple strings, not objects")

	action, err := ReWOOAction(StepActionData{Step: "Step 1: gather data", Language: "en"})
	require.NoError(t, err)
	assert.Contains(t, action, "For this step:\nStep 1: gather data")

	execute, err := ReWOOExecute(ActionData{ActionName: "gather", ActionArgs: "{}", Language: "en"})
	require.NoError(t, err)
	assert.Contains(t, execute, "gather with args {}")
	assert.Contains(t, execute, "What would be the result?")
}

func TestEvaluation(t *testing.T) {
	prompt, err := Evaluation(EvaluationData{Goal: "Fix the bug", ResultLabel: "observation", Result: "tests pass"})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Evaluator Agent")
	assert.Contains(t, prompt, "Latest observation:\ntests pass")
	assert.Contains(t, prompt, `"goal_achieved"`)
}

func TestExecuteTrimsTrailingNewlines(t *testing.T) {
	tmpl := template.Must(template.New("custom").Parse("Hello {{.Goal}}\n\n"))
	out, err := execute(tmpl, PlanData{Goal: "agent"})
	require.NoError(t, err)
	assert.Equal(t, "Hello agent", out)
}

func TestExecuteMissingField(t *testing.T) {
	tmpl := template.Must(template.New("struct").Parse("Test {{.InvalidField}}"))
	_, err := execute(tmpl, PlanData{})
	assert.Error(t, err)
}
