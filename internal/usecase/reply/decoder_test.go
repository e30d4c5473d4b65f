package reply

import (
	"encoding/json"
	"testing"

	"paradigm-agent/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThought(t *testing.T) {
	d := NewDecoder(Options{})

	thought, err := d.Thought(`{"content": "I think I should search"}`)
	require.NoError(t, err)
	assert.Equal(t, "I think I should search", thought.Content)
}

func TestThoughtInvalidJSON(t *testing.T) {
	d := NewDecoder(Options{})

	_, err := d.Thought("I think I should search")
	require.Error(t, err)

	var invalid *entity.InvalidModelOutputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, entity.StageThought, invalid.Stage)
	assert.Equal(t, "I think I should search", invalid.Raw)
	assert.Equal(t, "invalid thought format from LLM: I think I should search", err.Error())
}

func TestThoughtMissingContent(t *testing.T) {
	d := NewDecoder(Options{})

	_, err := d.Thought(`{"text": "hello"}`)

	var mismatch *entity.StructuralMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, entity.StageThought, mismatch.Stage)
	assert.Equal(t, `{"text": "hello"}`, mismatch.Raw)
}

func TestThoughtNotAnObject(t *testing.T) {
	d := NewDecoder(Options{})

	_, err := d.Thought(`"just a string"`)

	var mismatch *entity.StructuralMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestTrailingData(t *testing.T) {
	d := NewDecoder(Options{})

	_, err := d.Thought(`{"content": "a"} {"content": "b"}`)

	var invalid *entity.InvalidModelOutputError
	assert.ErrorAs(t, err, &invalid)
}

func TestAction(t *testing.T) {
	d := NewDecoder(Options{})

	action, err := d.Action(`{"name": "search", "args": {"query": "go", "limit": 3}}`)
	require.NoError(t, err)

	assert.Equal(t, "search", action.Name)
	assert.Equal(t, "go", action.Args["query"])
	assert.Equal(t, json.Number("3"), action.Args["limit"])
	assert.Equal(t, `Action: search ({"limit":3,"query":"go"})`, action.Line())
}

func TestActionMissingArgs(t *testing.T) {
	d := NewDecoder(Options{})

	_, err := d.Action(`{"name": "search"}`)

	var mismatch *entity.StructuralMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, entity.StageAction, mismatch.Stage)
}

func TestActionArgsWrongType(t *testing.T) {
	d := NewDecoder(Options{})

	_, err := d.Action(`{"name": "search", "args": ["go"]}`)

	var mismatch *entity.StructuralMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestPlanStrings(t *testing.T) {
	d := NewDecoder(Options{})

	plan, err := d.Plan(`{"steps": ["Research flights", "Book hotel"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Research flights", "Book hotel"}, plan.Steps)
}

func TestPlanObjectsAreFlattened(t *testing.T) {
	d := NewDecoder(Options{})

	plan, err := d.Plan(`{"steps": [{"id": 1, "description": "Research"}, {"id": "2", "description": "Book"}]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Step 1: Research", "Step 2: Book"}, plan.Steps)
}

func TestPlanEmpty(t *testing.T) {
	d := NewDecoder(Options{})

	plan, err := d.Plan(`{"steps": []}`)
	require.NoError(t, err)
	assert.Empty(t, plan.Steps)
}

func TestPlanMismatches(t *testing.T) {
	d := NewDecoder(Options{})

	tests := []struct {
		name string
		raw  string
	}{
		{name: "missing steps", raw: `{"plan": []}`},
		{name: "steps not a list", raw: `{"steps": "do it"}`},
		{name: "object without description", raw: `{"steps": [{"id": 1}]}`},
		{name: "object then string", raw: `{"steps": [{"id": 1, "description": "a"}, "b"]}`},
		{name: "string then object", raw: `{"steps": ["a", {"id": 2, "description": "b"}]}`},
		{name: "number step", raw: `{"steps": [1, 2]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Plan(tt.raw)

			var mismatch *entity.StructuralMismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, entity.StagePlan, mismatch.Stage)
			assert.Equal(t, tt.raw, mismatch.Raw)
		})
	}
}

func TestEvaluation(t *testing.T) {
	d := NewDecoder(Options{})

	eval, err := d.Evaluation(`{"goal_achieved": true, "confidence": 0.8, "feedback": "done"}`)
	require.NoError(t, err)
	assert.True(t, eval.GoalAchieved)
	assert.InDelta(t, 0.8, eval.Confidence, 1e-9)
	assert.Equal(t, "done", eval.Feedback)
}

func TestEvaluationWrongType(t *testing.T) {
	d := NewDecoder(Options{})

	_, err := d.Evaluation(`{"goal_achieved": "yes"}`)

	var mismatch *entity.StructuralMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestRepairJSON(t *testing.T) {
	raw := `{"content": "hello",}`

	_, err := NewDecoder(Options{}).Thought(raw)
	var invalid *entity.InvalidModelOutputError
	require.ErrorAs(t, err, &invalid)

	thought, err := NewDecoder(Options{RepairJSON: true}).Thought(raw)
	require.NoError(t, err)
	assert.Equal(t, "hello", thought.Content)
}

func TestRepairJSONKeepsProseInvalid(t *testing.T) {
	for _, raw := range []string{"not json", "Sure! Here is my thought."} {
		t.Run(raw, func(t *testing.T) {
			_, err := NewDecoder(Options{RepairJSON: true}).Thought(raw)

			var invalid *entity.InvalidModelOutputError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, raw, invalid.Raw)
		})
	}
}
