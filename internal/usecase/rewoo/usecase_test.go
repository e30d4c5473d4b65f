package rewoo

import (
	"context"
	"testing"

	"paradigm-agent/internal/domain/entity"
	"paradigm-agent/internal/infrastructure/logger"
	"paradigm-agent/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actionAndResult(n int) []string {
	replies := make([]string, 0, n*2)
	for range n {
		replies = append(replies, `{"name": "search", "args": {"query": "flights"}}`, " cheapest fare is $120 ")
	}
	return replies
}

func newUseCase(llm *testutil.ScriptedLLM, ui *testutil.RecordingUI) *UseCase {
	return New(llm, ui, logger.NewNopLogger(), Config{Model: "llama3"})
}

func TestRunExecutesEveryPlanStep(t *testing.T) {
	replies := append([]string{`{"steps": ["Research flights", "Book hotel", "Pack"]}`}, actionAndResult(3)...)
	llm := testutil.NewScriptedLLM(replies...)
	ui := &testutil.RecordingUI{}
	proc := &testutil.CountingProcessor{}
	uc := newUseCase(llm, ui)

	report, err := uc.Run(context.Background(), "plan a trip", entity.RunOptions{MaxSteps: 5}, proc)
	require.NoError(t, err)

	assert.Equal(t, entity.ParadigmReWOO, report.Paradigm)
	assert.Equal(t, 3, report.StepsExecuted)
	assert.Equal(t, 7, llm.Calls())
	assert.Len(t, uc.History(), 6)
	assert.Len(t, proc.Percepts, 3)
	assert.Equal(t, "cheapest fare is $120", proc.Percepts[0].Content)
	assert.Equal(t, []string{"Research flights", "Book hotel", "Pack"}, uc.Plan().Steps)
	assert.Contains(t, ui.Events, "message: Execution completed!")
}

func TestRunBoundedByMaxSteps(t *testing.T) {
	replies := append([]string{`{"steps": ["a", "b", "c", "d"]}`}, actionAndResult(4)...)
	llm := testutil.NewScriptedLLM(replies...)
	uc := newUseCase(llm, &testutil.RecordingUI{})

	report, err := uc.Run(context.Background(), "plan a trip", entity.RunOptions{MaxSteps: 2}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.StepsExecuted)
	assert.Equal(t, 5, llm.Calls())
}

func TestRunEmptyPlan(t *testing.T) {
	llm := testutil.NewScriptedLLM(`{"steps": []}`)
	ui := &testutil.RecordingUI{}
	uc := newUseCase(llm, ui)

	report, err := uc.Run(context.Background(), "plan a trip", entity.RunOptions{}, nil)
	require.NoError(t, err)

	assert.Zero(t, report.StepsExecuted)
	assert.Zero(t, ui.ConfirmCalls)
	assert.Empty(t, report.Context)
}

func TestRunRendersStepsInOrder(t *testing.T) {
	replies := append([]string{`{"steps": [{"id": 1, "description": "Research"}]}`}, actionAndResult(1)...)
	llm := testutil.NewScriptedLLM(replies...)
	ui := &testutil.RecordingUI{}
	uc := newUseCase(llm, ui)

	_, err := uc.Run(context.Background(), "plan a trip", entity.RunOptions{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"goal: plan a trip",
		"plan: 1 steps",
		"step 1/1",
		`Action: search ({"query":"flights"})`,
		"Result: cheapest fare is $120",
		"message: Execution completed!",
	}, ui.Events)
	assert.Equal(t, []string{"Step 1: Research"}, uc.Plan().Steps)
	assert.Contains(t, llm.Requests[1].Prompt, "For this step:\nStep 1: Research")
}

func TestRunQuit(t *testing.T) {
	replies := append([]string{`{"steps": ["a", "b", "c"]}`}, actionAndResult(3)...)
	llm := testutil.NewScriptedLLM(replies...)
	ui := &testutil.RecordingUI{Confirms: []bool{true, false}}
	uc := newUseCase(llm, ui)

	report, err := uc.Run(context.Background(), "plan a trip", entity.RunOptions{}, nil)
	require.NoError(t, err)

	assert.True(t, report.StoppedByUser)
	assert.Equal(t, 2, report.StepsExecuted)
	assert.Equal(t, 5, llm.Calls())
}

func TestRunInvalidPlan(t *testing.T) {
	llm := testutil.NewScriptedLLM("1. research 2. book")
	uc := newUseCase(llm, &testutil.RecordingUI{})

	_, err := uc.Run(context.Background(), "plan a trip", entity.RunOptions{}, nil)

	var invalid *entity.InvalidModelOutputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, entity.StagePlan, invalid.Stage)
	assert.Empty(t, uc.History())
}

func TestRunMixedPlanSteps(t *testing.T) {
	llm := testutil.NewScriptedLLM(`{"steps": [{"id": 1, "description": "a"}, "b"]}`)
	uc := newUseCase(llm, &testutil.RecordingUI{})

	_, err := uc.Run(context.Background(), "plan a trip", entity.RunOptions{}, nil)

	var mismatch *entity.StructuralMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestRunInvalidActionLeavesHistoryUnchanged(t *testing.T) {
	llm := testutil.NewScriptedLLM(`{"steps": ["a", "b"]}`, `{"name": "x", "args": {}}`, "done", "not json")
	uc := newUseCase(llm, &testutil.RecordingUI{})

	_, err := uc.Run(context.Background(), "plan a trip", entity.RunOptions{}, nil)

	var invalid *entity.InvalidModelOutputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, entity.StageAction, invalid.Stage)
	assert.Len(t, uc.History(), 2)
}

func TestRunVerboseContextHasOnlyActionsAndResults(t *testing.T) {
	replies := append([]string{`{"steps": ["a"]}`}, `{"name": "x", "args": {"n": 1}}`, `{"goal_achieved": true}`)
	llm := testutil.NewScriptedLLM(replies...)
	ui := &testutil.RecordingUI{}
	uc := newUseCase(llm, ui)

	_, err := uc.Run(context.Background(), "plan a trip", entity.RunOptions{Verbose: true}, &testutil.CountingProcessor{})
	require.NoError(t, err)

	require.Len(t, ui.Contexts, 1)
	assert.Equal(t, "Action: x ({\"n\":1})\nResult: {\"goal_achieved\": true}", ui.Contexts[0])
	require.Len(t, ui.States, 1)
	assert.Equal(t, true, ui.States[0]["goal_achieved"])
}
