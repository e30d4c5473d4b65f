package agenttype

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"paradigm-agent/internal/application/port/output"
	"paradigm-agent/internal/domain/entity"
	"paradigm-agent/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replayParadigm hands each scripted result to the processor, one per step.
type replayParadigm struct {
	results   []string
	processed []entity.Percept
	gotOpts   entity.RunOptions
	err       error
}

func (p *replayParadigm) Type() entity.ParadigmType {
	return entity.ParadigmReAct
}

func (p *replayParadigm) Run(ctx context.Context, goal string, opts entity.RunOptions, processor output.ResultProcessor) (*entity.RunReport, error) {
	p.gotOpts = opts
	if p.err != nil {
		return nil, p.err
	}
	for _, r := range p.results {
		out, err := processor.ProcessResult(ctx, entity.NewPercept(r))
		if err != nil {
			return nil, err
		}
		p.processed = append(p.processed, out)
	}
	return &entity.RunReport{Paradigm: p.Type(), Goal: goal, StepsExecuted: len(p.results)}, nil
}

type stubEvaluator struct {
	eval     *entity.Evaluation
	err      error
	criteria []entity.EvaluationCriteria
}

func (e *stubEvaluator) Evaluate(ctx context.Context, criteria entity.EvaluationCriteria) (*entity.Evaluation, error) {
	e.criteria = append(e.criteria, criteria)
	return e.eval, e.err
}

func TestSimpleReflexIsIdentity(t *testing.T) {
	p := &replayParadigm{results: []string{`{"a": 1}`, "plain text"}}
	agent := NewSimpleReflex(p)

	report, err := agent.Run(context.Background(), "goal", entity.RunOptions{MaxSteps: 2, Verbose: true})
	require.NoError(t, err)

	assert.Equal(t, entity.AgentTypeSimpleReflex, report.AgentType)
	assert.Equal(t, entity.RunOptions{MaxSteps: 2, Verbose: true}, p.gotOpts)
	require.Len(t, p.processed, 2)
	assert.Equal(t, entity.NewPercept(`{"a": 1}`), p.processed[0])
	assert.Equal(t, "plain text", p.processed[1].Content)
	assert.Nil(t, p.processed[1].Fields)
}

func TestModelBasedReflexCounters(t *testing.T) {
	p := &replayParadigm{results: []string{`{"a":1}`, `{"goal_achieved":true}`, `{"a":2}`}}
	agent := NewModelBasedReflex(p)

	report, err := agent.Run(context.Background(), "goal", entity.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, entity.AgentTypeModelBasedReflex, report.AgentType)

	assert.Equal(t, 3, agent.ActionsTaken())
	assert.Equal(t, 1, agent.GoalsAchieved())
	assert.Equal(t, []string{`{"a":1}`, `{"goal_achieved":true}`, `{"a":2}`}, agent.ActionHistory())
	assert.Equal(t, map[string]any{"a": json.Number("2"), "goal_achieved": true}, agent.EnvironmentState())

	require.Len(t, p.processed, 3)
	wantCounters := [][2]int{{1, 0}, {2, 1}, {3, 1}}
	for i, want := range wantCounters {
		fields := p.processed[i].Fields
		assert.Equal(t, want[0], fields["actions_taken"], "actions_taken at step %d", i+1)
		assert.Equal(t, want[1], fields["goals_achieved"], "goals_achieved at step %d", i+1)
	}

	assert.Equal(t, map[string]any{"a": json.Number("1")}, p.processed[0].Fields["model_state"])
	assert.Equal(t, map[string]any{"a": json.Number("2"), "goal_achieved": true}, p.processed[2].Fields["model_state"])
}

func TestModelBasedReflexPlainText(t *testing.T) {
	p := &replayParadigm{results: []string{"the door is open"}}
	agent := NewModelBasedReflex(p)

	_, err := agent.Run(context.Background(), "goal", entity.RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, agent.ActionsTaken())
	assert.Empty(t, agent.EnvironmentState())
	assert.Nil(t, p.processed[0].Fields)
	assert.Equal(t, "the door is open", p.processed[0].Content)
}

func TestModelBasedReflexTruthyGoal(t *testing.T) {
	p := &replayParadigm{results: []string{
		`{"goal_achieved": false}`,
		`{"goal_achieved": 0}`,
		`{"goal_achieved": ""}`,
		`{"goal_achieved": "yes"}`,
		`{"goal_achieved": 1}`,
	}}
	agent := NewModelBasedReflex(p)

	_, err := agent.Run(context.Background(), "goal", entity.RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, 5, agent.ActionsTaken())
	assert.Equal(t, 2, agent.GoalsAchieved())
}

func TestModelBasedReflexEvaluatorMergesVerdict(t *testing.T) {
	p := &replayParadigm{results: []string{"booked the hotel"}}
	eval := &stubEvaluator{eval: &entity.Evaluation{GoalAchieved: true, Confidence: 0.9, Feedback: "done"}}
	agent := NewModelBasedReflex(p, WithEvaluator(eval), WithLogger(logger.NewNopLogger()))

	_, err := agent.Run(context.Background(), "plan a trip", entity.RunOptions{})
	require.NoError(t, err)

	require.Len(t, eval.criteria, 1)
	assert.Equal(t, entity.EvaluationCriteria{Goal: "plan a trip", Paradigm: entity.ParadigmReAct, Result: "booked the hotel"}, eval.criteria[0])
	assert.Equal(t, 1, agent.GoalsAchieved())
	assert.Equal(t, "done", p.processed[0].Fields["feedback"])
	assert.Equal(t, 1, p.processed[0].Fields["goals_achieved"])
}

func TestModelBasedReflexEvaluatorFailureIgnored(t *testing.T) {
	p := &replayParadigm{results: []string{`{"a": 1}`}}
	eval := &stubEvaluator{err: errors.New("model offline")}
	agent := NewModelBasedReflex(p, WithEvaluator(eval), WithLogger(logger.NewNopLogger()))

	_, err := agent.Run(context.Background(), "goal", entity.RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, agent.ActionsTaken())
	assert.Zero(t, agent.GoalsAchieved())
	assert.NotContains(t, p.processed[0].Fields, "feedback")
}

func TestRunPropagatesParadigmError(t *testing.T) {
	p := &replayParadigm{err: entity.ErrInterrupted}

	_, err := NewModelBasedReflex(p).Run(context.Background(), "goal", entity.RunOptions{})
	assert.ErrorIs(t, err, entity.ErrInterrupted)

	_, err = NewSimpleReflex(p).Run(context.Background(), "goal", entity.RunOptions{})
	assert.ErrorIs(t, err, entity.ErrInterrupted)
}
