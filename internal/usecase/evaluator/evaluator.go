package evaluator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"paradigm-agent/internal/application/port/output"
	"paradigm-agent/internal/domain/entity"
	"paradigm-agent/internal/infrastructure/prompts"
	"paradigm-agent/internal/usecase/reply"
)

var _ output.GoalEvaluator = (*Evaluator)(nil)

type Config struct {
	Model      string
	System     string
	RepairJSON bool
}

// Evaluator asks the model whether the latest step result achieves the goal.
type Evaluator struct {
	llm     output.LLMPort
	logger  output.LoggerPort
	decoder *reply.Decoder
	cfg     Config
}

func New(llm output.LLMPort, logger output.LoggerPort, cfg Config) *Evaluator {
	return &Evaluator{
		llm:     llm,
		logger:  logger.Named("evaluator"),
		decoder: reply.NewDecoder(reply.Options{RepairJSON: cfg.RepairJSON}),
		cfg:     cfg,
	}
}

func (e *Evaluator) Evaluate(ctx context.Context, criteria entity.EvaluationCriteria) (*entity.Evaluation, error) {
	prompt, err := e.buildEvaluationPrompt(criteria)
	if err != nil {
		return nil, err
	}

	resp, err := e.llm.Generate(ctx, output.GenerateRequest{
		Model:  e.cfg.Model,
		Prompt: prompt,
		System: e.cfg.System,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluation llm request failed: %w", err)
	}

	result, err := e.parseEvaluationResponse(resp)
	if err != nil {
		e.logger.Warn("Failed to parse evaluation response", "error", err)
		return nil, err
	}

	e.logger.Info("Evaluation completed",
		"goal_achieved", result.GoalAchieved,
		"confidence", result.Confidence,
	)

	return result, nil
}

func (e *Evaluator) buildEvaluationPrompt(criteria entity.EvaluationCriteria) (string, error) {
	label := "observation"
	if criteria.Paradigm == entity.ParadigmReWOO {
		label = "result"
	}

	prompt, err := prompts.Evaluation(prompts.EvaluationData{
		Goal:        criteria.Goal,
		ResultLabel: label,
		Result:      criteria.Result,
	})
	if err != nil {
		return "", fmt.Errorf("render evaluation prompt: %w", err)
	}
	return prompt, nil
}

// parseEvaluationResponse accepts a JSON object wrapped in surrounding prose.
func (e *Evaluator) parseEvaluationResponse(response string) (*entity.Evaluation, error) {
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")

	if start == -1 || end == -1 || end < start {
		return nil, &entity.InvalidModelOutputError{
			Stage: entity.StageEvaluation,
			Raw:   response,
			Err:   errors.New("no JSON found in response"),
		}
	}

	result, err := e.decoder.Evaluation(response[start : end+1])
	if err != nil {
		return nil, err
	}
	return &result, nil
}
