package rewoo

import (
	"context"
	"fmt"
	"strings"

	"paradigm-agent/internal/application/port/input"
	"paradigm-agent/internal/application/port/output"
	"paradigm-agent/internal/domain/entity"
	"paradigm-agent/internal/infrastructure/prompts"
	"paradigm-agent/internal/usecase/reply"
)

var _ input.Paradigm = (*UseCase)(nil)

const defaultLanguage = "en"

type Config struct {
	Model      string
	Language   string
	System     string
	RepairJSON bool
}

// UseCase plans once, then acts on each plan step in order.
type UseCase struct {
	llm     output.LLMPort
	ui      output.UserInteractionPort
	logger  output.LoggerPort
	decoder *reply.Decoder
	cfg     Config

	plan    entity.Plan
	history entity.ReWOOHistory
}

func New(
	llm output.LLMPort,
	ui output.UserInteractionPort,
	logger output.LoggerPort,
	cfg Config,
) *UseCase {
	if cfg.Language == "" {
		cfg.Language = defaultLanguage
	}
	return &UseCase{
		llm:     llm,
		ui:      ui,
		logger:  logger.Named("rewoo"),
		decoder: reply.NewDecoder(reply.Options{RepairJSON: cfg.RepairJSON}),
		cfg:     cfg,
	}
}

func (uc *UseCase) Type() entity.ParadigmType {
	return entity.ParadigmReWOO
}

func (uc *UseCase) Plan() entity.Plan {
	return uc.plan
}

func (uc *UseCase) History() []entity.ReWOOItem {
	return uc.history.Items()
}

func (uc *UseCase) Run(
	ctx context.Context,
	goal string,
	opts entity.RunOptions,
	processor output.ResultProcessor,
) (*entity.RunReport, error) {
	uc.history = entity.ReWOOHistory{}
	uc.plan = entity.Plan{}
	report := &entity.RunReport{Paradigm: entity.ParadigmReWOO, Goal: goal}

	uc.logger.Info("Starting run", "goal", goal, "max_steps", opts.Steps())
	uc.ui.ShowGoal(ctx, goal)

	plan, err := uc.createPlan(ctx, goal)
	if err != nil {
		return nil, err
	}
	uc.plan = plan
	uc.ui.ShowPlan(ctx, plan)

	steps := min(len(plan.Steps), opts.Steps())
	for i := range steps {
		if ctx.Err() != nil {
			return nil, entity.ErrInterrupted
		}
		stepNum := i + 1
		uc.ui.ShowStep(ctx, stepNum, steps)

		action, err := uc.createAction(ctx, plan.Steps[i])
		if err != nil {
			return nil, err
		}
		uc.ui.ShowAction(ctx, action)

		result, err := uc.executeAction(ctx, action)
		if err != nil {
			return nil, err
		}
		uc.ui.ShowResult(ctx, result)

		if opts.Verbose {
			uc.ui.ShowContext(ctx, uc.history.Context())
		}

		if processor != nil {
			processed, err := processor.ProcessResult(ctx, entity.NewPercept(result.Content))
			if err != nil {
				return nil, fmt.Errorf("process result: %w", err)
			}
			if opts.Verbose && processed.IsMapping() {
				uc.ui.ShowAgentState(ctx, processed.Fields)
			}
		}

		report.StepsExecuted = stepNum
		uc.logger.Debug("Step completed", "step", stepNum, "plan_step", plan.Steps[i])

		proceed, err := uc.ui.Confirm(ctx)
		if err != nil {
			return nil, err
		}
		if !proceed {
			uc.logger.Info("Stopped by user", "step", stepNum)
			report.StoppedByUser = true
			break
		}
	}

	uc.ui.ShowMessage(ctx, "Execution completed!")
	report.Context = uc.history.Context()
	uc.logger.Info("Run finished", "steps", report.StepsExecuted, "plan_steps", len(plan.Steps), "stopped_by_user", report.StoppedByUser)
	return report, nil
}

func (uc *UseCase) createPlan(ctx context.Context, goal string) (entity.Plan, error) {
	prompt, err := prompts.ReWOOPlan(prompts.PlanData{Goal: goal, Language: uc.cfg.Language})
	if err != nil {
		return entity.Plan{}, fmt.Errorf("render plan prompt: %w", err)
	}

	raw, err := uc.generate(ctx, prompt)
	if err != nil {
		return entity.Plan{}, fmt.Errorf("plan: %w", err)
	}

	plan, err := uc.decoder.Plan(raw)
	if err != nil {
		uc.logger.Error("Unusable plan", "raw", raw, "error", err)
		return entity.Plan{}, err
	}
	uc.logger.Info("Plan created", "steps", plan.Steps)
	return plan, nil
}

func (uc *UseCase) createAction(ctx context.Context, step string) (entity.Action, error) {
	prompt, err := prompts.ReWOOAction(prompts.StepActionData{Step: step, Language: uc.cfg.Language})
	if err != nil {
		return entity.Action{}, fmt.Errorf("render action prompt: %w", err)
	}

	raw, err := uc.generate(ctx, prompt)
	if err != nil {
		return entity.Action{}, fmt.Errorf("create action: %w", err)
	}

	action, err := uc.decoder.Action(raw)
	if err != nil {
		uc.logger.Error("Unusable action", "raw", raw, "error", err)
		return entity.Action{}, err
	}
	uc.history.Append(action)
	uc.logger.Debug("Action", "name", action.Name, "args", action.FormatArgs())
	return action, nil
}

func (uc *UseCase) executeAction(ctx context.Context, action entity.Action) (entity.Result, error) {
	prompt, err := prompts.ReWOOExecute(prompts.ActionData{
		ActionName: action.Name,
		ActionArgs: action.FormatArgs(),
		Language:   uc.cfg.Language,
	})
	if err != nil {
		return entity.Result{}, fmt.Errorf("render execute prompt: %w", err)
	}

	raw, err := uc.generate(ctx, prompt)
	if err != nil {
		return entity.Result{}, fmt.Errorf("execute action: %w", err)
	}

	result := entity.Result{Content: strings.TrimSpace(raw)}
	uc.history.Append(result)
	uc.logger.Debug("Result", "content", result.Content)
	return result, nil
}

func (uc *UseCase) generate(ctx context.Context, prompt string) (string, error) {
	return uc.llm.Generate(ctx, output.GenerateRequest{
		Model:  uc.cfg.Model,
		Prompt: prompt,
		System: uc.cfg.System,
	})
}
