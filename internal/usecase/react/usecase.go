package react

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

// UseCase runs the Think / Act / Observe loop.
type UseCase struct {
	llm     output.LLMPort
	ui      output.UserInteractionPort
	logger  output.LoggerPort
	decoder *reply.Decoder
	cfg     Config

	history entity.ReActHistory
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
		logger:  logger.Named("react"),
		decoder: reply.NewDecoder(reply.Options{RepairJSON: cfg.RepairJSON}),
		cfg:     cfg,
	}
}

func (uc *UseCase) Type() entity.ParadigmType {
	return entity.ParadigmReAct
}

// History returns the records of the current run in execution order.
func (uc *UseCase) History() []entity.ReActItem {
	return uc.history.Items()
}

func (uc *UseCase) Run(
	ctx context.Context,
	goal string,
	opts entity.RunOptions,
	processor output.ResultProcessor,
) (*entity.RunReport, error) {
	uc.history = entity.ReActHistory{}
	maxSteps := opts.Steps()
	report := &entity.RunReport{Paradigm: entity.ParadigmReAct, Goal: goal}

	uc.logger.Info("Starting run", "goal", goal, "max_steps", maxSteps)
	uc.ui.ShowGoal(ctx, goal)

	for step := 1; step <= maxSteps; step++ {
		if ctx.Err() != nil {
			return nil, entity.ErrInterrupted
		}
		uc.ui.ShowStep(ctx, step, maxSteps)

		thought, err := uc.think(ctx, goal)
		if err != nil {
			return nil, err
		}
		uc.ui.ShowThought(ctx, thought)

		action, err := uc.act(ctx, thought)
		if err != nil {
			return nil, err
		}
		uc.ui.ShowAction(ctx, action)

		observation, err := uc.observe(ctx, action)
		if err != nil {
			return nil, err
		}
		uc.ui.ShowObservation(ctx, observation)

		if opts.Verbose {
			uc.ui.ShowContext(ctx, uc.history.Context())
		}

		if processor != nil {
			processed, err := processor.ProcessResult(ctx, entity.NewPercept(observation.Content))
			if err != nil {
				return nil, fmt.Errorf("process observation: %w", err)
			}
			if opts.Verbose && processed.IsMapping() {
				uc.ui.ShowAgentState(ctx, processed.Fields)
			}
		}

		report.StepsExecuted = step
		uc.logger.Debug("Step completed", "step", step)

		proceed, err := uc.ui.Confirm(ctx)
		if err != nil {
			return nil, err
		}
		if !proceed {
			uc.logger.Info("Stopped by user", "step", step)
			report.StoppedByUser = true
			break
		}
	}

	uc.ui.ShowMessage(ctx, "Agent run completed!")
	report.Context = uc.history.Context()
	uc.logger.Info("Run finished", "steps", report.StepsExecuted, "stopped_by_user", report.StoppedByUser)
	return report, nil
}

func (uc *UseCase) think(ctx context.Context, goal string) (entity.Thought, error) {
	prompt, err := prompts.ReActThink(prompts.ThinkData{
		Goal:     goal,
		Context:  uc.history.Context(),
		Language: uc.cfg.Language,
	})
	if err != nil {
		return entity.Thought{}, fmt.Errorf("render think prompt: %w", err)
	}

	raw, err := uc.generate(ctx, prompt)
	if err != nil {
		return entity.Thought{}, fmt.Errorf("think: %w", err)
	}

	thought, err := uc.decoder.Thought(raw)
	if err != nil {
		uc.logger.Error("Unusable thought", "raw", raw, "error", err)
		return entity.Thought{}, err
	}
	uc.history.Append(thought)
	uc.logger.Debug("Thought", "content", thought.Content)
	return thought, nil
}

func (uc *UseCase) act(ctx context.Context, thought entity.Thought) (entity.Action, error) {
	prompt, err := prompts.ReActAct(prompts.ThoughtActionData{
		Thought:  thought.Content,
		Language: uc.cfg.Language,
	})
	if err != nil {
		return entity.Action{}, fmt.Errorf("render act prompt: %w", err)
	}

	raw, err := uc.generate(ctx, prompt)
	if err != nil {
		return entity.Action{}, fmt.Errorf("act: %w", err)
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

func (uc *UseCase) observe(ctx context.Context, action entity.Action) (entity.Observation, error) {
	prompt, err := prompts.ReActObserve(prompts.ActionData{
		ActionName: action.Name,
		ActionArgs: action.FormatArgs(),
		Language:   uc.cfg.Language,
	})
	if err != nil {
		return entity.Observation{}, fmt.Errorf("render observe prompt: %w", err)
	}

	raw, err := uc.generate(ctx, prompt)
	if err != nil {
		return entity.Observation{}, fmt.Errorf("observe: %w", err)
	}

	observation := entity.Observation{Content: strings.TrimSpace(raw)}
	uc.history.Append(observation)
	uc.logger.Debug("Observation", "content", observation.Content)
	return observation, nil
}

func (uc *UseCase) generate(ctx context.Context, prompt string) (string, error) {
	return uc.llm.Generate(ctx, output.GenerateRequest{
		Model:  uc.cfg.Model,
		Prompt: prompt,
		System: uc.cfg.System,
	})
}
