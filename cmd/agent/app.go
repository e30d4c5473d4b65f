package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"paradigm-agent/internal/application/port/output"
	"paradigm-agent/internal/di"
	"paradigm-agent/internal/domain/entity"
)

const customGoal = "__custom__"

var errCancelled = errors.New("operation cancelled")

type app struct {
	container *di.Container
	ui        output.UserInteractionPort
	opts      options
	out       io.Writer
}

func newApp(container *di.Container, opts options, out io.Writer) *app {
	return &app{container: container, ui: container.UI, opts: opts, out: out}
}

// run drives one session and returns the process exit code.
func (a *app) run(ctx context.Context) int {
	if a.opts.listExamples {
		a.printExamples()
		return 0
	}

	code, err := a.session(ctx)
	if err == nil {
		return code
	}

	var unreachable *entity.BackendUnreachableError
	switch {
	case errors.Is(err, errCancelled):
		a.ui.ShowMessage(ctx, "Operation cancelled")
		return 0
	case errors.Is(err, entity.ErrInterrupted), errors.Is(err, context.Canceled):
		a.ui.ShowMessage(ctx, "Operation cancelled by user")
		return 1
	case errors.As(err, &unreachable):
		a.ui.ShowError(ctx, err.Error())
		fmt.Fprintln(a.out, unreachable.Guidance())
		return 1
	default:
		a.ui.ShowError(ctx, err.Error())
		return 1
	}
}

func (a *app) session(ctx context.Context) (int, error) {
	example, err := a.resolveExample()
	if err != nil {
		return 1, err
	}

	model, err := a.selectModel(ctx)
	if err != nil {
		return 1, err
	}

	paradigm, err := a.selectParadigm(ctx, example)
	if err != nil {
		return 1, err
	}

	agentType, err := a.selectAgentType(ctx, example)
	if err != nil {
		return 1, err
	}

	goal, err := a.readGoal(ctx, example, paradigm, agentType)
	if err != nil {
		return 1, err
	}

	run, err := a.container.NewRun(goal)
	if err != nil {
		return 1, err
	}
	defer run.Close()

	agent, err := a.container.NewAgent(run, paradigm, agentType, model)
	if err != nil {
		return 1, err
	}

	a.ui.ShowMessage(ctx, fmt.Sprintf("Running %s agent (%s)...", paradigm, agentType))
	report, err := agent.Run(ctx, goal, entity.RunOptions{MaxSteps: a.opts.maxSteps, Verbose: a.opts.verbose})
	if err != nil {
		run.Logger.Error("Run failed", "error", err)
		return 1, err
	}

	run.Logger.Info("Run completed",
		"steps", report.StepsExecuted,
		"stopped_by_user", report.StoppedByUser,
	)
	return 0, nil
}

func (a *app) resolveExample() (*entity.ExampleGoal, error) {
	if a.opts.example == "" {
		return nil, nil
	}
	goal, ok := a.container.Catalog.Find(a.opts.example)
	if !ok {
		return nil, fmt.Errorf("unknown example %q (see -list-examples)", a.opts.example)
	}
	return &goal, nil
}

func (a *app) selectModel(ctx context.Context) (string, error) {
	if a.opts.model != "" {
		return a.opts.model, nil
	}

	models, err := a.container.LLM.ListModels(ctx)
	if err != nil {
		return "", err
	}
	if len(models) == 0 {
		return "", errors.New(`no models available; pull one first (for Ollama: "ollama pull <model>")`)
	}

	choices := make([]output.Choice, 0, len(models))
	for _, m := range models {
		choices = append(choices, output.Choice{Value: m.Name, Label: m.Name})
	}
	return a.choose(ctx, "Select a model to use", choices)
}

func (a *app) selectParadigm(ctx context.Context, example *entity.ExampleGoal) (entity.ParadigmType, error) {
	value := a.opts.paradigm
	if value == "" && example != nil {
		value = string(example.Paradigm)
	}

	if value == "" {
		var choices []output.Choice
		for _, e := range a.container.Paradigms.List() {
			choices = append(choices, output.Choice{Value: string(e.Type), Label: string(e.Type), Description: e.Description})
		}
		chosen, err := a.choose(ctx, "Select a paradigm", choices)
		if err != nil {
			return "", err
		}
		value = chosen
	}

	if _, ok := a.container.Paradigms.Get(entity.ParadigmType(value)); !ok {
		return "", fmt.Errorf("unknown paradigm %q", value)
	}
	return entity.ParadigmType(value), nil
}

func (a *app) selectAgentType(ctx context.Context, example *entity.ExampleGoal) (entity.AgentType, error) {
	value := a.opts.agentType
	if value == "" && example != nil {
		value = string(example.AgentType)
	}

	if value == "" {
		var choices []output.Choice
		for _, e := range a.container.AgentTypes.List() {
			choices = append(choices, output.Choice{Value: string(e.Type), Label: string(e.Type), Description: e.Description})
		}
		chosen, err := a.choose(ctx, "Select an agent type", choices)
		if err != nil {
			return "", err
		}
		value = chosen
	}

	if _, ok := a.container.AgentTypes.Get(entity.AgentType(value)); !ok {
		return "", fmt.Errorf("unknown agent type %q", value)
	}
	return entity.AgentType(value), nil
}

// readGoal offers the examples for the chosen combination before asking
// for a free-form goal.
func (a *app) readGoal(
	ctx context.Context,
	example *entity.ExampleGoal,
	paradigm entity.ParadigmType,
	agentType entity.AgentType,
) (string, error) {
	if example != nil {
		return example.Description, nil
	}

	if examples := a.container.Catalog.ForCombination(paradigm, agentType); len(examples) > 0 {
		choices := []output.Choice{{Value: customGoal, Label: "Enter my own goal"}}
		for _, g := range examples {
			choices = append(choices, output.Choice{Value: g.Name, Label: g.Title})
		}
		chosen, err := a.choose(ctx, "Select a goal", choices)
		if err != nil {
			return "", err
		}
		if chosen != customGoal {
			g, _ := a.container.Catalog.Find(chosen)
			return g.Description, nil
		}
	}

	goal, err := a.ui.AskQuestion(ctx, "What is your goal?")
	if err != nil {
		return "", err
	}
	if goal == "" {
		return "", errCancelled
	}
	return goal, nil
}

func (a *app) choose(ctx context.Context, message string, choices []output.Choice) (string, error) {
	value, err := a.ui.Select(ctx, message, choices)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", errCancelled
	}
	return value, nil
}

func (a *app) printExamples() {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPARADIGM\tAGENT TYPE\tTITLE")
	for _, g := range a.container.Catalog.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", g.Name, g.Paradigm, g.AgentType, g.Title)
	}
	w.Flush()
}
