package userinteraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"paradigm-agent/internal/application/port/output"
	"paradigm-agent/internal/domain/entity"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var _ output.UserInteractionPort = (*ConsoleUserInteraction)(nil)

const (
	inputPrompt   = "> "
	selectPrompt  = "Enter number: "
	confirmPrompt = "Press Enter to continue, or 'q' to quit: "
)

// LineReader is the subset of *readline.Instance the console needs.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

type ConsoleUserInteraction struct {
	reader LineReader
	out    io.Writer
}

func NewConsoleUserInteraction() (*ConsoleUserInteraction, error) {
	rl, err := readline.New(inputPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return NewConsole(rl, color.Output), nil
}

func NewConsole(reader LineReader, out io.Writer) *ConsoleUserInteraction {
	return &ConsoleUserInteraction{reader: reader, out: out}
}

func (u *ConsoleUserInteraction) Close() error {
	return u.reader.Close()
}

func (u *ConsoleUserInteraction) AskQuestion(ctx context.Context, question string) (string, error) {
	color.New(color.Bold).Fprintf(u.out, "\n%s\n", question)
	return u.readLine(ctx, inputPrompt)
}

// Select prints a numbered menu and returns the chosen value. An empty
// answer returns "" so the caller can cancel.
func (u *ConsoleUserInteraction) Select(ctx context.Context, message string, choices []output.Choice) (string, error) {
	if len(choices) == 0 {
		return "", errors.New("nothing to select from")
	}

	color.New(color.Bold).Fprintf(u.out, "\n%s\n", message)
	for i, c := range choices {
		color.New(color.FgCyan).Fprintf(u.out, "  %d. ", i+1)
		fmt.Fprint(u.out, c.Label)
		if c.Description != "" {
			color.New(color.Faint).Fprintf(u.out, " - %s", c.Description)
		}
		fmt.Fprintln(u.out)
	}

	for {
		answer, err := u.readLine(ctx, selectPrompt)
		if err != nil {
			return "", err
		}
		if answer == "" {
			return "", nil
		}

		num, err := strconv.Atoi(answer)
		if err != nil || num < 1 || num > len(choices) {
			color.New(color.FgRed).Fprintf(u.out, "Invalid selection. Please enter 1-%d.\n", len(choices))
			continue
		}
		return choices[num-1].Value, nil
	}
}

func (u *ConsoleUserInteraction) Confirm(ctx context.Context) (bool, error) {
	fmt.Fprintln(u.out)
	answer, err := u.readRawLine(ctx, confirmPrompt)
	if err != nil {
		return false, err
	}
	// only a leading q quits; leading whitespace continues
	return !strings.HasPrefix(strings.ToLower(answer), "q"), nil
}

func (u *ConsoleUserInteraction) ShowGoal(ctx context.Context, goal string) {
	color.New(color.FgBlue, color.Bold).Fprintln(u.out, "\nGoal:")
	fmt.Fprintln(u.out, goal)
}

func (u *ConsoleUserInteraction) ShowStep(ctx context.Context, step, maxSteps int) {
	color.New(color.FgCyan, color.Bold).Fprintf(u.out, "\n━━━ Step %d/%d ━━━\n", step, maxSteps)
}

func (u *ConsoleUserInteraction) ShowPlan(ctx context.Context, plan entity.Plan) {
	color.New(color.FgGreen, color.Bold).Fprintln(u.out, "\nPlan:")
	if len(plan.Steps) == 0 {
		color.New(color.Faint).Fprintln(u.out, "(no steps)")
		return
	}
	for i, step := range plan.Steps {
		fmt.Fprintf(u.out, "%d. %s\n", i+1, step)
	}
}

func (u *ConsoleUserInteraction) ShowThought(ctx context.Context, thought entity.Thought) {
	color.New(color.FgGreen, color.Bold).Fprintln(u.out, "\nThought:")
	fmt.Fprintln(u.out, thought.Content)
}

func (u *ConsoleUserInteraction) ShowAction(ctx context.Context, action entity.Action) {
	color.New(color.FgYellow, color.Bold).Fprintln(u.out, "\nAction:")
	fmt.Fprintf(u.out, "Name: %s\n", action.Name)
	fmt.Fprintf(u.out, "Args: %s\n", action.FormatArgs())
}

func (u *ConsoleUserInteraction) ShowObservation(ctx context.Context, observation entity.Observation) {
	color.New(color.FgMagenta, color.Bold).Fprintln(u.out, "\nObservation:")
	fmt.Fprintln(u.out, observation.Content)
}

func (u *ConsoleUserInteraction) ShowResult(ctx context.Context, result entity.Result) {
	color.New(color.FgMagenta, color.Bold).Fprintln(u.out, "\nResult:")
	fmt.Fprintln(u.out, result.Content)
}

func (u *ConsoleUserInteraction) ShowContext(ctx context.Context, rendered string) {
	color.New(color.Bold).Fprintln(u.out, "\nCurrent State:")
	color.New(color.Faint).Fprintln(u.out, rendered)
}

func (u *ConsoleUserInteraction) ShowAgentState(ctx context.Context, state map[string]any) {
	color.New(color.Bold).Fprintln(u.out, "\nAgent State:")

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		fmt.Fprintln(u.out, state)
		return
	}
	color.New(color.Faint).Fprintln(u.out, string(data))
}

func (u *ConsoleUserInteraction) ShowMessage(ctx context.Context, message string) {
	color.New(color.Bold).Fprintf(u.out, "\n%s\n", message)
}

func (u *ConsoleUserInteraction) ShowError(ctx context.Context, message string) {
	color.New(color.FgRed).Fprint(u.out, "Error: ")
	fmt.Fprintln(u.out, message)
}

func (u *ConsoleUserInteraction) readLine(ctx context.Context, prompt string) (string, error) {
	line, err := u.readRawLine(ctx, prompt)
	return strings.TrimSpace(line), err
}

func (u *ConsoleUserInteraction) readRawLine(ctx context.Context, prompt string) (string, error) {
	if ctx.Err() != nil {
		return "", entity.ErrInterrupted
	}

	u.reader.SetPrompt(prompt)
	line, err := u.reader.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", entity.ErrInterrupted
		}
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
