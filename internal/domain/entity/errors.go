package entity

import (
	"errors"
	"fmt"
)

// ErrInterrupted is returned when the user interrupts a prompt or the run
// context is cancelled.
var ErrInterrupted = errors.New("operation cancelled by user")

type Stage string

const (
	StageThought    Stage = "thought"
	StageAction     Stage = "action"
	StagePlan       Stage = "plan"
	StageEvaluation Stage = "evaluation"
)

// InvalidModelOutputError reports a reply that is not parseable as JSON where
// JSON was required.
type InvalidModelOutputError struct {
	Stage Stage
	Raw   string
	Err   error
}

func (e *InvalidModelOutputError) Error() string {
	return fmt.Sprintf("invalid %s format from LLM: %s", e.Stage, e.Raw)
}

func (e *InvalidModelOutputError) Unwrap() error {
	return e.Err
}

// StructuralMismatchError reports a JSON reply that lacks the required fields
// or shape.
type StructuralMismatchError struct {
	Stage Stage
	Raw   string
	Err   error
}

func (e *StructuralMismatchError) Error() string {
	return fmt.Sprintf("invalid %s structure from LLM: %v (raw: %s)", e.Stage, e.Err, e.Raw)
}

func (e *StructuralMismatchError) Unwrap() error {
	return e.Err
}

type BackendUnreachableError struct {
	BaseURL string
	Err     error
}

func (e *BackendUnreachableError) Error() string {
	return fmt.Sprintf("LLM backend not reachable at %s: %v", e.BaseURL, e.Err)
}

func (e *BackendUnreachableError) Unwrap() error {
	return e.Err
}

func (e *BackendUnreachableError) Guidance() string {
	return fmt.Sprintf(`Could not connect to the LLM backend at %s.
Please check that:
  1. the backend is installed
  2. the service is running (for Ollama: "ollama serve")
  3. at least one model is available (for Ollama: "ollama pull <model>")`, e.BaseURL)
}
