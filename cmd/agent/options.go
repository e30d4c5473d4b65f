package main

import (
	"flag"
	"fmt"
	"io"

	"paradigm-agent/internal/application/port/output"
	"paradigm-agent/internal/domain/entity"
)

type options struct {
	paradigm     string
	agentType    string
	model        string
	maxSteps     int
	verbose      bool
	language     string
	backend      string
	example      string
	listExamples bool
}

// parseOptions reads flags, taking their defaults from the environment.
func parseOptions(cfg output.ConfigPort, args []string, usage io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("agent", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.StringVar(&o.paradigm, "paradigm", cfg.Get("AGENT_PARADIGM"), "paradigm to run: react or rewoo (asked when empty)")
	fs.StringVar(&o.agentType, "agent", cfg.Get("AGENT_TYPE"), "agent type: simple_reflex or model_based_reflex (asked when empty)")
	fs.StringVar(&o.model, "model", cfg.Get("AGENT_MODEL"), "model name (asked when empty)")
	fs.IntVar(&o.maxSteps, "max-steps", cfg.GetInt("MAX_STEPS", entity.DefaultMaxSteps), "maximum number of steps")
	fs.BoolVar(&o.verbose, "verbose", cfg.GetBool("VERBOSE", false), "show the context and agent state after every step")
	fs.StringVar(&o.language, "language", cfg.GetWithDefault("AGENT_LANGUAGE", "en"), "language the model should answer in")
	fs.StringVar(&o.backend, "backend", cfg.GetWithDefault("LLM_BACKEND", "ollama"), "LLM backend: ollama, langchain or openai")
	fs.StringVar(&o.example, "example", "", "run a built-in example goal by name")
	fs.BoolVar(&o.listExamples, "list-examples", false, "list the built-in example goals and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if o.maxSteps < 1 {
		return options{}, fmt.Errorf("max-steps must be at least 1, got %d", o.maxSteps)
	}
	return o, nil
}
