package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"paradigm-agent/internal/di"
	"paradigm-agent/internal/infrastructure/env"
	"paradigm-agent/internal/infrastructure/logger"

	"go.uber.org/zap/zapcore"
)

func main() {
	os.Exit(run())
}

func run() int {
	bootstrap := logger.New(os.Stderr, zapcore.WarnLevel)
	envService := env.NewEnvService(bootstrap)

	opts, err := parseOptions(envService, os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(di.Config{
		Backend:       opts.backend,
		OllamaBaseURL: envService.Get("OLLAMA_BASE_URL"),
		OpenAIBaseURL: envService.Get("OPENAI_BASE_URL"),
		OpenAIAPIKey:  envService.GetWithDefault("OPENAI_API_KEY", "ollama"),
		Language:      opts.language,
		SystemPrompt:  envService.Get("AGENT_SYSTEM_PROMPT"),
		LogDir:        envService.GetWithDefault("LOG_DIR", logger.DefaultDir),
		LogLevel:      envService.GetWithDefault("LOG_LEVEL", "info"),
		RepairJSON:    envService.GetBool("REPAIR_JSON", false),
		EvaluateGoals: envService.GetBool("EVALUATE_GOALS", false),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Initialization failed: %v\n", err)
		return 1
	}
	defer container.Close()

	return newApp(container, opts, os.Stdout).run(ctx)
}
