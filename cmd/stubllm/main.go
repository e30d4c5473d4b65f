// Command stubllm serves a canned Ollama-compatible API for offline runs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paradigm-agent/internal/infrastructure/env"
	"paradigm-agent/internal/infrastructure/llm/stub"
	"paradigm-agent/internal/infrastructure/logger"

	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	log := logger.New(os.Stderr, zapcore.InfoLevel)
	envService := env.NewEnvService(log)

	addr := flag.String("addr", envService.GetWithDefault("STUB_ADDR", ":11434"), "listen address")
	quiet := flag.Bool("quiet", false, "disable request logging")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := stub.NewServer(stub.Config{RequestLogging: !*quiet})
	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting stub LLM server", "addr", *addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("stub server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down stub LLM server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Stub server stopped", "error", err)
		os.Exit(1)
	}
}
