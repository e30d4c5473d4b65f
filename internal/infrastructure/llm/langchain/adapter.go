// Package langchain generates text through langchaingo's Ollama client.
package langchain

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"paradigm-agent/internal/application/port/output"
	"paradigm-agent/internal/domain/entity"
	"paradigm-agent/internal/infrastructure/llm"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

var _ output.LLMPort = (*LangchainAdapter)(nil)

// ModelLister supplies the model list; langchaingo has no listing call.
type ModelLister interface {
	ListModels(ctx context.Context) ([]entity.ModelInfo, error)
}

type Config struct {
	ServerURL  string
	HTTPClient *http.Client
	Lister     ModelLister
	Logger     output.LoggerPort
}

type LangchainAdapter struct {
	serverURL  string
	httpClient *http.Client
	lister     ModelLister
	logger     output.LoggerPort

	mu     sync.Mutex
	models map[string]llms.Model
}

func NewLangchainAdapter(cfg Config) *LangchainAdapter {
	serverURL := strings.TrimRight(cfg.ServerURL, "/")
	if serverURL == "" {
		serverURL = "http://localhost:11434"
	}
	return &LangchainAdapter{
		serverURL:  serverURL,
		httpClient: cfg.HTTPClient,
		lister:     cfg.Lister,
		logger:     cfg.Logger,
		models:     make(map[string]llms.Model),
	}
}

func (a *LangchainAdapter) ListModels(ctx context.Context) ([]entity.ModelInfo, error) {
	if a.lister == nil {
		return nil, fmt.Errorf("model listing is not configured")
	}
	return a.lister.ListModels(ctx)
}

func (a *LangchainAdapter) Generate(ctx context.Context, req output.GenerateRequest) (string, error) {
	model, err := a.model(req.Model)
	if err != nil {
		return "", err
	}

	messages := make([]llms.MessageContent, 0, 2)
	if req.System != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt))

	resp, err := model.GenerateContent(ctx, messages)
	if err != nil {
		return "", llm.WrapConnectionError(a.serverURL, fmt.Errorf("generate content: %w", err))
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	if a.logger != nil {
		a.logger.Debug("Langchain generation completed",
			"model", req.Model,
			"stopReason", resp.Choices[0].StopReason,
			"responseLen", len(resp.Choices[0].Content))
	}

	return llm.StripCodeFence(resp.Choices[0].Content), nil
}

// model returns the cached client for name, creating it on first use.
func (a *LangchainAdapter) model(name string) (llms.Model, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if m, ok := a.models[name]; ok {
		return m, nil
	}

	opts := []ollama.Option{
		ollama.WithModel(name),
		ollama.WithServerURL(a.serverURL),
	}
	if a.httpClient != nil {
		opts = append(opts, ollama.WithHTTPClient(a.httpClient))
	}

	m, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ollama client for %s: %w", name, err)
	}
	a.models[name] = m
	return m, nil
}
