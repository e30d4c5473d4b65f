package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"paradigm-agent/internal/application/port/output"
	"paradigm-agent/internal/domain/entity"
	"paradigm-agent/internal/infrastructure/llm"

	"github.com/sashabaranov/go-openai"
)

var _ output.LLMPort = (*OpenAIAdapter)(nil)

// OpenAIAdapter talks to any OpenAI-compatible endpoint: Ollama's /v1,
// OpenRouter, LiteLLM and the like.
type OpenAIAdapter struct {
	client      *openai.Client
	baseURL     string
	temperature float32
	logger      output.LoggerPort
}

type Config struct {
	APIKey      string
	BaseURL     string
	Temperature float32
	Logger      output.LoggerPort
}

func DefaultConfig(apiKey string) Config {
	if apiKey == "" {
		apiKey = "ollama"
	}
	return Config{
		APIKey:  apiKey,
		BaseURL: "http://localhost:11434/v1",
	}
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var bodyBytes []byte
	if req.Body != nil {
		bodyBytes, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	}

	var requestData map[string]any
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &requestData)
	}

	t.logger.Debug("HTTP Request",
		"method", req.Method,
		"url", req.URL.String(),
		"body", requestData,
	)

	resp, err := t.base.RoundTrip(req)

	if resp != nil {
		t.logger.Debug("HTTP Response",
			"status", resp.Status,
			"statusCode", resp.StatusCode,
		)
	}

	return resp, err
}

func NewOpenAIAdapter(cfg Config) *OpenAIAdapter {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	if cfg.Logger != nil {
		config.HTTPClient = &http.Client{
			Transport: &loggingTransport{
				base:   http.DefaultTransport,
				logger: cfg.Logger,
			},
		}
	}

	return &OpenAIAdapter{
		client:      openai.NewClientWithConfig(config),
		baseURL:     config.BaseURL,
		temperature: cfg.Temperature,
		logger:      cfg.Logger,
	}
}

func (a *OpenAIAdapter) ListModels(ctx context.Context) ([]entity.ModelInfo, error) {
	list, err := a.client.ListModels(ctx)
	if err != nil {
		return nil, llm.WrapConnectionError(a.baseURL, fmt.Errorf("list models: %w", err))
	}

	models := make([]entity.ModelInfo, 0, len(list.Models))
	for _, m := range list.Models {
		models = append(models, convertModel(m))
	}
	return models, nil
}

func (a *OpenAIAdapter) Generate(ctx context.Context, req output.GenerateRequest) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    convertMessages(req),
		Temperature: a.temperature,
	})
	if err != nil {
		return "", llm.WrapConnectionError(a.baseURL, fmt.Errorf("chat completion failed: %w", err))
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	if a.logger != nil {
		a.logger.Debug("Chat completion received",
			"model", req.Model,
			"promptTokens", resp.Usage.PromptTokens,
			"completionTokens", resp.Usage.CompletionTokens)
	}

	return llm.StripCodeFence(resp.Choices[0].Message.Content), nil
}

func convertMessages(req output.GenerateRequest) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})
	return messages
}

func convertModel(m openai.Model) entity.ModelInfo {
	info := entity.ModelInfo{
		Name:  m.ID,
		Model: m.ID,
		Details: map[string]any{
			"owned_by": m.OwnedBy,
		},
	}
	if m.CreatedAt > 0 {
		info.ModifiedAt = time.Unix(m.CreatedAt, 0).UTC()
	}
	return info
}
