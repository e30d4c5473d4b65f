package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"paradigm-agent/internal/application/port/output"
	"paradigm-agent/internal/domain/entity"
	"paradigm-agent/internal/infrastructure/llm"
)

var _ output.LLMPort = (*OllamaAdapter)(nil)

const DefaultBaseURL = "http://localhost:11434"

type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     output.LoggerPort
}

func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
	}
}

type OllamaAdapter struct {
	baseURL string
	client  *http.Client
	logger  output.LoggerPort
}

func NewOllamaAdapter(cfg Config) *OllamaAdapter {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &OllamaAdapter{
		baseURL: baseURL,
		client:  client,
		logger:  cfg.Logger,
	}
}

func (a *OllamaAdapter) BaseURL() string {
	return a.baseURL
}

// tagsResponse is the /api/tags JSON structure.
type tagsResponse struct {
	Models []struct {
		Name       string         `json:"name"`
		Model      string         `json:"model"`
		ModifiedAt time.Time      `json:"modified_at"`
		Size       int64          `json:"size"`
		Digest     string         `json:"digest"`
		Details    map[string]any `json:"details"`
	} `json:"models"`
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (a *OllamaAdapter) ListModels(ctx context.Context) ([]entity.ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, llm.WrapConnectionError(a.baseURL, fmt.Errorf("list models: %w", err))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decode ollama tags: %w", err)
	}

	models := make([]entity.ModelInfo, 0, len(tags.Models))
	for _, m := range tags.Models {
		models = append(models, entity.ModelInfo{
			Name:       m.Name,
			Model:      m.Model,
			ModifiedAt: m.ModifiedAt,
			Size:       m.Size,
			Digest:     m.Digest,
			Details:    m.Details,
		})
	}

	if a.logger != nil {
		a.logger.Debug("Listed models", "count", len(models), "baseURL", a.baseURL)
	}
	return models, nil
}

func (a *OllamaAdapter) Generate(ctx context.Context, req output.GenerateRequest) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		System: req.System,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", llm.WrapConnectionError(a.baseURL, fmt.Errorf("generate: %w", err))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}

	if a.logger != nil {
		a.logger.Debug("Generated",
			"model", req.Model,
			"promptLen", len(req.Prompt),
			"responseLen", len(genResp.Response),
			"duration_ms", time.Since(start).Milliseconds())
	}

	return llm.StripCodeFence(genResp.Response), nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("ollama returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
}
