// Package stub serves the subset of the Ollama HTTP API the agent uses, both
// the native routes and the OpenAI-compatible /v1 routes, answering from a
// Responder instead of a model.
package stub

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
)

type Model struct {
	Name       string         `json:"name"`
	Model      string         `json:"model"`
	ModifiedAt time.Time      `json:"modified_at"`
	Size       int64          `json:"size"`
	Digest     string         `json:"digest"`
	Details    map[string]any `json:"details"`
}

type Config struct {
	Models    []Model
	Responder Responder
	// RequestLogging enables httplog request logs under ServiceName.
	RequestLogging bool
	ServiceName    string
}

func DefaultModels() []Model {
	return []Model{
		{
			Name:       "stub:latest",
			Model:      "stub:latest",
			ModifiedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Size:       1024,
			Digest:     "sha256:stub",
			Details:    map[string]any{"family": "stub", "parameter_size": "0B"},
		},
	}
}

type Server struct {
	router    chi.Router
	models    []Model
	responder Responder

	mu       sync.Mutex
	requests []Request
}

func NewServer(cfg Config) *Server {
	models := cfg.Models
	if models == nil {
		models = DefaultModels()
	}
	responder := cfg.Responder
	if responder == nil {
		responder = CannedResponder{}
	}

	s := &Server{
		router:    chi.NewRouter(),
		models:    models,
		responder: responder,
	}

	if cfg.RequestLogging {
		name := cfg.ServiceName
		if name == "" {
			name = "stubllm"
		}
		logger := httplog.NewLogger(name, httplog.Options{JSON: true})
		s.router.Use(httplog.RequestLogger(logger))
	}
	s.router.Use(middleware.Recoverer)

	s.router.Get("/api/tags", s.handleTags)
	s.router.Post("/api/generate", s.handleGenerate)
	s.router.Post("/api/chat", s.handleChat)

	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/models", s.handleOpenAIModels)
		r.Post("/chat/completions", s.handleOpenAIChat)
	})

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Requests returns every generation request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) record(req Request) string {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	return s.responder.Respond(req)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"models": s.models})
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if req.Model == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "model is required"})
		return
	}

	text := s.record(Request{Endpoint: "generate", Model: req.Model, Prompt: req.Prompt, System: req.System})
	writeJSON(w, http.StatusOK, map[string]any{
		"model":      req.Model,
		"created_at": time.Now().UTC(),
		"response":   text,
		"done":       true,
	})
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	stubReq := Request{Endpoint: "chat", Model: req.Model}
	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			stubReq.System = m.Content
		case "user":
			stubReq.Prompt = m.Content
		}
	}

	text := s.record(stubReq)
	writeJSON(w, http.StatusOK, map[string]any{
		"model":             req.Model,
		"created_at":        time.Now().UTC(),
		"message":           chatMessage{Role: "assistant", Content: text},
		"done":              true,
		"done_reason":       "stop",
		"prompt_eval_count": len(stubReq.Prompt) / 4,
		"eval_count":        len(text) / 4,
	})
}

func (s *Server) handleOpenAIModels(w http.ResponseWriter, r *http.Request) {
	data := make([]map[string]any, 0, len(s.models))
	for _, m := range s.models {
		data = append(data, map[string]any{
			"id":       m.Name,
			"object":   "model",
			"created":  m.ModifiedAt.Unix(),
			"owned_by": "library",
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"object": "list", "data": data})
}

func (s *Server) handleOpenAIChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": map[string]string{"message": err.Error()}})
		return
	}

	stubReq := Request{Endpoint: "chat/completions", Model: req.Model}
	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			stubReq.System = m.Content
		case "user":
			stubReq.Prompt = m.Content
		}
	}

	text := s.record(stubReq)
	writeJSON(w, http.StatusOK, map[string]any{
		"id":      "chatcmpl-stub",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   req.Model,
		"choices": []map[string]any{{
			"index":         0,
			"message":       chatMessage{Role: "assistant", Content: text},
			"finish_reason": "stop",
		}},
		"usage": map[string]int{
			"prompt_tokens":     len(stubReq.Prompt) / 4,
			"completion_tokens": len(text) / 4,
			"total_tokens":      (len(stubReq.Prompt) + len(text)) / 4,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
