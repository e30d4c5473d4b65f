// Package llm holds helpers shared by the LLM backend adapters.
package llm

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	"paradigm-agent/internal/domain/entity"
)

// StripCodeFence removes a Markdown code block wrapper, with or without a
// language tag, when the whole text is a single fenced block.
func StripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return ""
	}
	if strings.HasPrefix(lines[0], "```") && lines[len(lines)-1] == "```" {
		return strings.Join(lines[1:len(lines)-1], "\n")
	}
	return text
}

// IsConnectionError reports whether err means the backend could not be reached.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && !urlErr.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "connection refused")
}

// WrapConnectionError converts connection failures into
// entity.BackendUnreachableError and leaves other errors untouched.
func WrapConnectionError(baseURL string, err error) error {
	if IsConnectionError(err) {
		return &entity.BackendUnreachableError{BaseURL: baseURL, Err: err}
	}
	return err
}
