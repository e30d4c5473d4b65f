package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"paradigm-agent/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain fence", "```\nhello\n```", "hello"},
		{"language tag", "```json\n{\"content\": \"x\"}\n```", `{"content": "x"}`},
		{"multi line body", "```\na\nb\n```", "a\nb"},
		{"no fence", "hello", "hello"},
		{"fence inside text", "see ```code``` here", "see ```code``` here"},
		{"trailing text after fence", "```\nhello\n``` done", "```\nhello\n``` done"},
		{"closing fence not alone", "```\nhello```", "```\nhello```"},
		{"bare fence", "```", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.in))
		})
	}
}

func TestWrapConnectionError(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	err := WrapConnectionError("http://localhost:11434", fmt.Errorf("post: %w", opErr))

	var unreachable *entity.BackendUnreachableError
	assert.True(t, errors.As(err, &unreachable))
	assert.Equal(t, "http://localhost:11434", unreachable.BaseURL)

	plain := errors.New("status 500")
	assert.Same(t, plain, WrapConnectionError("http://x", plain))

	assert.False(t, IsConnectionError(context.Canceled))
	assert.False(t, IsConnectionError(nil))
}
