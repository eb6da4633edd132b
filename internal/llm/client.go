// Package llm wraps language-model providers behind one client interface.
// Callers treat the model as an opaque completion function; every defensive
// policy around its output lives in the orchestrator package.
package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spec-kit/resolution-service/internal/config"
)

// Message is a single chat turn sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat roles understood by both providers.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Tool declares a function the model may call, described as a JSON schema.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Request is a provider-agnostic completion request.
type Request struct {
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
	Tools       []Tool
	// ForceTool requires the model to answer with a tool call when Tools
	// are present.
	ForceTool bool
}

// ToolCall is a function invocation emitted by the model.
type ToolCall struct {
	Name      string
	Arguments json.RawMessage
}

// Response carries the model output.
type Response struct {
	Text      string
	ToolCalls []ToolCall
	TokensIn  int
	TokensOut int
}

// Client is the interface for LLM providers.
type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
	Name() string
}

// NewClient creates an LLM client for the configured provider.
func NewClient(cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicClient(cfg)
	case "openai", "":
		return NewOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
