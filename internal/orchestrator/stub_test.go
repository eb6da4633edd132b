package orchestrator

import (
	"context"

	"github.com/spec-kit/resolution-service/internal/llm"
)

// stubClient scripts model responses for tests.
type stubClient struct {
	resp *llm.Response
	err  error
	fn   func(req llm.Request) (*llm.Response, error)
}

func (s *stubClient) Complete(_ context.Context, req llm.Request) (*llm.Response, error) {
	if s.fn != nil {
		return s.fn(req)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubClient) Name() string { return "stub" }

func textResponse(text string) *llm.Response {
	return &llm.Response{Text: text}
}

func toolResponse(name string, args string) *llm.Response {
	return &llm.Response{ToolCalls: []llm.ToolCall{{Name: name, Arguments: []byte(args)}}}
}
