package providers

import (
	"context"

	"github.com/abureyko/shipping-agent/internal/schema"
)

// MockReplyPrefix starts every reply of the mock provider.
const MockReplyPrefix = "[Mock LLM response for]: "

// MockProvider is the deterministic stand-in used when no credential is
// configured. It echoes the last user message.
type MockProvider struct{}

func NewMockProvider() *MockProvider { return &MockProvider{} }

func (p *MockProvider) DefaultModel() string { return "mock" }

func (p *MockProvider) Chat(_ context.Context, messages schema.Messages, _ schema.ChatOptions) (schema.LLMResponse, error) {
	return schema.LLMResponse{
		Content:      MockReplyPrefix + messages.LastUser(),
		FinishReason: "stop",
	}, nil
}
