package schema

import "context"

// ChatOptions configures a single LLM chat request.
type ChatOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// LLMResponse is the normalised response from any LLM provider.
type LLMResponse struct {
	Content      string
	FinishReason string
	Usage        map[string]int // "prompt_tokens", "completion_tokens", "total_tokens"
}

// LLMProvider is the interface every language-reply backend must satisfy.
// Live backends and the deterministic stub are indistinguishable to callers.
type LLMProvider interface {
	Chat(ctx context.Context, messages Messages, opts ChatOptions) (LLMResponse, error)
	DefaultModel() string
}

func NewChatOptions(model string, maxTokens int, temperature float64) ChatOptions {
	return ChatOptions{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}
