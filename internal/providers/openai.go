package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/abureyko/shipping-agent/internal/schema"
	"github.com/abureyko/shipping-agent/internal/shared/stringutils"
)

// ChatClient captures the subset of the go-openai client used by OpenAIProvider.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider calls any OpenAI-compatible chat completions endpoint.
type OpenAIProvider struct {
	chat         ChatClient
	defaultModel string
}

// NewOpenAIProvider constructs a provider from raw config values. An empty
// apiBase keeps the library default.
func NewOpenAIProvider(apiKey, apiBase, defaultModel string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if apiBase != "" {
		cfg.BaseURL = strings.TrimRight(apiBase, "/")
	}
	return NewOpenAIProviderWithClient(openai.NewClientWithConfig(cfg), defaultModel)
}

// NewOpenAIProviderWithClient wraps an existing client.
func NewOpenAIProviderWithClient(chat ChatClient, defaultModel string) *OpenAIProvider {
	return &OpenAIProvider{chat: chat, defaultModel: defaultModel}
}

func (p *OpenAIProvider) DefaultModel() string { return p.defaultModel }

// Chat implements schema.LLMProvider.
func (p *OpenAIProvider) Chat(ctx context.Context, messages schema.Messages, opts schema.ChatOptions) (schema.LLMResponse, error) {
	model := stringutils.StringOrDefault(opts.Model, p.defaultModel)

	msgs := make([]openai.ChatCompletionMessage, 0, len(messages.Messages))
	for _, m := range messages.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: float32(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}

	resp, err := p.chat.CreateChatCompletion(ctx, req)
	if err != nil {
		return schema.LLMResponse{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return schema.LLMResponse{}, errors.New("openai chat completion: no choices returned")
	}

	choice := resp.Choices[0]
	return schema.LLMResponse{
		Content:      stringutils.StripThink(choice.Message.Content),
		FinishReason: string(choice.FinishReason),
		Usage: map[string]int{
			"prompt_tokens":     resp.Usage.PromptTokens,
			"completion_tokens": resp.Usage.CompletionTokens,
			"total_tokens":      resp.Usage.TotalTokens,
		},
	}, nil
}
