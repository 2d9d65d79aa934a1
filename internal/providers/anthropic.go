package providers

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/abureyko/shipping-agent/internal/schema"
	"github.com/abureyko/shipping-agent/internal/shared/stringutils"
)

const anthropicDefaultMaxTokens = 1024

// MessagesClient captures the subset of the Anthropic SDK client used by
// AnthropicProvider.
type MessagesClient interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// AnthropicProvider calls the Anthropic Messages API.
type AnthropicProvider struct {
	msg          MessagesClient
	defaultModel string
}

func NewAnthropicProvider(apiKey, apiBase, defaultModel string) *AnthropicProvider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if apiBase != "" {
		opts = append(opts, option.WithBaseURL(apiBase))
	}
	client := sdk.NewClient(opts...)
	return NewAnthropicProviderWithClient(&client.Messages, defaultModel)
}

// NewAnthropicProviderWithClient wraps an existing messages client.
func NewAnthropicProviderWithClient(msg MessagesClient, defaultModel string) *AnthropicProvider {
	return &AnthropicProvider{msg: msg, defaultModel: defaultModel}
}

func (p *AnthropicProvider) DefaultModel() string { return p.defaultModel }

// Chat implements schema.LLMProvider. System messages are sent through the
// dedicated system field; everything else becomes user or assistant turns.
func (p *AnthropicProvider) Chat(ctx context.Context, messages schema.Messages, opts schema.ChatOptions) (schema.LLMResponse, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	params := sdk.MessageNewParams{
		MaxTokens: int64(maxTokens),
		Model:     sdk.Model(stringutils.StringOrDefault(opts.Model, p.defaultModel)),
		Messages:  encodeAnthropicMessages(messages),
	}
	if system := messages.System(); system != "" {
		params.System = []sdk.TextBlockParam{{Text: system}}
	}
	if opts.Temperature > 0 {
		params.Temperature = sdk.Float(opts.Temperature)
	}

	msg, err := p.msg.New(ctx, params)
	if err != nil {
		return schema.LLMResponse{}, fmt.Errorf("anthropic messages.new: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return schema.LLMResponse{
		Content:      stringutils.StripThink(sb.String()),
		FinishReason: string(msg.StopReason),
		Usage: map[string]int{
			"prompt_tokens":     int(msg.Usage.InputTokens),
			"completion_tokens": int(msg.Usage.OutputTokens),
			"total_tokens":      int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}, nil
}

func encodeAnthropicMessages(messages schema.Messages) []sdk.MessageParam {
	out := make([]sdk.MessageParam, 0, len(messages.Messages))
	for _, m := range messages.Messages {
		switch m.Role {
		case "user":
			out = append(out, sdk.NewUserMessage(sdk.NewTextBlock(m.Content)))
		case "assistant":
			out = append(out, sdk.NewAssistantMessage(sdk.NewTextBlock(m.Content)))
		}
	}
	return out
}
