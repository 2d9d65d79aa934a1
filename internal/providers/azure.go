package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"

	"github.com/abureyko/shipping-agent/internal/schema"
	"github.com/abureyko/shipping-agent/internal/shared/stringutils"
)

// CompletionsClient captures the subset of the azopenai client used by AzureProvider.
type CompletionsClient interface {
	GetChatCompletions(ctx context.Context, body azopenai.ChatCompletionsOptions, options *azopenai.GetChatCompletionsOptions) (azopenai.GetChatCompletionsResponse, error)
}

// AzureProvider calls an Azure OpenAI deployment.
type AzureProvider struct {
	client       CompletionsClient
	deploymentID string
}

// NewAzureProvider creates a provider for the deployment at endpoint.
func NewAzureProvider(endpoint, apiKey, deploymentID string) (*AzureProvider, error) {
	client, err := azopenai.NewClientWithKeyCredential(endpoint, azcore.NewKeyCredential(apiKey), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating Azure OpenAI client: %w", err)
	}
	return NewAzureProviderWithClient(client, deploymentID), nil
}

// NewAzureProviderWithClient wraps an existing client.
func NewAzureProviderWithClient(client CompletionsClient, deploymentID string) *AzureProvider {
	return &AzureProvider{client: client, deploymentID: deploymentID}
}

func (p *AzureProvider) DefaultModel() string { return p.deploymentID }

// Chat implements schema.LLMProvider. opts.Model is ignored: Azure routes by
// deployment. Only system and user turns are sent.
func (p *AzureProvider) Chat(ctx context.Context, messages schema.Messages, opts schema.ChatOptions) (schema.LLMResponse, error) {
	msgs := make([]azopenai.ChatRequestMessageClassification, 0, len(messages.Messages))
	for _, m := range messages.Messages {
		switch m.Role {
		case "system":
			msgs = append(msgs, &azopenai.ChatRequestSystemMessage{
				Content: azopenai.NewChatRequestSystemMessageContent(m.Content),
			})
		case "user":
			msgs = append(msgs, &azopenai.ChatRequestUserMessage{
				Content: azopenai.NewChatRequestUserMessageContent(m.Content),
			})
		}
	}

	body := azopenai.ChatCompletionsOptions{
		DeploymentName: to.Ptr(p.deploymentID),
		Messages:       msgs,
		Temperature:    to.Ptr(float32(opts.Temperature)),
	}
	if opts.MaxTokens > 0 {
		body.MaxTokens = to.Ptr(int32(opts.MaxTokens))
	}

	resp, err := p.client.GetChatCompletions(ctx, body, nil)
	if err != nil {
		return schema.LLMResponse{}, fmt.Errorf("azure openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == nil {
		return schema.LLMResponse{}, errors.New("no completion received from LLM")
	}

	choice := resp.Choices[0]
	out := schema.LLMResponse{Content: stringutils.StripThink(*choice.Message.Content)}
	if choice.FinishReason != nil {
		out.FinishReason = string(*choice.FinishReason)
	}
	return out, nil
}
