package providers

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/abureyko/shipping-agent/internal/config/provider"
	"github.com/abureyko/shipping-agent/internal/schema"
)

// Params are the raw values needed to construct any schema.LLMProvider.
// Extracted from config.Config by the caller to avoid an import cycle.
type Params struct {
	ProviderName string // registry name, e.g. "openai", "anthropic"
	APIKey       string
	APIBase      string
	Model        string
	Deployment   string
}

// ParamsFromConfig extracts Params from the LLM section of the configuration.
func ParamsFromConfig(cfg provider.LLMConfig) Params {
	return Params{
		ProviderName: cfg.Provider,
		APIKey:       cfg.APIKey,
		APIBase:      cfg.APIBase,
		Model:        cfg.Model,
		Deployment:   cfg.Deployment,
	}
}

// New creates the appropriate schema.LLMProvider for the given params.
//
// Rules:
//   - no API key or provider "mock" → MockProvider
//   - "anthropic"                   → AnthropicProvider
//   - "azure"                       → AzureProvider (endpoint and deployment required)
//   - otherwise                     → OpenAIProvider
//
// An empty provider name is inferred from the model name.
func New(p Params) (schema.LLMProvider, error) {
	name := strings.ToLower(strings.TrimSpace(p.ProviderName))
	if p.APIKey == "" || name == provider.ProviderMock {
		return NewMockProvider(), nil
	}

	var spec *ProviderSpec
	if name == "" {
		spec = FindByModel(p.Model)
	} else if spec = FindByName(name); spec == nil {
		return nil, schema.NewToolError(schema.CodeEnvValidation,
			fmt.Sprintf("unknown LLM provider %q", p.ProviderName), nil)
	}
	if spec == nil {
		spec = FindByName(provider.ProviderOpenAI)
	}

	model := ResolveModel(spec, p.Model)
	if model != p.Model && p.Model != "" {
		slog.Warn("model does not match provider, using provider default",
			"provider", spec.Name, "model", p.Model, "default", model)
	}

	base := spec.APIBase(p.APIBase)
	var missing []string
	if spec.NeedsEndpoint && base == "" {
		missing = append(missing, "LLM_API_BASE")
	}
	if spec.NeedsDeployment && p.Deployment == "" {
		missing = append(missing, "AZURE_OPENAI_DEPLOYMENT")
	}
	if len(missing) > 0 {
		return nil, schema.NewToolError(schema.CodeEnvValidation,
			fmt.Sprintf("%s: missing required environment variables: %s", spec.Label(), strings.Join(missing, ", ")), nil)
	}

	switch spec.Name {
	case provider.ProviderAnthropic:
		return NewAnthropicProvider(p.APIKey, base, model), nil
	case provider.ProviderAzure:
		return NewAzureProvider(base, p.APIKey, p.Deployment)
	default:
		return NewOpenAIProvider(p.APIKey, base, model), nil
	}
}
