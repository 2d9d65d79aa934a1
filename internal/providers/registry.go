package providers

import (
	"strings"

	"github.com/abureyko/shipping-agent/internal/config/provider"
)

// ProviderSpec is the metadata record for one language-reply backend.
type ProviderSpec struct {
	Name        string   // config value of LLM_PROVIDER, e.g. "anthropic"
	Keywords    []string // model-name keywords for matching (lowercase)
	DisplayName string   // shown in `shipping-agent status`

	DefaultModel   string // used when the configured model belongs to another backend
	DefaultAPIBase string // fallback base URL when none is configured

	NeedsEndpoint   bool // APIBase is mandatory (Azure resource endpoint)
	NeedsDeployment bool // a deployment name is mandatory
}

// Label returns the display name, defaulting to Title-cased Name.
func (s ProviderSpec) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return strings.ToTitle(s.Name[:1]) + s.Name[1:]
}

// APIBase returns configured, or the spec's default base URL when it is empty.
func (s ProviderSpec) APIBase(configured string) string {
	if configured != "" {
		return configured
	}
	return s.DefaultAPIBase
}

// PROVIDERS is the registry. Order = match priority.
var PROVIDERS = []ProviderSpec{
	{
		Name:           provider.ProviderOpenAI,
		Keywords:       []string{"gpt", "o1", "o3", "o4"},
		DisplayName:    "OpenAI",
		DefaultModel:   "gpt-4o",
		DefaultAPIBase: "https://api.openai.com/v1",
	},
	{
		Name:         provider.ProviderAnthropic,
		Keywords:     []string{"claude", "anthropic"},
		DisplayName:  "Anthropic",
		DefaultModel: "claude-sonnet-4-5",
	},
	{
		Name:            provider.ProviderAzure,
		Keywords:        []string{"azure"},
		DisplayName:     "Azure OpenAI",
		DefaultModel:    "gpt-4o",
		NeedsEndpoint:   true,
		NeedsDeployment: true,
	},
	{
		Name:         provider.ProviderMock,
		DisplayName:  "Mock",
		DefaultModel: "mock",
	},
}

// FindByModel matches a provider by model-name keyword (case-insensitive).
func FindByModel(model string) *ProviderSpec {
	modelLower := strings.ToLower(model)
	for i := range PROVIDERS {
		spec := &PROVIDERS[i]
		for _, kw := range spec.Keywords {
			if strings.HasPrefix(modelLower, kw) || strings.Contains(modelLower, "/"+kw) {
				return spec
			}
		}
	}
	return nil
}

// FindByName returns the ProviderSpec whose Name equals name.
func FindByName(name string) *ProviderSpec {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := range PROVIDERS {
		if PROVIDERS[i].Name == name {
			return &PROVIDERS[i]
		}
	}
	return nil
}

// ResolveModel picks the model to request from spec. A model that clearly
// belongs to another backend (gpt-4o sent to Anthropic) is replaced by the
// spec default. Azure routes by deployment, so any model name is accepted.
func ResolveModel(spec *ProviderSpec, model string) string {
	if model == "" {
		return spec.DefaultModel
	}
	if spec.NeedsDeployment {
		return model
	}
	if owner := FindByModel(model); owner != nil && owner.Name != spec.Name {
		return spec.DefaultModel
	}
	return model
}
