package provider

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderAzure     = "azure"
	ProviderMock      = "mock"
)

const DefaultSystemPrompt = "You are a shipping assistant."

// LLMConfig holds credentials and defaults for the language-reply provider.
// An empty APIKey selects the deterministic mock provider.
type LLMConfig struct {
	Provider     string  `json:"provider"`
	APIKey       string  `json:"apiKey"`
	APIBase      string  `json:"apiBase,omitempty"`
	Model        string  `json:"model"`
	Deployment   string  `json:"deployment,omitempty"` // Azure OpenAI only
	MaxTokens    int     `json:"maxTokens"`
	Temperature  float64 `json:"temperature"`
	SystemPrompt string  `json:"systemPrompt"`
}

func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Provider:     ProviderOpenAI,
		Model:        "gpt-4o",
		MaxTokens:    1024,
		Temperature:  0.2,
		SystemPrompt: DefaultSystemPrompt,
	}
}

// Live reports whether a credential is configured.
func (c LLMConfig) Live() bool { return c.APIKey != "" }
