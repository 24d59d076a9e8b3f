package models

// Provider identifies an upstream LLM vendor.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderDeepseek  Provider = "deepseek"
	ProviderKimi      Provider = "kimi"
)

// AllProviders lists every supported provider in catalog order.
var AllProviders = []Provider{
	ProviderOpenAI,
	ProviderAnthropic,
	ProviderDeepseek,
	ProviderKimi,
}

// IsValid returns true if p is one of the supported providers.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderOpenAI, ProviderAnthropic, ProviderDeepseek, ProviderKimi:
		return true
	}
	return false
}

// Label is the vendor name used in error messages, e.g. "OpenAI API error: ...".
func (p Provider) Label() string {
	switch p {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderAnthropic:
		return "Anthropic"
	case ProviderDeepseek:
		return "Deepseek"
	case ProviderKimi:
		return "Kimi"
	}
	return string(p)
}

// ProviderInfo is one entry of the static provider catalog.
type ProviderInfo struct {
	ID           Provider `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Models       []string `json:"models" yaml:"models"`
	Status       string   `json:"status" yaml:"status"`
	DefaultModel string   `json:"-" yaml:"default_model"`
	BaseURL      string   `json:"-" yaml:"base_url"`
}

// MaskedAPIKey returns masked version: "sk-a...wxyz".
func MaskedAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "***"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
