package models

import "time"

const (
	DefaultTheme          = "cosmic"
	DefaultPrimaryColor   = "#FF00FF"
	DefaultSecondaryColor = "#00FFFF"
)

// Settings holds UI preferences and which providers have a key configured.
// API keys themselves are never part of this view.
type Settings struct {
	Theme               string            `json:"theme"`
	PrimaryColor        string            `json:"primary_color"`
	SecondaryColor      string            `json:"secondary_color"`
	ProvidersConfigured map[Provider]bool `json:"providers_configured"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// SettingsUpdate is a partial update; empty fields are left unchanged.
type SettingsUpdate struct {
	OpenAIAPIKey    string `json:"openai_api_key,omitempty"`
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty"`
	DeepseekAPIKey  string `json:"deepseek_api_key,omitempty"`
	KimiAPIKey      string `json:"kimi_api_key,omitempty"`
	Theme           string `json:"theme,omitempty"`
	PrimaryColor    string `json:"primary_color,omitempty"`
	SecondaryColor  string `json:"secondary_color,omitempty"`
}

// APIKeys returns the non-empty keys in the update, by provider.
func (u *SettingsUpdate) APIKeys() map[Provider]string {
	keys := make(map[Provider]string)
	for p, k := range map[Provider]string{
		ProviderOpenAI:    u.OpenAIAPIKey,
		ProviderAnthropic: u.AnthropicAPIKey,
		ProviderDeepseek:  u.DeepseekAPIKey,
		ProviderKimi:      u.KimiAPIKey,
	} {
		if k != "" {
			keys[p] = k
		}
	}
	return keys
}
