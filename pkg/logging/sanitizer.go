package logging

import (
	"regexp"
	"unicode/utf8"
)

const (
	// MaxPromptLogLength is the maximum length of a prompt to log
	MaxPromptLogLength = 100
	// RedactedText is the replacement text for sensitive data
	RedactedText = "[REDACTED]"
)

var (
	// Pattern to match provider secret keys: OpenAI "sk-...", Anthropic "sk-ant-...",
	// Moonshot/Deepseek keys share the "sk-" prefix
	secretKeyPattern = regexp.MustCompile(`sk-[A-Za-z0-9_\-*]{6,}`)

	// Pattern to match bearer tokens in echoed headers
	bearerPattern = regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-_.=]+`)

	// Pattern to match potential API keys in query strings or key=value dumps
	apiKeyPattern = regexp.MustCompile(`(?i)(api[_-]?key|apikey|x-api-key)([=:]\s*)[A-Za-z0-9\-_]{8,}`)

	// Pattern to match URL credentials (user:pass@host format)
	urlCredentialsPattern = regexp.MustCompile(`://[^:/\s]+:[^@/\s]+@`)
)

// SanitizeError sanitizes error messages that might contain API keys.
// Provider SDK errors sometimes echo a partial key back
// ("Incorrect API key provided: sk-abc***xyz"); use this before logging them.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeText(err.Error())
}

// SanitizeText removes secrets from arbitrary text.
func SanitizeText(s string) string {
	if s == "" {
		return ""
	}

	sanitized := secretKeyPattern.ReplaceAllString(s, RedactedText)
	sanitized = bearerPattern.ReplaceAllString(sanitized, "Bearer "+RedactedText)
	sanitized = apiKeyPattern.ReplaceAllString(sanitized, "${1}${2}"+RedactedText)
	sanitized = urlCredentialsPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@")

	return sanitized
}

// SanitizePrompt truncates a prompt for logging and strips secrets a user
// may have pasted into it.
func SanitizePrompt(prompt string) string {
	return SanitizeText(TruncateString(prompt, MaxPromptLogLength))
}

// TruncateString truncates a string to maxLen runes and adds ellipsis if needed
func TruncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}
