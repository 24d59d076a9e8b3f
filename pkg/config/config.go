package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
)

// ConfigFile is read from the working directory when present.
const ConfigFile = "config.yaml"

// Config holds all configuration for hfrl-gateway.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (API keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"8000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Debug    bool   `yaml:"debug" env:"DEBUG" env-default:"false"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// APIPrefix is prepended to every resource route.
	APIPrefix string `yaml:"api_v1_prefix" env:"API_V1_PREFIX" env-default:"/api/v1"`

	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://localhost:8000,http://127.0.0.1:3000,http://127.0.0.1:8000,http://localhost:5500,http://localhost:5501,http://localhost:5502,file://"`

	// RateLimitPerMinute is carried for clients that read it; nothing enforces it.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"RATE_LIMIT_PER_MINUTE" env-default:"60"`

	// RequestTimeoutSeconds bounds every provider call.
	RequestTimeoutSeconds int `yaml:"request_timeout" env:"REQUEST_TIMEOUT" env-default:"60"`

	// SettingsSecret seals API keys held by the settings store. Empty uses
	// a random per-process key.
	SettingsSecret string `yaml:"-" env:"SETTINGS_SECRET"` // Secret - not in YAML

	Providers ProvidersConfig `yaml:"providers"`

	MCP MCPConfig `yaml:"mcp"`
}

// ProvidersConfig holds per-provider defaults.
type ProvidersConfig struct {
	OpenAI    ProviderConfig `yaml:"openai" env-prefix:"OPENAI_"`
	Anthropic ProviderConfig `yaml:"anthropic" env-prefix:"ANTHROPIC_"`
	Deepseek  ProviderConfig `yaml:"deepseek" env-prefix:"DEEPSEEK_"`
	Kimi      ProviderConfig `yaml:"kimi" env-prefix:"KIMI_"`
}

// ProviderConfig is the server-level default for one provider.
// APIKey is the last fallback in key resolution; BaseURL empty means the
// provider's public endpoint.
type ProviderConfig struct {
	APIKey  string `yaml:"-" env:"API_KEY"` // Secret - not in YAML
	BaseURL string `yaml:"base_url" env:"BASE_URL" env-default:""`
}

// MCPConfig controls the MCP endpoint.
type MCPConfig struct {
	Enabled bool `yaml:"enabled" env:"MCP_ENABLED" env-default:"true"`
	// LogRequests logs MCP tool calls and their outcomes at debug level.
	LogRequests bool `yaml:"log_requests" env:"MCP_LOG_REQUESTS" env-default:"false"`
}

// Load reads configuration from config.yaml (if present) with environment
// variable overrides. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat(ConfigFile); err == nil {
		if err := cleanenv.ReadConfig(ConfigFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
		}
	} else if errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to stat %s: %w", ConfigFile, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.APIPrefix = "/" + strings.Trim(cfg.APIPrefix, "/")
	cfg.resolveBaseURLs()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %d", c.RequestTimeoutSeconds)
	}
	if strings.Trim(c.APIPrefix, "/") == "" {
		return fmt.Errorf("api_v1_prefix must not be empty")
	}
	return nil
}

// resolveBaseURLs rewrites localhost base URLs when running in Docker so a
// locally hosted OpenAI-compatible endpoint stays reachable.
func (c *Config) resolveBaseURLs() {
	for _, pc := range []*ProviderConfig{&c.Providers.OpenAI, &c.Providers.Anthropic, &c.Providers.Deepseek, &c.Providers.Kimi} {
		if pc.BaseURL != "" {
			pc.BaseURL = ResolveURLForDocker(pc.BaseURL)
		}
	}
}

// RequestTimeout returns the provider call timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Provider returns the server-level defaults for p.
// Unknown providers yield an empty ProviderConfig.
func (c *ProvidersConfig) Provider(p models.Provider) ProviderConfig {
	switch p {
	case models.ProviderOpenAI:
		return c.OpenAI
	case models.ProviderAnthropic:
		return c.Anthropic
	case models.ProviderDeepseek:
		return c.Deepseek
	case models.ProviderKimi:
		return c.Kimi
	}
	return ProviderConfig{}
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return c.BindAddr + ":" + c.Port
}
