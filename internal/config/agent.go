package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentName         = "CLEANHARBOR_AGENT_NAME"
	EnvAgentProviderName = "CLEANHARBOR_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "CLEANHARBOR_AGENT_BASE_URL"
	EnvAgentToken        = "CLEANHARBOR_AGENT_TOKEN"
	EnvAgentDeployment   = "CLEANHARBOR_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "CLEANHARBOR_AGENT_API_VERSION"
	EnvAgentAuthType     = "CLEANHARBOR_AGENT_AUTH_TYPE"
	EnvAgentModelName    = "CLEANHARBOR_AGENT_MODEL_NAME"
)

// AgentConfig holds the chat-agent collaborator settings in TOML-friendly
// form. Build converts it to a go-agents configuration with library defaults
// applied.
type AgentConfig struct {
	Name     string              `toml:"name"`
	Provider AgentProviderConfig `toml:"provider"`
	Model    AgentModelConfig    `toml:"model"`
}

// AgentProviderConfig selects and authenticates the model provider.
type AgentProviderConfig struct {
	Name    string         `toml:"name"`
	BaseURL string         `toml:"base_url"`
	Options map[string]any `toml:"options"`
}

// AgentModelConfig selects the default model.
type AgentModelConfig struct {
	Name string `toml:"name"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AgentConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AgentConfig) Merge(overlay *AgentConfig) {
	if overlay.Name != "" {
		c.Name = overlay.Name
	}
	if overlay.Provider.Name != "" {
		c.Provider.Name = overlay.Provider.Name
	}
	if overlay.Provider.BaseURL != "" {
		c.Provider.BaseURL = overlay.Provider.BaseURL
	}
	for k, v := range overlay.Provider.Options {
		if c.Provider.Options == nil {
			c.Provider.Options = make(map[string]any)
		}
		c.Provider.Options[k] = v
	}
	if overlay.Model.Name != "" {
		c.Model.Name = overlay.Model.Name
	}
}

// Build converts the section to a go-agents AgentConfig, layering it over
// the library defaults.
func (c *AgentConfig) Build() gaconfig.AgentConfig {
	cfg := gaconfig.DefaultAgentConfig()

	override := gaconfig.AgentConfig{
		Name: c.Name,
		Provider: &gaconfig.ProviderConfig{
			Name:    c.Provider.Name,
			BaseURL: c.Provider.BaseURL,
			Options: c.Provider.Options,
		},
		Model: &gaconfig.ModelConfig{
			Name: c.Model.Name,
		},
	}

	cfg.Merge(&override)
	return cfg
}

func (c *AgentConfig) loadDefaults() {
	if c.Name == "" {
		c.Name = "cleanharbor"
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
}

func (c *AgentConfig) loadEnv() {
	if v := os.Getenv(EnvAgentName); v != "" {
		c.Name = v
	}
	if v := os.Getenv(EnvAgentProviderName); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv(EnvAgentBaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvAgentModelName); v != "" {
		c.Model.Name = v
	}

	setOption := func(envVar, key string) {
		if v := os.Getenv(envVar); v != "" {
			c.Provider.Options[key] = v
		}
	}

	setOption(EnvAgentToken, "token")
	setOption(EnvAgentDeployment, "deployment")
	setOption(EnvAgentAPIVersion, "api_version")
	setOption(EnvAgentAuthType, "auth_type")
}

func (c *AgentConfig) validate() error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	return nil
}
