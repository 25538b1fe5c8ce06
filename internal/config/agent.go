package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentProviderName = "ATTEST_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "ATTEST_AGENT_BASE_URL"
	EnvAgentToken        = "ATTEST_AGENT_TOKEN"
	EnvAgentDeployment   = "ATTEST_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "ATTEST_AGENT_API_VERSION"
	EnvAgentAuthType     = "ATTEST_AGENT_AUTH_TYPE"
	EnvAgentModelName    = "ATTEST_AGENT_MODEL_NAME"
)

// FinalizeAgent applies the three-phase finalize pattern to a go-agents
// AgentConfig: library defaults, environment variable overrides, then
// validation. An entirely unconfigured agent passes finalize untouched;
// AgentConfigured distinguishes it from a usable one.
func FinalizeAgent(c *gaconfig.AgentConfig) error {
	loadAgentDefaults(c)
	loadAgentEnv(c)
	if !AgentConfigured(c) {
		return nil
	}
	return validateAgent(c)
}

// AgentConfigured reports whether the config names a provider, the minimum
// needed to construct an agent.
func AgentConfigured(c *gaconfig.AgentConfig) bool {
	return c.Provider != nil && c.Provider.Name != ""
}

func loadAgentDefaults(c *gaconfig.AgentConfig) {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(c)
	*c = defaults
}

func loadAgentEnv(c *gaconfig.AgentConfig) {
	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
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

func validateAgent(c *gaconfig.AgentConfig) error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Model == nil || c.Model.Name == "" {
		return fmt.Errorf("model name required")
	}
	return nil
}
