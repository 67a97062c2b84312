package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Env var names for the vision agent connection.
const (
	EnvAgentProviderName = "TELLER_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "TELLER_AGENT_BASE_URL"
	EnvAgentToken        = "TELLER_AGENT_TOKEN"
	EnvAgentDeployment   = "TELLER_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "TELLER_AGENT_API_VERSION"
	EnvAgentAuthType     = "TELLER_AGENT_AUTH_TYPE"
	EnvAgentModelName    = "TELLER_AGENT_MODEL_NAME"
)

// agentOptionEnv maps env vars onto provider option keys. Secrets like
// the token ride through provider options rather than dedicated fields.
var agentOptionEnv = map[string]string{
	EnvAgentToken:      "token",
	EnvAgentDeployment: "deployment",
	EnvAgentAPIVersion: "api_version",
	EnvAgentAuthType:   "auth_type",
}

// FinalizeAgent runs the defaults/env/validate sequence against a
// go-agents AgentConfig, which carries its own defaults and merge
// behavior.
func FinalizeAgent(c *gaconfig.AgentConfig) error {
	loadAgentDefaults(c)
	loadAgentEnv(c)
	return validateAgent(c)
}

// loadAgentDefaults overlays c onto the library defaults so unset
// fields pick up DefaultAgentConfig values.
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

	overrideString(EnvAgentProviderName, &c.Provider.Name)
	overrideString(EnvAgentBaseURL, &c.Provider.BaseURL)
	overrideString(EnvAgentModelName, &c.Model.Name)

	for envVar, key := range agentOptionEnv {
		if v := os.Getenv(envVar); v != "" {
			c.Provider.Options[key] = v
		}
	}
}

func validateAgent(c *gaconfig.AgentConfig) error {
	switch {
	case c.Name == "":
		return fmt.Errorf("name required")
	case c.Provider == nil:
		return fmt.Errorf("provider required")
	case c.Provider.Name == "":
		return fmt.Errorf("provider name required")
	case c.Model == nil:
		return fmt.Errorf("model required")
	}
	return nil
}
