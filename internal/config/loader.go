package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path, applies environment overrides and
// validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}

	set(&c.Server.Port, "PORT")
	set(&c.Completion.Provider, "COMPLETION_PROVIDER")
	set(&c.Completion.BaseURL, "COMPLETION_BASE_URL")
	set(&c.Completion.Model, "COMPLETION_MODEL")
	set(&c.Database.URL, "DATABASE_URL")
	set(&c.Media.CookiesFile, "YTDLP_COOKIES_FILE")
	set(&c.Logging.Level, "LOG_LEVEL")

	if c.Completion.Provider == ProviderGemini {
		set(&c.Completion.APIKey, "GEMINI_API_KEY", "COMPLETION_API_KEY")
	} else {
		set(&c.Completion.APIKey, "COMPLETION_API_KEY", "OPENROUTER_API_KEY", "DEEPSEEK_API_KEY")
	}
}
