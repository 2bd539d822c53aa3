package config

import (
	"fmt"

	"github.com/Vovarama1992/deepflow/internal/models"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Completion CompletionConfig `yaml:"completion"`
	Chunking   ChunkingConfig   `yaml:"chunking"`
	Presets    PresetsConfig    `yaml:"presets"`
	Media      MediaConfig      `yaml:"media"`
	Inbox      InboxConfig      `yaml:"inbox"`
	Database   DatabaseConfig   `yaml:"database"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type CompletionConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Referer  string `yaml:"referer"`
	Title    string `yaml:"title"`
}

type ChunkingConfig struct {
	Enabled     *bool `yaml:"enabled"`
	MaxChars    int   `yaml:"max_chars"`
	Concurrency int   `yaml:"concurrency"`
}

type PresetsConfig struct {
	Default string          `yaml:"default"`
	Items   []models.Preset `yaml:"items"`
}

type MediaConfig struct {
	DownloadDir   string `yaml:"download_dir"`
	CookiesFile   string `yaml:"cookies_file"`
	YTDLPBinary   string `yaml:"ytdlp_binary"`
	WhisperBinary string `yaml:"whisper_binary"`
	WhisperModel  string `yaml:"whisper_model"`
	Language      string `yaml:"language"`
	InitialPrompt string `yaml:"initial_prompt"`
	// Convert rewrites transcripts into one Chinese script: zh-cn, zh-tw or none.
	Convert string `yaml:"convert"`
}

type InboxConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Input         string `yaml:"input"`
	Output        string `yaml:"output"`
	Docx          bool   `yaml:"docx"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ChunkingEnabled reports whether long inputs are split; on unless disabled.
func (c *Config) ChunkingEnabled() bool {
	return c.Chunking.Enabled == nil || *c.Chunking.Enabled
}

const (
	ConvertSimplified  = "zh-cn"
	ConvertTraditional = "zh-tw"
	ConvertNone        = "none"

	DefaultLanguage      = "zh"
	DefaultInitialPrompt = "以下是简体中文的对话内容，包含标点符号，逻辑清晰。"
)

var whisperModels = map[string]bool{
	"tiny": true, "base": true, "small": true, "medium": true, "large": true,
}

func (c *Config) Validate() error {
	switch c.Completion.Provider {
	case "":
		c.Completion.Provider = ProviderOpenAI
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("completion.provider must be %q or %q", ProviderOpenAI, ProviderGemini)
	}

	if c.Chunking.MaxChars < 0 {
		return fmt.Errorf("chunking.max_chars must be positive")
	}
	if c.Chunking.Concurrency < 0 {
		return fmt.Errorf("chunking.concurrency must be positive")
	}
	for _, p := range c.Presets.Items {
		if p.Name == "" {
			return fmt.Errorf("presets.items: name is required")
		}
		if p.Temperature < 0 || p.Temperature > 1.5 {
			return fmt.Errorf("presets.items[%s]: temperature must be within [0, 1.5]", p.Name)
		}
	}
	if c.Media.WhisperModel != "" && !whisperModels[c.Media.WhisperModel] {
		return fmt.Errorf("media.whisper_model %q is not a known model size", c.Media.WhisperModel)
	}
	switch c.Media.Convert {
	case "", ConvertSimplified, ConvertTraditional, ConvertNone:
	default:
		return fmt.Errorf("media.convert must be %q, %q or %q", ConvertSimplified, ConvertTraditional, ConvertNone)
	}
	if c.Inbox.Enabled && (c.Inbox.Input == "" || c.Inbox.Output == "") {
		return fmt.Errorf("inbox.input and inbox.output are required when inbox is enabled")
	}

	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Completion.BaseURL == "" && c.Completion.Provider == ProviderOpenAI {
		c.Completion.BaseURL = "https://api.deepseek.com"
	}
	if c.Completion.Model == "" {
		if c.Completion.Provider == ProviderGemini {
			c.Completion.Model = "gemini-2.5-flash"
		} else {
			c.Completion.Model = "deepseek-chat"
		}
	}
	if c.Chunking.MaxChars == 0 {
		c.Chunking.MaxChars = 1500
	}
	if c.Chunking.Concurrency == 0 {
		c.Chunking.Concurrency = 1
	}
	if c.Media.DownloadDir == "" {
		c.Media.DownloadDir = "downloads"
	}
	if c.Media.WhisperModel == "" {
		c.Media.WhisperModel = "base"
	}
	if c.Media.Language == "" {
		c.Media.Language = DefaultLanguage
	}
	if c.Media.InitialPrompt == "" && c.Media.Language == DefaultLanguage {
		c.Media.InitialPrompt = DefaultInitialPrompt
	}
	if c.Media.Convert == "" {
		c.Media.Convert = ConvertSimplified
	}
	if c.Inbox.MaxConcurrent == 0 {
		c.Inbox.MaxConcurrent = 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
