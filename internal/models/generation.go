package models

type GenerationConfig struct {
	Model       string  `json:"model" yaml:"model"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

type CompletionRequest struct {
	Instruction string
	Content     string
	Model       string
	Temperature float64
}

type Preset struct {
	Name        string  `db:"name" json:"name" yaml:"name"`
	Prompt      string  `db:"prompt" json:"prompt" yaml:"prompt"`
	Temperature float64 `db:"temperature" json:"temperature" yaml:"temperature"`
}

// RefineRequest is what a caller submits; zero fields fall back to the preset
// and the configured defaults.
type RefineRequest struct {
	Text            string   `json:"text"`
	Preset          string   `json:"preset"`
	Instruction     string   `json:"instruction"`
	Temperature     *float64 `json:"temperature"`
	Model           string   `json:"model"`
	MaxChars        int      `json:"maxChars"`
	DisableChunking bool     `json:"disableChunking"`
}
