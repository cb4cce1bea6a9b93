// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Defaults applied when neither the config file, environment, nor flags set
// a value.
const (
	DefaultPort              = 8080
	DefaultTotalQuestions    = 10
	DefaultTechnicalFocusPct = 70
	DefaultLLMTimeoutSeconds = 60
)

// Config is the application configuration, loadable from a JSON file with
// environment variable overrides. All fields are optional; missing values
// use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Resume string `json:"resume,omitempty"`  // Path to resume text file
	Job    string `json:"job,omitempty"`     // Path to job description text file
	JobURL string `json:"job_url,omitempty"` // URL to fetch the job posting from

	// Interview shape
	TotalQuestions    int   `json:"total_questions,omitempty"`     // Question budget per session
	TechnicalFocusPct int   `json:"technical_focus_pct,omitempty"` // Technical share of the budget (0-100)
	DurationMinutes   int   `json:"duration_minutes,omitempty"`    // Derives the budget when set
	RandomSeed        int64 `json:"random_seed,omitempty"`         // Seeds template sampling (0 = time-based)

	// Services
	APIKey            string `json:"api_key,omitempty"`             // Gemini API key (empty = offline mode)
	DatabaseURL       string `json:"database_url,omitempty"`        // PostgreSQL connection URL (empty = in-memory)
	Port              int    `json:"port,omitempty"`                // HTTP listen port
	LLMTimeoutSeconds int    `json:"llm_timeout_seconds,omitempty"` // Per-call LLM timeout

	// Logging
	LogJSON bool `json:"log_json,omitempty"` // Structured JSON logs instead of console
	Debug   bool `json:"debug,omitempty"`    // Debug-level logging
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overlays environment variables onto the config. The API key from
// the environment always wins so keys never need to live in checked-in files.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" && c.DatabaseURL == "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" && c.Port == 0 {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
}

// ApplyDefaults fills remaining zero values with application defaults.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.TotalQuestions == 0 {
		c.TotalQuestions = DefaultTotalQuestions
	}
	if c.TechnicalFocusPct == 0 {
		c.TechnicalFocusPct = DefaultTechnicalFocusPct
	}
	if c.LLMTimeoutSeconds == 0 {
		c.LLMTimeoutSeconds = DefaultLLMTimeoutSeconds
	}
}

// Validate checks that the configuration has valid values. Required fields
// are enforced by CLI flag validation after merging, not here.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.TotalQuestions < 0 {
		return fmt.Errorf("config error: 'total_questions' must be non-negative")
	}
	if c.TechnicalFocusPct < 0 || c.TechnicalFocusPct > 100 {
		return fmt.Errorf("config error: 'technical_focus_pct' must be in [0,100]")
	}
	if c.DurationMinutes < 0 {
		return fmt.Errorf("config error: 'duration_minutes' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid TCP port")
	}

	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}
