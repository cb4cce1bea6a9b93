package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"resume": "resume.txt",
		"job_url": "https://example.com/posting",
		"total_questions": 12,
		"technical_focus_pct": 60,
		"random_seed": 42,
		"log_json": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "resume.txt", cfg.Resume)
	assert.Equal(t, "https://example.com/posting", cfg.JobURL)
	assert.Equal(t, 12, cfg.TotalQuestions)
	assert.Equal(t, 60, cfg.TechnicalFocusPct)
	assert.Equal(t, int64(42), cfg.RandomSeed)
	assert.True(t, cfg.LogJSON)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{"resume": `)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("PORT", "9090")

	cfg := &Config{APIKey: "file-key"}
	cfg.ApplyEnv()

	assert.Equal(t, "env-key", cfg.APIKey, "environment key overrides the file")
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.Port)
}

func TestApplyEnv_DoesNotClobberExplicitValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("PORT", "9090")

	cfg := &Config{DatabaseURL: "postgres://file", Port: 3000}
	cfg.ApplyEnv()

	assert.Equal(t, "postgres://file", cfg.DatabaseURL)
	assert.Equal(t, 3000, cfg.Port)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultTotalQuestions, cfg.TotalQuestions)
	assert.Equal(t, DefaultTechnicalFocusPct, cfg.TechnicalFocusPct)
	assert.Equal(t, DefaultLLMTimeoutSeconds, cfg.LLMTimeoutSeconds)
}

func TestValidate_MutuallyExclusive(t *testing.T) {
	cfg := &Config{Job: "job.txt", JobURL: "https://example.com"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_Ranges(t *testing.T) {
	assert.Error(t, (&Config{TotalQuestions: -1}).Validate())
	assert.Error(t, (&Config{TechnicalFocusPct: 101}).Validate())
	assert.Error(t, (&Config{TechnicalFocusPct: -1}).Validate())
	assert.Error(t, (&Config{DurationMinutes: -5}).Validate())
	assert.Error(t, (&Config{Port: 70000}).Validate())
}

func TestValidate_MissingInputFiles(t *testing.T) {
	cfg := &Config{Resume: filepath.Join(t.TempDir(), "absent.txt")}
	require.Error(t, cfg.Validate())

	cfg = &Config{Job: filepath.Join(t.TempDir(), "absent.txt")}
	require.Error(t, cfg.Validate())
}

func TestValidate_ValidConfig(t *testing.T) {
	resume := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(resume, []byte("Jane Doe"), 0o644))

	cfg := &Config{
		Resume:            resume,
		JobURL:            "https://example.com/posting",
		TotalQuestions:    10,
		TechnicalFocusPct: 70,
		Port:              8080,
	}
	assert.NoError(t, cfg.Validate())
}
