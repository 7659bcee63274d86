package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeTempConfig пишет YAML во временный файл и возвращает путь.
func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

const validYAML = `
models:
  default_chat: groq-llama3
  definitions:
    groq-llama3:
      provider: groq
      model_name: llama3-70b-8192
      api_key: ${TEST_GROQ_KEY}
      base_url: https://api.groq.com/openai/v1
      max_tokens: 300
      timeout: 60s
weather:
  api_key: ${TEST_OWM_KEY}
  units: metric
cache:
  enabled: true
  path: geocache.db
app:
  debug: true
`

// TestLoad тестирует загрузку конфига с подстановкой ENV переменных.
func TestLoad(t *testing.T) {
	t.Setenv("TEST_GROQ_KEY", "gsk-test-123")
	t.Setenv("TEST_OWM_KEY", "owm-test-456")

	path := writeTempConfig(t, validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	model, ok := cfg.GetChatModel("")
	if !ok {
		t.Fatal("expected default chat model to resolve")
	}
	if model.APIKey != "gsk-test-123" {
		t.Errorf("expected env-expanded api key, got %q", model.APIKey)
	}
	if model.ModelName != "llama3-70b-8192" {
		t.Errorf("unexpected model name: %q", model.ModelName)
	}
	if model.Timeout != 60*time.Second {
		t.Errorf("expected 60s timeout, got %v", model.Timeout)
	}
	if cfg.Weather.APIKey != "owm-test-456" {
		t.Errorf("expected env-expanded weather key, got %q", cfg.Weather.APIKey)
	}
	if !cfg.Cache.Enabled {
		t.Error("expected cache enabled")
	}
}

// TestLoadValidation тестирует отказы валидации.
func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing default_chat",
			yaml: `
models:
  definitions: {}
weather:
  api_key: key
`,
		},
		{
			name: "default_chat not defined",
			yaml: `
models:
  default_chat: ghost
  definitions: {}
weather:
  api_key: key
`,
		},
		{
			name: "missing weather api key",
			yaml: `
models:
  default_chat: m
  definitions:
    m:
      provider: groq
      model_name: llama3
`,
		},
		{
			name: "bad units",
			yaml: `
models:
  default_chat: m
  definitions:
    m:
      provider: groq
      model_name: llama3
weather:
  api_key: key
  units: kelvin
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.yaml)
			if _, err := Load(path); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

// TestLoadMissingFile тестирует отсутствующий файл.
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestWeatherConfigDefaults тестирует подстановку дефолтов.
func TestWeatherConfigDefaults(t *testing.T) {
	cfg := WeatherConfig{APIKey: "key"}
	got := cfg.GetDefaults()

	if got.GeoBaseURL != "http://api.openweathermap.org/geo/1.0" {
		t.Errorf("unexpected geo base url: %q", got.GeoBaseURL)
	}
	if got.WeatherBaseURL != "https://api.openweathermap.org/data/2.5" {
		t.Errorf("unexpected weather base url: %q", got.WeatherBaseURL)
	}
	if got.Units != "metric" {
		t.Errorf("expected metric units, got %q", got.Units)
	}
	if got.RateLimit != 60 || got.BurstLimit != 5 {
		t.Errorf("unexpected rate limits: %d/%d", got.RateLimit, got.BurstLimit)
	}
	if got.ParseTimeout() != 15*time.Second {
		t.Errorf("unexpected timeout: %v", got.ParseTimeout())
	}

	// Существующие значения не перетираются
	cfg2 := WeatherConfig{Units: "imperial", RateLimit: 10}
	got2 := cfg2.GetDefaults()
	if got2.Units != "imperial" || got2.RateLimit != 10 {
		t.Error("GetDefaults must not override explicit values")
	}
}

// TestGetAnswerMaxTokens тестирует дефолт лимита токенов.
func TestGetAnswerMaxTokens(t *testing.T) {
	cfg := &AppConfig{}
	if cfg.GetAnswerMaxTokens() != 300 {
		t.Errorf("expected default 300, got %d", cfg.GetAnswerMaxTokens())
	}
	cfg.App.AnswerMaxTokens = 512
	if cfg.GetAnswerMaxTokens() != 512 {
		t.Errorf("expected 512, got %d", cfg.GetAnswerMaxTokens())
	}
}
