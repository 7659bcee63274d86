package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig — корневая структура конфигурации.
// Она зеркалит структуру config.yaml.
type AppConfig struct {
	Models  ModelsConfig  `yaml:"models"`
	Weather WeatherConfig `yaml:"weather"`
	Cache   CacheConfig   `yaml:"cache"`
	Prompts PromptsConfig `yaml:"prompts"`
	App     AppSpecific   `yaml:"app"`
}

// ModelsConfig — настройки AI моделей.
type ModelsConfig struct {
	DefaultChat string              `yaml:"default_chat"` // Алиас чат-модели по умолчанию (например, "groq-llama3")
	Definitions map[string]ModelDef `yaml:"definitions"`  // Словарь определений моделей
}

// ModelDef — параметры конкретной модели.
type ModelDef struct {
	Provider    string        `yaml:"provider"`   // "groq", "openai", "zai", "deepseek"
	ModelName   string        `yaml:"model_name"` // Реальное имя в API
	APIKey      string        `yaml:"api_key"`    // Поддерживает ${VAR}
	BaseURL     string        `yaml:"base_url"`   // Кастомный endpoint для OpenAI-совместимых API
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"` // Go умеет парсить строки вида "60s", "1m"
}

// WeatherConfig — настройки OpenWeatherMap клиента.
type WeatherConfig struct {
	APIKey         string `yaml:"api_key"`          // Поддерживает ${VAR}
	GeoBaseURL     string `yaml:"geo_base_url"`     // Geocoding API endpoint
	WeatherBaseURL string `yaml:"weather_base_url"` // Current Weather API endpoint
	Units          string `yaml:"units"`            // "metric" или "imperial"
	Timeout        string `yaml:"timeout"`          // Timeout для HTTP запросов (например, "15s")
	RateLimit      int    `yaml:"rate_limit"`       // Запросов в минуту (free tier = 60)
	BurstLimit     int    `yaml:"burst_limit"`      // Burst для rate limiter
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *WeatherConfig) GetDefaults() WeatherConfig {
	result := *c // Копируем текущие значения

	if result.GeoBaseURL == "" {
		result.GeoBaseURL = "http://api.openweathermap.org/geo/1.0"
	}
	if result.WeatherBaseURL == "" {
		result.WeatherBaseURL = "https://api.openweathermap.org/data/2.5"
	}
	if result.Units == "" {
		result.Units = "metric"
	}
	if result.Timeout == "" {
		result.Timeout = "15s"
	}
	if result.RateLimit == 0 {
		result.RateLimit = 60 // запросов в минуту, как у free tier
	}
	if result.BurstLimit == 0 {
		result.BurstLimit = 5
	}

	return result
}

// ParseTimeout конвертирует строковый timeout в time.Duration.
// При невалидном значении возвращает дефолт 15s.
func (c *WeatherConfig) ParseTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// CacheConfig — настройки SQLite кэша геокодинга.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // Путь к .db файлу (например, "geocache.db")
}

// PromptsConfig — настройки промптов.
type PromptsConfig struct {
	SystemFile string `yaml:"system_file"` // Опциональный override системного промпта
}

// AppSpecific — общие настройки приложения.
type AppSpecific struct {
	Debug           bool `yaml:"debug"`
	AnswerMaxTokens int  `yaml:"answer_max_tokens"` // Лимит длины ответов (дефолт 300)
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Подставляем переменные окружения.
	// os.ExpandEnv заменяет ${VAR} или $VAR на значение из системы.
	contentWithEnv := os.ExpandEnv(string(rawBytes))

	// 4. Парсим YAML в структуру
	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	// 5. Валидируем критические настройки
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate проверяет обязательные поля.
func (c *AppConfig) validate() error {
	if c.Models.DefaultChat == "" {
		return fmt.Errorf("models.default_chat is required")
	}
	if _, ok := c.Models.Definitions[c.Models.DefaultChat]; !ok {
		return fmt.Errorf("default_chat model '%s' is not defined in definitions", c.Models.DefaultChat)
	}
	if strings.TrimSpace(c.Weather.APIKey) == "" {
		return fmt.Errorf("weather.api_key is required")
	}
	if u := c.Weather.Units; u != "" && u != "metric" && u != "imperial" {
		return fmt.Errorf("weather.units must be 'metric' or 'imperial', got '%s'", u)
	}
	return nil
}

// Helper методы для удобства доступа (Syntactic sugar)

// GetChatModel возвращает конфигурацию модели по умолчанию или по алиасу.
func (c *AppConfig) GetChatModel(name string) (ModelDef, bool) {
	if name == "" {
		name = c.Models.DefaultChat
	}
	m, ok := c.Models.Definitions[name]
	return m, ok
}

// GetAnswerMaxTokens возвращает лимит токенов ответа с дефолтом.
func (c *AppConfig) GetAnswerMaxTokens() int {
	if c.App.AnswerMaxTokens <= 0 {
		return 300
	}
	return c.App.AnswerMaxTokens
}
