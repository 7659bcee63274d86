// Package app собирает компоненты приложения из конфигурации.
//
// Initialize — единственное место инициализации: все фронтенды (REPL, TUI,
// диагностические утилиты) строят один и тот же граф зависимостей здесь.
package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilkoid/pogoda-ai/pkg/agent"
	"github.com/ilkoid/pogoda-ai/pkg/config"
	"github.com/ilkoid/pogoda-ai/pkg/factory"
	"github.com/ilkoid/pogoda-ai/pkg/llm"
	"github.com/ilkoid/pogoda-ai/pkg/tools"
	"github.com/ilkoid/pogoda-ai/pkg/tools/std"
	"github.com/ilkoid/pogoda-ai/pkg/utils"
	"github.com/ilkoid/pogoda-ai/pkg/weather"
	"github.com/ilkoid/pogoda-ai/pkg/weather/geocache"
)

// Components — собранный граф зависимостей приложения.
//
// Всё создаётся один раз на старте процесса и передаётся по ссылке —
// глобальных синглтонов нет.
type Components struct {
	Config   *config.AppConfig
	Provider llm.Provider
	Registry *tools.Registry
	Weather  *weather.Client
	Runner   *agent.TurnRunner

	geoCache *geocache.Cache // nil если кэш выключен
}

// Initialize строит все компоненты из загруженного конфига.
//
// Порядок:
//  1. LLM провайдер из дефолтной чат-модели
//  2. Погодный клиент (+ опциональный SQLite кэш геокодинга)
//  3. Реестр инструментов с единственным get_current_weather
//  4. TurnRunner поверх провайдера и реестра
func Initialize(cfg *config.AppConfig) (*Components, error) {
	// 1. LLM провайдер
	modelDef, ok := cfg.GetChatModel("")
	if !ok {
		return nil, fmt.Errorf("default chat model is not defined")
	}

	provider, err := factory.NewLLMProvider(modelDef)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}
	utils.Info("LLM provider created", "provider", modelDef.Provider, "model", modelDef.ModelName)

	// 2. Погодный клиент
	weatherClient := weather.New(cfg.Weather)

	var cache *geocache.Cache
	if cfg.Cache.Enabled {
		path := cfg.Cache.Path
		if path == "" {
			path = "geocache.db"
		}
		cache, err = geocache.Open(path)
		if err != nil {
			// Кэш — оптимизация, не обязательное условие работы
			utils.Warn("Failed to open geocache, continuing without it", "path", path, "error", err)
		} else {
			weatherClient.SetGeoCache(cache)
			utils.Info("Geocache enabled", "path", path)
		}
	}

	// 3. Реестр инструментов
	registry := tools.NewRegistry()
	if err := registry.Register(std.NewWeatherTool(weatherClient)); err != nil {
		return nil, fmt.Errorf("failed to register weather tool: %w", err)
	}

	// 4. Системный промпт (опциональный override из файла)
	systemPrompt := ""
	if cfg.Prompts.SystemFile != "" {
		raw, err := os.ReadFile(cfg.Prompts.SystemFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read system prompt file: %w", err)
		}
		systemPrompt = strings.TrimSpace(string(raw))
	}

	// 5. TurnRunner
	runner, err := agent.New(agent.Config{
		LLM:          provider,
		Registry:     registry,
		SystemPrompt: systemPrompt,
		MaxTokens:    cfg.GetAnswerMaxTokens(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create turn runner: %w", err)
	}

	return &Components{
		Config:   cfg,
		Provider: provider,
		Registry: registry,
		Weather:  weatherClient,
		Runner:   runner,
		geoCache: cache,
	}, nil
}

// Close освобождает ресурсы (кэш геокодинга).
func (c *Components) Close() {
	if c.geoCache != nil {
		if err := c.geoCache.Close(); err != nil {
			utils.Warn("Failed to close geocache", "error", err)
		}
	}
}
