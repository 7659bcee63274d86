// Package agent реализует оркестрацию одного хода погодного ассистента.
//
// TurnRunner выполняет двухфазный протокол вызова инструмента:
//  1. Запрос с объявленным инструментом — модель сама решает, звать ли его
//     (детерминированное сэмплирование, temperature 0)
//  2. Если инструмент вызван — повтор диалога с его результатом для финальной
//     формулировки (temperature 0.7 для более живого текста)
//
// Работает только через llm.Provider и tools.Registry; состояние хода
// строится заново на каждый запрос и отбрасывается после ответа —
// многоходовой памяти нет.
package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/ilkoid/pogoda-ai/pkg/llm"
	"github.com/ilkoid/pogoda-ai/pkg/tools"
	"github.com/ilkoid/pogoda-ai/pkg/utils"
)

// DefaultSystemPrompt — системная инструкция ассистента.
//
// Запрет на выдумывание данных при ошибке lookup — контракт на уровне
// промпта, кодом он не проверяется.
const DefaultSystemPrompt = `You are a helpful weather assistant.
- ONLY answer questions related to current weather.
- If the user asks about something unrelated to weather, respond with: "I can only answer questions about current weather. Please ask me about the weather in a specific location."
- If there's an error fetching weather data, clearly communicate that to the user without making up information.
- Never hallucinate or make up weather information.
- Don't provide forecasts unless that data is explicitly available.`

// UnknownToolAnswer — статический ответ на вызов незнакомого инструмента.
const UnknownToolAnswer = "I'm not sure how to handle that request. Please ask about the weather in a specific location."

// Температуры двух фаз протокола.
const (
	decisionTemperature = 0   // выбор инструмента должен быть детерминированным
	answerTemperature   = 0.7 // финальная формулировка — более естественной
)

// Config — конфигурация для создания TurnRunner.
type Config struct {
	// LLM — провайдер языковой модели (обязательный)
	LLM llm.Provider

	// Registry — реестр зарегистрированных инструментов (обязательный)
	Registry *tools.Registry

	// SystemPrompt — override системной инструкции (пустой = дефолт)
	SystemPrompt string

	// MaxTokens — лимит длины ответов модели (0 = дефолт 300)
	MaxTokens int
}

// TurnRunner выполняет один ход: запрос пользователя → финальный ответ.
//
// Thread-safe через sync.Mutex — ходы строго последовательны.
type TurnRunner struct {
	llm          llm.Provider
	registry     *tools.Registry
	systemPrompt string
	maxTokens    int

	// mu защищает одновременные вызовы Run
	mu sync.Mutex
}

// New создаёт новый TurnRunner с заданной конфигурацией.
func New(cfg Config) (*TurnRunner, error) {
	if cfg.LLM == nil {
		return nil, fmt.Errorf("cfg.LLM is required")
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("cfg.Registry is required")
	}

	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 300
	}

	return &TurnRunner{
		llm:          cfg.LLM,
		registry:     cfg.Registry,
		systemPrompt: cfg.SystemPrompt,
		maxTokens:    cfg.MaxTokens,
	}, nil
}

// Run выполняет полный ход для одного запроса пользователя.
//
// Возвращает финальный текст ответа. Ошибка означает провал хода
// (LLM недоступна и т.п.) — вызывающая сторона печатает общее уведомление
// и продолжает цикл; частичное состояние между ходами не переносится.
//
// Провал погодного lookup ошибкой НЕ является: он сериализуется данными,
// уходит модели второй фазой, и та пересказывает его пользователю.
func (r *TurnRunner) Run(ctx context.Context, query string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	utils.Info("Turn started", "query", query)

	// Фаза 1: модель решает, нужен ли инструмент
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: r.systemPrompt},
		{Role: llm.RoleUser, Content: query},
	}

	decision, err := r.llm.Generate(ctx, messages,
		llm.GenerateOptions{Temperature: decisionTemperature, MaxTokens: r.maxTokens},
		r.registry.GetDefinitions())
	if err != nil {
		return "", fmt.Errorf("decision request failed: %w", err)
	}

	// Модель ответила текстом — инструмент не нужен (не погодный вопрос
	// или модель ответила напрямую)
	if !decision.HasToolCalls() {
		utils.Info("Turn answered without tool", "content_length", len(decision.Content))
		return decision.Content, nil
	}

	// Модель вызвала инструмент — исполняем первый вызов
	call := decision.ToolCalls[0]

	tool, err := r.registry.Get(call.Name)
	if err != nil {
		// Незнакомое имя — не исполняем, отвечаем статической заглушкой
		utils.Warn("Model called unknown tool", "name", call.Name)
		return UnknownToolAnswer, nil
	}

	utils.Info("Executing tool", "name", call.Name, "args", call.Args)

	outcome, err := tool.Execute(ctx, call.Args)
	if err != nil {
		return "", fmt.Errorf("tool '%s' execution failed: %w", call.Name, err)
	}

	// Фаза 2: реплей диалога с результатом инструмента для финального ответа
	replay := []llm.Message{
		{Role: llm.RoleSystem, Content: r.systemPrompt},
		{Role: llm.RoleUser, Content: query},
		{Role: llm.RoleAssistant, ToolCalls: decision.ToolCalls},
		{Role: llm.RoleTool, ToolCallID: call.ID, Content: outcome},
	}

	final, err := r.llm.Generate(ctx, replay,
		llm.GenerateOptions{Temperature: answerTemperature, MaxTokens: r.maxTokens})
	if err != nil {
		return "", fmt.Errorf("answer request failed: %w", err)
	}

	utils.Info("Turn completed", "content_length", len(final.Content))
	return final.Content, nil
}
