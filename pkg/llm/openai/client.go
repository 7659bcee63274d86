// Package openai реализует адаптер LLM провайдера для OpenAI-совместимых API.
//
// Поддерживает Function Calling (tools) для протокола вызова инструментов.
// Groq, Zai, DeepSeek и другие совместимые провайдеры подключаются через
// кастомный BaseURL из конфигурации.
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/ilkoid/pogoda-ai/pkg/config"
	"github.com/ilkoid/pogoda-ai/pkg/llm"
	"github.com/ilkoid/pogoda-ai/pkg/tools"
	"github.com/ilkoid/pogoda-ai/pkg/utils"
	openai "github.com/sashabaranov/go-openai"
)

// Client реализует интерфейс llm.Provider для OpenAI-совместимых API.
//
// Поддерживает:
//   - Базовую генерацию текста
//   - Function Calling (tools) с tool-role сообщениями
//   - Параметры сэмплирования на каждый запрос (temperature, max_tokens)
type Client struct {
	api   *openai.Client
	model string
}

// NewClient создает OpenAI клиент на основе конфигурации модели.
//
// Принимает ModelDef напрямую для упрощения создания клиентов через factory.
// Использует APIKey из конфигурации для аутентификации.
func NewClient(modelDef config.ModelDef) *Client {
	// Поддержка custom BaseURL для non-OpenAI провайдеров (Groq, Zai, DeepSeek)
	cfg := openai.DefaultConfig(modelDef.APIKey)
	if modelDef.BaseURL != "" {
		cfg.BaseURL = modelDef.BaseURL
	}

	client := openai.NewClientWithConfig(cfg)

	return &Client{
		api:   client,
		model: modelDef.ModelName,
	}
}

// Generate выполняет запрос к API и возвращает ответ модели.
//
// Поддерживает опциональную передачу definitions инструментов для Function Calling:
//
//	toolsArgs[0] должен быть []tools.ToolDefinition
//
// Алгоритм:
//  1. Конвертирует внутренние сообщения в формат OpenAI SDK
//  2. Применяет параметры сэмплирования из opts
//  3. Если переданы tools — добавляет их в запрос с tool_choice=auto
//  4. Вызывает API
//  5. Конвертирует ответ обратно в наш формат, извлекая ToolCalls
func (c *Client) Generate(ctx context.Context, messages []llm.Message, opts llm.GenerateOptions, toolsArgs ...any) (llm.Message, error) {
	startTime := time.Now()

	utils.Debug("LLM request started",
		"model", c.model,
		"messages_count", len(messages),
		"temperature", opts.Temperature)

	// 1. Конвертируем наши сообщения в формат OpenAI SDK
	openaiMsgs := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		openaiMsgs[i] = mapToOpenAI(m)
	}

	// 2. Создаём базовый запрос с параметрами сэмплирования.
	// go-openai пропускает Temperature == 0 при сериализации (omitempty),
	// поэтому для детерминированной фазы ставим малое ненулевое значение.
	temperature := float32(opts.Temperature)
	if opts.Temperature == 0 {
		temperature = 1e-8
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    openaiMsgs,
		Temperature: temperature,
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}

	// 3. Добавляем tools если переданы
	// Ожидаем toolsArgs[0] = []tools.ToolDefinition
	if len(toolsArgs) > 0 {
		toolDefs, ok := toolsArgs[0].([]tools.ToolDefinition)
		if !ok {
			return llm.Message{}, fmt.Errorf("invalid tools type: expected []tools.ToolDefinition, got %T", toolsArgs[0])
		}

		req.Tools = convertToolsToOpenAI(toolDefs)

		// Включаем автоматический режим — LLM сама решает когда вызывать tools
		req.ToolChoice = "auto"
	}

	// 4. Вызываем API
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		utils.Error("LLM API request failed",
			"error", err,
			"model", c.model,
			"duration_ms", time.Since(startTime).Milliseconds())
		return llm.Message{}, fmt.Errorf("openai api error: %w", err)
	}

	// Проверяем что есть хотя бы один выбор
	if len(resp.Choices) == 0 {
		return llm.Message{}, fmt.Errorf("no choices in response")
	}

	// 5. Маппим ответ обратно в наш формат
	choice := resp.Choices[0].Message

	result := llm.Message{
		Role:    llm.Role(choice.Role),
		Content: choice.Content,
	}

	// 6. Извлекаем ToolCalls если модель решила вызвать функции
	if len(choice.ToolCalls) > 0 {
		result.ToolCalls = make([]llm.ToolCall, len(choice.ToolCalls))
		for i, tc := range choice.ToolCalls {
			result.ToolCalls[i] = llm.ToolCall{
				ID:   tc.ID,
				Name: tc.Function.Name,
				Args: tc.Function.Arguments,
			}
		}
	}

	utils.Info("LLM response received",
		"model", c.model,
		"tool_calls_count", len(result.ToolCalls),
		"content_length", len(result.Content),
		"duration_ms", time.Since(startTime).Milliseconds())

	return result, nil
}

// mapToOpenAI конвертирует наше внутреннее сообщение в формат SDK.
//
// Для assistant-сообщений с ToolCalls и для tool-сообщений воспроизводит
// структуру, которую ожидает Chat Completions API при повторной отправке
// истории (вторая фаза протокола).
func mapToOpenAI(m llm.Message) openai.ChatCompletionMessage {
	msg := openai.ChatCompletionMessage{
		Role:    string(m.Role),
		Content: m.Content,
	}

	// assistant решил вызвать инструменты — реплеим tool_calls как есть
	if len(m.ToolCalls) > 0 {
		msg.ToolCalls = make([]openai.ToolCall, len(m.ToolCalls))
		for i, tc := range m.ToolCalls {
			msg.ToolCalls[i] = openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Args,
				},
			}
		}
	}

	// tool-сообщение должно ссылаться на вызов, на который отвечает
	if m.ToolCallID != "" {
		msg.ToolCallID = m.ToolCallID
	}

	return msg
}

// convertToolsToOpenAI конвертирует определения инструментов во внутреннем формате
// в формат OpenAI Function Calling.
//
// Соответствие структур:
//
//	tools.ToolDefinition → openai.Tool (type=function)
//	Parameters (JSONSchema) → openai.FunctionDefinition.Parameters
//
// Поскольку ToolDefinition.Parameters уже является JSON Schema объектом,
// он напрямую передаётся в OpenAI SDK.
func convertToolsToOpenAI(defs []tools.ToolDefinition) []openai.Tool {
	result := make([]openai.Tool, len(defs))

	for i, def := range defs {
		result[i] = openai.Tool{
			Type: "function",
			Function: &openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		}
	}

	return result
}
