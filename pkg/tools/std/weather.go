// Package std предоставляет стандартные инструменты ассистента.
//
// WeatherTool — единственный инструмент погодного ассистента: обёртка
// над pkg/weather для Function Calling.
package std

import (
	"context"
	"encoding/json"

	"github.com/ilkoid/pogoda-ai/pkg/tools"
	"github.com/ilkoid/pogoda-ai/pkg/utils"
	"github.com/ilkoid/pogoda-ai/pkg/weather"
)

// WeatherToolName — имя функции, объявленное модели.
const WeatherToolName = "get_current_weather"

// Lookuper — контракт погодного клиента.
//
// Интерфейс вместо *weather.Client чтобы мокировать lookup в тестах.
type Lookuper interface {
	Lookup(ctx context.Context, location string) (*weather.Result, *weather.LookupError)
}

// WeatherTool реализует tools.Tool поверх погодного SDK.
//
// Контракт "Raw In, String Out": на входе сырой JSON аргументов от LLM,
// на выходе всегда один JSON payload — успех или структурированная ошибка.
// Провал lookup — это данные для модели, а не ошибка Go: модель обязана
// пересказать его пользователю, а не выдумывать погоду.
type WeatherTool struct {
	lookup Lookuper
}

// NewWeatherTool создает инструмент поверх готового погодного клиента.
func NewWeatherTool(lookup Lookuper) *WeatherTool {
	return &WeatherTool{lookup: lookup}
}

// Definition возвращает определение инструмента для function calling.
//
// Description уходит модели как есть — по нему LLM решает, звать ли инструмент.
func (t *WeatherTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name:        WeatherToolName,
		Description: "Get the current weather in a given location",
		Parameters: tools.JSONSchema{
			"type": "object",
			"properties": map[string]any{
				"location": map[string]any{
					"type":        "string",
					"description": "The city and state, e.g. San Francisco, CA",
				},
			},
			"required": []string{"location"},
		},
	}
}

// malformedArgsPayload строит исход для битого JSON аргументов.
//
// Битые аргументы — такой же диагностируемый провал, как и сетевая ошибка:
// кодируем его данными и отдаём модели, вместо того чтобы ронять ход.
func malformedArgsPayload(parseErr error) string {
	payload := map[string]any{
		"error":   "malformed_arguments",
		"message": "Tool call arguments are not valid JSON: " + parseErr.Error(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		// Статический fallback — payload выше всегда сериализуем
		return `{"error": "malformed_arguments", "message": "Tool call arguments are not valid JSON"}`
	}
	return string(data)
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
func (t *WeatherTool) Execute(ctx context.Context, argsJSON string) (string, error) {
	var args struct {
		Location string `json:"location"`
	}
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		utils.Warn("Weather tool got malformed arguments", "args", argsJSON, "error", err)
		return malformedArgsPayload(err), nil
	}

	utils.Info("Weather tool invoked", "location", args.Location)

	result, lerr := t.lookup.Lookup(ctx, args.Location)
	return weather.OutcomeJSON(result, lerr)
}
