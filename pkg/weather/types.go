package weather

import (
	"encoding/json"
	"fmt"
)

// ErrorKind представляет тип ошибки при получении погоды.
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindNotFound
	KindProvider
	KindNetwork
	KindData
)

// String возвращает строковое представление типа ошибки.
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindProvider:
		return "provider_error"
	case KindNetwork:
		return "network_error"
	case KindData:
		return "data_error"
	default:
		return "unexpected_error"
	}
}

// LookupError — структурированная ошибка одного lookup.
//
// Ровно один из Result/LookupError возвращается из Lookup. Ошибка терминальна
// для вызова — retry на этом уровне не делается. Kind-ы взаимоисключающие:
//   - KindNotFound: геокодер не нашёл локацию (пустой результат)
//   - KindProvider: погодный API вернул ошибку в собственном payload (cod != 200)
//   - KindNetwork: транспортная ошибка (connection, timeout, DNS)
//   - KindData: в ответе провайдера нет ожидаемого поля
//   - KindUnexpected: всё остальное
type LookupError struct {
	Kind     ErrorKind
	Message  string
	Status   int    // Код ошибки провайдера (только для KindProvider)
	Location string // Исходная строка запроса
}

// Error реализует error интерфейс.
func (e *LookupError) Error() string {
	if e.Kind == KindProvider {
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Current — текущие погодные условия.
type Current struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Description string  `json:"weather_description"`
}

// Result — успешный результат одного lookup.
//
// Location — исходная строка пользователя, не каноническая форма геокодера.
// Результат неизменяем после создания.
type Result struct {
	Location string  `json:"location"`
	Current  Current `json:"current"`
}

// errorPayload — JSON форма ошибки для передачи в LLM.
type errorPayload struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Location   string `json:"location,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

// OutcomeJSON сериализует исход lookup в единый структурированный payload.
//
// Успех и ошибка кодируются одинаково в том смысле, что вызывающая сторона
// всегда получает один JSON объект; наличие поля "error" отличает провал
// от успеха. Именно этот текст уходит обратно модели как результат инструмента.
func OutcomeJSON(res *Result, lerr *LookupError) (string, error) {
	if lerr != nil {
		payload := errorPayload{
			Error:      lerr.Kind.String(),
			Message:    lerr.Message,
			Location:   lerr.Location,
			StatusCode: lerr.Status,
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return "", fmt.Errorf("failed to marshal lookup error: %w", err)
		}
		return string(data), nil
	}

	data, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("failed to marshal lookup result: %w", err)
	}
	return string(data), nil
}
