// Интерфейс Провайдера через который работает всё приложение.

package llm

import "context"

// Provider — контракт для любого AI-сервиса.
//
// toolsArgs — опциональные определения инструментов для Function Calling:
// toolsArgs[0] должен быть []tools.ToolDefinition (any — чтобы избежать
// циклического импорта llm → tools).
type Provider interface {
	// Generate отправляет диалог и возвращает ответное сообщение модели
	// (текст или список tool calls).
	Generate(ctx context.Context, messages []Message, opts GenerateOptions, toolsArgs ...any) (Message, error)
}
