// Базовые типы - определяем универсальный язык общения с моделями
package llm

// Role — роль участника диалога.
type Role string

// Константы ролей
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message — одно сообщение диалога.
//
// Для role=assistant может содержать ToolCalls — решение модели вызвать
// инструменты вместо текстового ответа.
// Для role=tool поле ToolCallID связывает результат с конкретным вызовом.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall // Заполнено для assistant, если модель вызывает инструменты
	ToolCallID string     // Заполнено для tool: ID вызова, на который это ответ
}

// ToolCall — запрос модели на вызов инструмента.
type ToolCall struct {
	ID   string // Идентификатор вызова (приходит от API)
	Name string // Имя функции из ToolDefinition
	Args string // Сырой JSON с аргументами
}

// HasToolCalls сообщает, решила ли модель вызвать инструменты.
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// GenerateOptions — параметры сэмплирования для одного запроса.
//
// Оркестратор использует разные параметры на разных фазах хода:
// детерминированный выбор инструмента (temperature 0) и более живую
// финальную формулировку (temperature 0.7).
type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
}
