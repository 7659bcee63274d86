// Красота

package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Цвета
	primaryColor   = lipgloss.Color("62")  // Фиолетовый
	secondaryColor = lipgloss.Color("205") // Розовый

	// HeaderStyle — стиль хедера TUI.
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 1).
			Bold(true)

	// UserMsgStyle — реплики пользователя.
	UserMsgStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true).
			Render

	// AssistantMsgStyle — ответы ассистента.
	AssistantMsgStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Render

	// SystemMsgStyle — служебные сообщения.
	SystemMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")). // Зеленый
			Render

	// ErrorMsgStyle — ошибки.
	ErrorMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true).
			Render
)
