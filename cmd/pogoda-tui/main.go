/*
Pogoda TUI - терминальный интерфейс погодного ассистента на Bubble Tea.
Та же логика хода, что и в cmd/pogoda, но с чат-окном вместо голого stdin.
*/

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/ilkoid/pogoda-ai/internal/repl"
	"github.com/ilkoid/pogoda-ai/internal/ui"
	"github.com/ilkoid/pogoda-ai/pkg/app"
	"github.com/ilkoid/pogoda-ai/pkg/config"
	"github.com/ilkoid/pogoda-ai/pkg/utils"
)

// teaMsg типы для коммуникации
type answerMsg struct{ text string }
type turnErrMsg struct{ err error }

// chatModel - TUI модель чата
type chatModel struct {
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	runner  repl.TurnRunner
	lines   []string
	loading bool
	ready   bool
}

// initialModel создает начальное состояние TUI
func initialModel(runner repl.TurnRunner) chatModel {
	ta := textarea.New()
	ta.Placeholder = "Ask about the weather..."
	ta.Focus()
	ta.Prompt = "┃ "
	ta.SetHeight(3)
	ta.CharLimit = 1000
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false) // Enter отправляет, не переносит строку

	vp := viewport.New(0, 0)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := chatModel{
		runner:   runner,
		textarea: ta,
		viewport: vp,
		spinner:  sp,
	}
	m.lines = []string{
		ui.SystemMsgStyle("Ask about weather in any location."),
		ui.SystemMsgStyle("Type 'exit' (or Ctrl+C) to quit."),
	}
	return m
}

// Init инициализирует TUI
func (m chatModel) Init() tea.Cmd {
	return textarea.Blink
}

// makeTurnCmd запускает один ход ассистента в фоне
func makeTurnCmd(runner repl.TurnRunner, query string) tea.Cmd {
	return func() tea.Msg {
		answer, err := runner.Run(context.Background(), query)
		if err != nil {
			return turnErrMsg{err: err}
		}
		return answerMsg{text: answer}
	}
}

// appendLine добавляет строку в лог чата и прокручивает вниз
func (m *chatModel) appendLine(line string) {
	width := m.viewport.Width
	if width > 0 {
		line = wordwrap.String(line, width)
	}
	m.lines = append(m.lines, line)
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

// Update обрабатывает события
func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 1
		footerHeight := m.textarea.Height() + 2

		vpHeight := msg.Height - headerHeight - footerHeight
		if vpHeight < 0 {
			vpHeight = 0
		}

		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
		m.textarea.SetWidth(msg.Width)
		m.ready = true
		m.viewport.SetContent(strings.Join(m.lines, "\n"))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" || m.loading {
				return m, nil
			}

			m.textarea.Reset()

			// Команды выхода работают и в TUI
			if repl.IsExitCommand(input) {
				m.appendLine(ui.SystemMsgStyle("Goodbye!"))
				return m, tea.Quit
			}

			m.appendLine(ui.UserMsgStyle("You: ") + input)

			m.loading = true
			return m, tea.Batch(
				m.spinner.Tick,
				makeTurnCmd(m.runner, input),
			)
		}

	case answerMsg:
		m.loading = false
		m.appendLine(ui.AssistantMsgStyle("Pogoda: " + msg.text))

	case turnErrMsg:
		m.loading = false
		m.appendLine(ui.ErrorMsgStyle("Error: " + msg.err.Error()))
		m.appendLine(ui.SystemMsgStyle("Please try again with a different question."))

	case spinner.TickMsg:
		if m.loading {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, tea.Batch(tiCmd, vpCmd, spCmd)
		}
	}

	return m, tea.Batch(tiCmd, vpCmd)
}

// View рендерит интерфейс
func (m chatModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := ui.HeaderStyle.Render("Pogoda — Weather Information Assistant")

	footer := m.textarea.View()
	if m.loading {
		footer = m.spinner.View() + " Processing your question..."
	}

	return fmt.Sprintf("%s\n%s\n%s", header, m.viewport.View(), footer)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.yaml", "путь к конфигурационному файлу")
	flag.Parse()

	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logger: %v\n", err)
	}
	defer utils.Close()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	components, err := app.Initialize(cfg)
	if err != nil {
		return err
	}
	defer components.Close()

	program := tea.NewProgram(initialModel(components.Runner), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
