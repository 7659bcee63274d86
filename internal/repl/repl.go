// Package repl реализует интерактивный read-eval-print цикл ассистента.
//
// Цикл намеренно отделён от main и работает через io.Reader/io.Writer —
// так поведение (команды выхода, формат вывода, обработка провала хода)
// тестируется без терминала.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ilkoid/pogoda-ai/pkg/utils"
)

// TurnRunner — контракт одного хода ассистента.
//
// Интерфейс вместо *agent.TurnRunner чтобы мокировать ходы в тестах.
type TurnRunner interface {
	Run(ctx context.Context, query string) (string, error)
}

// Тексты цикла.
const (
	banner = `Weather Information Assistant
-----------------------------
Ask about weather in any location, or type 'exit' to quit.
`
	promptText      = "Your question: "
	processingText  = "\nProcessing your question..."
	farewellText    = "Goodbye!"
	turnFailureText = "Please try again with a different question."
)

// exitCommands — команды завершения (сравниваются без учёта регистра).
var exitCommands = map[string]bool{
	"exit": true,
	"quit": true,
	"bye":  true,
}

// IsExitCommand сообщает, является ли строка командой выхода.
func IsExitCommand(line string) bool {
	return exitCommands[strings.ToLower(strings.TrimSpace(line))]
}

// Loop — интерактивный цикл поверх TurnRunner.
type Loop struct {
	runner TurnRunner
	in     io.Reader
	out    io.Writer
}

// New создаёт цикл с заданными потоками ввода/вывода.
func New(runner TurnRunner, in io.Reader, out io.Writer) *Loop {
	return &Loop{runner: runner, in: in, out: out}
}

// Run гоняет цикл до команды выхода или конца ввода.
//
// Провал хода печатает общее уведомление и продолжает цикл — процесс
// остаётся жив, состояние между ходами не переносится. Команда выхода
// завершает цикл до любого обращения к LLM.
func (l *Loop) Run(ctx context.Context) error {
	fmt.Fprint(l.out, banner+"\n")

	scanner := bufio.NewScanner(l.in)
	for {
		fmt.Fprint(l.out, promptText)

		if !scanner.Scan() {
			// Конец ввода (Ctrl+D) — выходим так же вежливо
			fmt.Fprintln(l.out, "\n"+farewellText)
			return scanner.Err()
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}

		if IsExitCommand(query) {
			fmt.Fprintln(l.out, farewellText)
			return nil
		}

		fmt.Fprintln(l.out, processingText)

		answer, err := l.runner.Run(ctx, query)
		if err != nil {
			utils.Error("Turn failed", "query", query, "error", err)
			fmt.Fprintf(l.out, "\nAn error occurred: %v\n", err)
			fmt.Fprintln(l.out, turnFailureText)
		} else {
			fmt.Fprintln(l.out, "\nAnswer:")
			fmt.Fprintln(l.out, answer)
		}

		fmt.Fprintln(l.out, "\n"+strings.Repeat("-", 50)+"\n")
	}
}
