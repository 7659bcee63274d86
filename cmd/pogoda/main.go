// Pogoda — интерактивный погодный ассистент (stdin/stdout).
//
// Задаёт LLM вопрос пользователя с объявленным инструментом get_current_weather,
// при необходимости ходит в OpenWeatherMap и печатает финальный ответ модели.
//
// Использование:
//
//	pogoda [-config config.yaml]
//
// Требуются ключи в окружении: GROQ_API_KEY, OPENWEATHERMAP_API_KEY
// (подставляются в config.yaml через ${VAR}).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ilkoid/pogoda-ai/internal/repl"
	"github.com/ilkoid/pogoda-ai/pkg/app"
	"github.com/ilkoid/pogoda-ai/pkg/config"
	"github.com/ilkoid/pogoda-ai/pkg/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.yaml", "путь к конфигурационному файлу")
	flag.Parse()

	// 1. Инициализируем логгер
	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logger: %v\n", err)
	}
	defer utils.Close()

	utils.Info("Pogoda started", "config", *configPath)

	// 2. Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.Error("Failed to load config", "error", err)
		return err
	}

	// 3. Собираем компоненты
	components, err := app.Initialize(cfg)
	if err != nil {
		utils.Error("Components initialization failed", "error", err)
		return err
	}
	defer components.Close()

	// 4. Запускаем интерактивный цикл
	loop := repl.New(components.Runner, os.Stdin, os.Stdout)
	return loop.Run(context.Background())
}
