// Weather Test Utility - CLI утилита для проверки погодного инструмента без LLM.
//
// Прогоняет get_current_weather по списку локаций из аргументов и печатает
// сырые JSON исходы. Удобно для проверки ключа OpenWeatherMap и кэша.
//
// Использование:
//
//	weather-test [-config config.yaml] "Paris" "San Francisco, CA" "Zzyzxqqq123"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilkoid/pogoda-ai/pkg/app"
	"github.com/ilkoid/pogoda-ai/pkg/config"
	"github.com/ilkoid/pogoda-ai/pkg/tools/std"
	"github.com/ilkoid/pogoda-ai/pkg/utils"
)

// TestResult - результат одного вызова инструмента
type TestResult struct {
	Location string        `json:"location"`
	Result   string        `json:"result"`
	Duration time.Duration `json:"duration"`
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

	locations := flag.Args()
	if len(locations) == 0 {
		return fmt.Errorf("usage: weather-test [-config config.yaml] <location> [location...]")
	}

	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logger: %v\n", err)
	}
	defer utils.Close()

	utils.Info("Weather Test Utility started", "locations", len(locations))

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	components, err := app.Initialize(cfg)
	if err != nil {
		return err
	}
	defer components.Close()

	// Зовём инструмент напрямую, мимо LLM — так видно сырой payload,
	// который получила бы модель
	tool, err := components.Registry.Get(std.WeatherToolName)
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, location := range locations {
		args, err := json.Marshal(map[string]string{"location": location})
		if err != nil {
			return err
		}

		start := time.Now()
		outcome, err := tool.Execute(ctx, string(args))
		if err != nil {
			return fmt.Errorf("tool execution failed for '%s': %w", location, err)
		}

		result := TestResult{
			Location: location,
			Result:   outcome,
			Duration: time.Since(start),
		}

		fmt.Printf("=== %s (%v)\n%s\n\n", result.Location, result.Duration.Round(time.Millisecond), result.Result)
	}

	return nil
}
