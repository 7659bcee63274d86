package factory

import (
	"fmt"

	"github.com/ilkoid/pogoda-ai/pkg/config"
	"github.com/ilkoid/pogoda-ai/pkg/llm"
	"github.com/ilkoid/pogoda-ai/pkg/llm/openai"
)

// NewLLMProvider создает провайдера на основе конфигурации модели.
//
// Все поддерживаемые провайдеры OpenAI-совместимы и отличаются только
// BaseURL и ключом — поэтому один адаптер на всех.
func NewLLMProvider(modelDef config.ModelDef) (llm.Provider, error) {
	switch modelDef.Provider {
	case "groq", "openai", "zai", "deepseek":
		return openai.NewClient(modelDef), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s", modelDef.Provider)
	}
}
