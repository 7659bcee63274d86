package tools

import (
	"context"
	"testing"
)

// stubTool — минимальный инструмент для тестов реестра.
type stubTool struct {
	def ToolDefinition
}

func (s *stubTool) Definition() ToolDefinition { return s.def }

func (s *stubTool) Execute(ctx context.Context, argsJSON string) (string, error) {
	return `{"ok": true}`, nil
}

func validDef(name string) ToolDefinition {
	return ToolDefinition{
		Name:        name,
		Description: "stub tool",
		Parameters: JSONSchema{
			"type": "object",
			"properties": map[string]any{
				"location": map[string]any{"type": "string"},
			},
			"required": []string{"location"},
		},
	}
}

// TestRegisterAndGet тестирует регистрацию и поиск.
func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&stubTool{def: validDef("get_current_weather")}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tool, err := r.Get("get_current_weather")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if tool.Definition().Name != "get_current_weather" {
		t.Errorf("unexpected tool name: %s", tool.Definition().Name)
	}

	if !r.Has("get_current_weather") {
		t.Error("Has returned false for registered tool")
	}
	if r.Has("ghost_tool") {
		t.Error("Has returned true for unknown tool")
	}

	if _, err := r.Get("ghost_tool"); err == nil {
		t.Error("expected error for unknown tool")
	}
}

// TestRegisterValidation тестирует отказ на невалидных определениях.
func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		def  ToolDefinition
	}{
		{
			name: "empty name",
			def:  ToolDefinition{Parameters: JSONSchema{"type": "object"}},
		},
		{
			name: "nil parameters",
			def:  ToolDefinition{Name: "t"},
		},
		{
			name: "missing type",
			def:  ToolDefinition{Name: "t", Parameters: JSONSchema{}},
		},
		{
			name: "type not object",
			def:  ToolDefinition{Name: "t", Parameters: JSONSchema{"type": "string"}},
		},
		{
			name: "required not array",
			def:  ToolDefinition{Name: "t", Parameters: JSONSchema{"type": "object", "required": "location"}},
		},
		{
			name: "required element not string",
			def:  ToolDefinition{Name: "t", Parameters: JSONSchema{"type": "object", "required": []any{42}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			if err := r.Register(&stubTool{def: tt.def}); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

// TestGetDefinitions тестирует выдачу всех определений.
func TestGetDefinitions(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&stubTool{def: validDef("a")}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&stubTool{def: validDef("b")}); err != nil {
		t.Fatal(err)
	}

	defs := r.GetDefinitions()
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
}
