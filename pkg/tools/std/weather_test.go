package std

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ilkoid/pogoda-ai/pkg/weather"
)

// fakeLookuper — мок погодного клиента со сценарным исходом.
type fakeLookuper struct {
	result       *weather.Result
	err          *weather.LookupError
	lastLocation string
	calls        int
}

func (f *fakeLookuper) Lookup(ctx context.Context, location string) (*weather.Result, *weather.LookupError) {
	f.calls++
	f.lastLocation = location
	return f.result, f.err
}

// TestDefinition тестирует схему инструмента.
func TestDefinition(t *testing.T) {
	tool := NewWeatherTool(&fakeLookuper{})
	def := tool.Definition()

	if def.Name != "get_current_weather" {
		t.Errorf("unexpected tool name: %s", def.Name)
	}
	if def.Description == "" {
		t.Error("description must not be empty — LLM routes by it")
	}
	if def.Parameters["type"] != "object" {
		t.Errorf("parameters.type must be object, got %v", def.Parameters["type"])
	}
	required, ok := def.Parameters["required"].([]string)
	if !ok || len(required) != 1 || required[0] != "location" {
		t.Errorf("expected required=[location], got %v", def.Parameters["required"])
	}
}

// TestExecuteSuccess тестирует успешный вызов.
func TestExecuteSuccess(t *testing.T) {
	fake := &fakeLookuper{
		result: &weather.Result{
			Location: "Paris",
			Current: weather.Current{
				Temperature: 18.5,
				FeelsLike:   17.9,
				Humidity:    72,
				WindSpeed:   4.1,
				Description: "scattered clouds",
			},
		},
	}
	tool := NewWeatherTool(fake)

	out, err := tool.Execute(context.Background(), `{"location": "Paris"}`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if fake.lastLocation != "Paris" {
		t.Errorf("expected lookup for Paris, got %q", fake.lastLocation)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["location"] != "Paris" {
		t.Errorf("unexpected location: %v", decoded["location"])
	}
	current, ok := decoded["current"].(map[string]any)
	if !ok {
		t.Fatal("expected current section")
	}
	if current["temperature"] != 18.5 {
		t.Errorf("unexpected temperature: %v", current["temperature"])
	}
}

// TestExecuteLookupError тестирует что провал lookup — это данные, не ошибка Go.
func TestExecuteLookupError(t *testing.T) {
	fake := &fakeLookuper{
		err: &weather.LookupError{
			Kind:     weather.KindNotFound,
			Message:  "Location 'Zzyzxqqq123' not found",
			Location: "Zzyzxqqq123",
		},
	}
	tool := NewWeatherTool(fake)

	out, err := tool.Execute(context.Background(), `{"location": "Zzyzxqqq123"}`)
	if err != nil {
		t.Fatalf("lookup failure must not be a Go error, got: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["error"] != "not_found" {
		t.Errorf("unexpected error tag: %v", decoded["error"])
	}
	if decoded["message"] != "Location 'Zzyzxqqq123' not found" {
		t.Errorf("unexpected message: %v", decoded["message"])
	}
}

// TestExecuteMalformedArguments тестирует битый JSON аргументов.
func TestExecuteMalformedArguments(t *testing.T) {
	fake := &fakeLookuper{}
	tool := NewWeatherTool(fake)

	out, err := tool.Execute(context.Background(), `{"location": `)
	if err != nil {
		t.Fatalf("malformed args must not be a Go error, got: %v", err)
	}
	if fake.calls != 0 {
		t.Error("lookup must not run on malformed arguments")
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["error"] != "malformed_arguments" {
		t.Errorf("unexpected error tag: %v", decoded["error"])
	}
}
