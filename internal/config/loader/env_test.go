package loader

import (
	"strings"
	"testing"
)

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("ORDERLY_NUMERIC", "true")
	t.Setenv("ORDERLY_DUPLICATES", "off")
	t.Setenv("ORDERLY_LOG_LEVEL", "debug")

	config, err := NewEnvLoader("ORDERLY_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(config, "settings.numeric"); !ok || val != true {
		t.Errorf("settings.numeric = %v, want true", val)
	}
	if val, ok := getByPath(config, "settings.duplicates"); !ok || val != false {
		t.Errorf("settings.duplicates = %v, want false", val)
	}
	if val, ok := getByPath(config, "settings.logLevel"); !ok || val != "debug" {
		t.Errorf("settings.logLevel = %v, want 'debug'", val)
	}
}

func TestEnvLoader_LoadUnmapped(t *testing.T) {
	t.Setenv("ORDERLY_CUSTOM_SETTING", "value")

	config, err := NewEnvLoader("ORDERLY_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(config, "custom.setting"); !ok || val != "value" {
		t.Errorf("custom.setting = %v, want 'value'", val)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	loader := NewEnvLoader("ORDERLY_")

	tests := []struct {
		env      string
		expected string
	}{
		{"ORDERLY_SETTINGS_LOG_LEVEL", "settings.logLevel"},
		{"ORDERLY_SETTINGS_NUMERIC", "settings.numeric"},
		{"ORDERLY_SIMPLE", "simple"},
		{"ORDERLY_DEEP_NESTED_PATH", "deep.nestedPath"},
	}

	for _, tt := range tests {
		got := loader.envToPath(tt.env)
		if got != tt.expected {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.expected)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{"1", true},
		{"false", false},
		{"no", false},
		{"off", false},
		{"0", false},
		{"42", int64(42)},
		{"-10", int64(-10)},
		{"3.14", 3.14},
		{"-2.5", -2.5},
		{"hello", "hello"},
		{"hello world", "hello world"},
		{"", ""},
	}

	for _, tt := range tests {
		got := parseValue(tt.input)
		if got != tt.expected {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)",
				tt.input, got, got, tt.expected, tt.expected)
		}
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	loader := NewEnvLoader("ORDERLY_")
	loader.AddMapping("CUSTOM_VAR", "custom.path")
	t.Setenv("CUSTOM_VAR", "custom_value")

	config, _ := loader.Load()

	if val, ok := getByPath(config, "custom.path"); !ok || val != "custom_value" {
		t.Errorf("custom.path = %v, want 'custom_value'", val)
	}
}

func TestNewEnvLoaderWithMapping(t *testing.T) {
	loader := NewEnvLoaderWithMapping("MY_", map[string]string{
		"MY_VAR": "my.setting",
	})
	t.Setenv("MY_VAR", "test_value")

	config, _ := loader.Load()

	if val, ok := getByPath(config, "my.setting"); !ok || val != "test_value" {
		t.Errorf("my.setting = %v, want 'test_value'", val)
	}
}

// Helper to get value by path
func getByPath(data map[string]any, path string) (any, bool) {
	current := any(data)
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		val, exists := m[part]
		if !exists {
			return nil, false
		}
		current = val
	}
	return current, true
}
