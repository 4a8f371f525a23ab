package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configYAML := `
output: compact
trace: true
max_recursion_depth: 64
`

	if err := os.WriteFile(configFile, []byte(configYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output != "compact" {
		t.Errorf("Output = %q, want %q", cfg.Output, "compact")
	}
	if !cfg.Trace {
		t.Error("Trace = false, want true")
	}
	if cfg.MaxRecursionDepth != 64 {
		t.Errorf("MaxRecursionDepth = %d, want 64", cfg.MaxRecursionDepth)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for nonexistent file")
	}
	if !strings.Contains(err.Error(), "reading config file") {
		t.Errorf("Load() error = %v, want 'reading config file' error", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	invalidYAML := `
output: "unclosed string
`

	if err := os.WriteFile(configFile, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := Load(configFile)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("Load() error = %v, want 'parsing config file' error", err)
	}
}

func TestValidate_InvalidOutput(t *testing.T) {
	cfg := Config{Output: "xml"}
	err := validate(&cfg)
	if err == nil {
		t.Fatal("validate() expected error")
	}
	if !strings.Contains(err.Error(), "output must be") {
		t.Errorf("validate() error = %v, want 'output must be' error", err)
	}
}

func TestValidate_NegativeRecursionDepth(t *testing.T) {
	cfg := Config{MaxRecursionDepth: -1}
	err := validate(&cfg)
	if err == nil {
		t.Fatal("validate() expected error")
	}
	if !strings.Contains(err.Error(), "must not be negative") {
		t.Errorf("validate() error = %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	applyDefaults(&cfg)
	if cfg.Output != "pretty" {
		t.Errorf("Output = %q, want %q", cfg.Output, "pretty")
	}
	if cfg.MaxRecursionDepth != defaultMaxRecursionDepth {
		t.Errorf("MaxRecursionDepth = %d, want %d", cfg.MaxRecursionDepth, defaultMaxRecursionDepth)
	}
}

func TestApplyDefaults_PreservesExistingValues(t *testing.T) {
	cfg := Config{Output: "compact", MaxRecursionDepth: 10}
	applyDefaults(&cfg)
	if cfg.Output != "compact" {
		t.Errorf("Output = %q, want %q", cfg.Output, "compact")
	}
	if cfg.MaxRecursionDepth != 10 {
		t.Errorf("MaxRecursionDepth = %d, want 10", cfg.MaxRecursionDepth)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Output != "pretty" || cfg.MaxRecursionDepth != defaultMaxRecursionDepth {
		t.Errorf("Default() = %+v", cfg)
	}
}
