package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("GROQ_API_KEY", "test-key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("explicit port lost: %d", cfg.Server.Port)
	}
	if cfg.Engine.Provider != "groq" {
		t.Errorf("expected default provider groq, got %q", cfg.Engine.Provider)
	}
	if cfg.Engine.APIKey != "test-key" {
		t.Errorf("credential not picked up from the environment: %q", cfg.Engine.APIKey)
	}
	if cfg.Analysis.CacheTTLMinutes != 60 {
		t.Errorf("expected default TTL of 60 minutes, got %d", cfg.Analysis.CacheTTLMinutes)
	}
	if cfg.Analysis.MaxFindings != 10 {
		t.Errorf("expected default finding cap of 10, got %d", cfg.Analysis.MaxFindings)
	}
	if cfg.Fix.Mode != "surgical" {
		t.Errorf("expected default fix mode surgical, got %q", cfg.Fix.Mode)
	}
	if cfg.EngineModel() != "llama-3.3-70b-versatile" {
		t.Errorf("unexpected default model: %q", cfg.EngineModel())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoadOllamaProvider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "engine:\n  provider: ollama\n  ollama:\n    model: llama3\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Engine.Ollama.Host != "http://localhost:11434" {
		t.Errorf("expected default ollama host, got %q", cfg.Engine.Ollama.Host)
	}
	if cfg.EngineModel() != "llama3" {
		t.Errorf("unexpected model: %q", cfg.EngineModel())
	}
}
