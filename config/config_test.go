package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	cfgDir := filepath.Join(dir, ".duolog")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.LLMClient != "" || cfg.Model != "" || cfg.MaxTurns != 0 {
		t.Errorf("Expected zero-valued config without files, got %+v", cfg)
	}
}

func TestLoadConfigProjectOverridesUser(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(project)

	writeConfig(t, home, "llm: openai\nmodel: gpt-4o\nmax_turns: 10\n")
	writeConfig(t, project, "model: gpt-4o-mini\n")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.LLMClient != "openai" {
		t.Errorf("Expected user-level llm to survive, got %q", cfg.LLMClient)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("Expected project-level model to win, got %q", cfg.Model)
	}
	if cfg.MaxTurns != 10 {
		t.Errorf("Expected user-level max_turns to survive, got %d", cfg.MaxTurns)
	}
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(dir)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DUOLOG_TEST_SECRET=abc123\n"), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("DUOLOG_TEST_SECRET") })

	if _, err := LoadConfig(); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if os.Getenv("DUOLOG_TEST_SECRET") != "abc123" {
		t.Error("Expected the .env value to be loaded into the environment")
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	project := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(project)

	writeConfig(t, project, "llm: [unclosed\n")

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected an error for malformed YAML")
	}
}
