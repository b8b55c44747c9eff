package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Whisper.Command != "whisper-cli" {
		t.Fatalf("unexpected whisper command: %q", cfg.Whisper.Command)
	}
	if cfg.Router.OllamaHost != "http://localhost:11434" {
		t.Fatalf("unexpected ollama host: %q", cfg.Router.OllamaHost)
	}
	if len(cfg.Router.EditTriggers) != 5 || cfg.Router.EditTriggers[0] != "edit:" {
		t.Fatalf("unexpected edit triggers: %v", cfg.Router.EditTriggers)
	}
	if !cfg.Grammar.Enabled || cfg.Grammar.MinWords != 3 {
		t.Fatalf("unexpected grammar config: %+v", cfg.Grammar)
	}
	if cfg.Remote.Models["haiku"] == "" || cfg.Remote.Models["sonnet"] == "" || cfg.Remote.Models["opus"] == "" {
		t.Fatalf("expected remote tier models, got %v", cfg.Remote.Models)
	}
	wantPID := filepath.Join(home, ".config", "murmur", "murmur.pid")
	if cfg.Daemon.PIDPath != wantPID {
		t.Fatalf("unexpected pid path: %q", cfg.Daemon.PIDPath)
	}
	if cfg.Daemon.EventBuffer != 8 {
		t.Fatalf("unexpected event buffer: %d", cfg.Daemon.EventBuffer)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "config.yaml")
	contents := `
whisper:
  command: my-whisper
  timeout: 30s
grammar:
  enabled: false
  min_words: 5
router:
  ollama_model: llama3
timer:
  sound_enabled: false
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Whisper.Command != "my-whisper" || cfg.Whisper.Timeout != 30*time.Second {
		t.Fatalf("unexpected whisper config: %+v", cfg.Whisper)
	}
	if cfg.Grammar.Enabled || cfg.Grammar.MinWords != 5 {
		t.Fatalf("unexpected grammar config: %+v", cfg.Grammar)
	}
	if cfg.Router.OllamaModel != "llama3" {
		t.Fatalf("unexpected ollama model: %q", cfg.Router.OllamaModel)
	}
	if cfg.Timer.SoundEnabled {
		t.Fatalf("expected timer sound disabled")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "config.yaml")
	if err := os.WriteFile(path, []byte("router:\n  ollama_host: http://file:1\n"), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	t.Setenv("MURMUR_OLLAMA_HOST", "http://env:2")
	t.Setenv("MURMUR_GRAMMAR_ENABLED", "off")
	t.Setenv("MURMUR_GRAMMAR_MIN_WORDS", "7")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Router.OllamaHost != "http://env:2" {
		t.Fatalf("expected env override, got %q", cfg.Router.OllamaHost)
	}
	if cfg.Grammar.Enabled || cfg.Grammar.MinWords != 7 {
		t.Fatalf("unexpected grammar config: %+v", cfg.Grammar)
	}
	if cfg.Remote.APIKey != "sk-test" {
		t.Fatalf("expected api key from env")
	}
}

func TestLoadInvalidNumericValuesFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MURMUR_GRAMMAR_MIN_WORDS", "bad")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Grammar.MinWords != 3 {
		t.Fatalf("expected default min words, got %d", cfg.Grammar.MinWords)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Fatalf("expected missing config file to be tolerated, got %v", err)
	}
}
