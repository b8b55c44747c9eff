package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config stores runtime configuration for the dictation daemon.
type Config struct {
	Whisper       WhisperConfig      `yaml:"whisper"`
	Router        RouterConfig       `yaml:"router"`
	Grammar       GrammarConfig      `yaml:"grammar"`
	Remote        RemoteConfig       `yaml:"remote"`
	Output        OutputConfig       `yaml:"output"`
	Notifications NotificationConfig `yaml:"notifications"`
	Timer         TimerConfig        `yaml:"timer"`
	History       HistoryConfig      `yaml:"history"`
	Daemon        DaemonConfig       `yaml:"daemon"`
}

type WhisperConfig struct {
	Command   string        `yaml:"command"`
	ModelPath string        `yaml:"model_path"`
	Language  string        `yaml:"language"`
	Timeout   time.Duration `yaml:"timeout"`
	VocabPath string        `yaml:"vocab_path"`
}

type RouterConfig struct {
	EditTriggers  []string      `yaml:"edit_triggers"`
	EditModel     string        `yaml:"edit_model"`
	OllamaHost    string        `yaml:"ollama_host"`
	OllamaModel   string        `yaml:"ollama_model"`
	OllamaTimeout time.Duration `yaml:"ollama_timeout"`
}

type GrammarConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
	MinWords int           `yaml:"min_words"`
}

type RemoteConfig struct {
	APIKey  string            `yaml:"api_key"`
	Models  map[string]string `yaml:"models"`
	Timeout time.Duration     `yaml:"timeout"`
}

type OutputConfig struct {
	AutoType bool `yaml:"auto_type"`
}

type NotificationConfig struct {
	Enabled bool `yaml:"enabled"`
}

type TimerConfig struct {
	SoundEnabled bool          `yaml:"sound_enabled"`
	Timeout      time.Duration `yaml:"timeout"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type DaemonConfig struct {
	PIDPath       string `yaml:"pid_path"`
	MediaMarkPath string `yaml:"media_mark_path"`
	EventBuffer   int    `yaml:"event_buffer"`
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("could not determine home directory")
	}
	return filepath.Join(home, ".config", "murmur", "config.yaml"), nil
}

// Load resolves configuration from an optional YAML file, environment
// variables, and defaults. Environment values override file values.
func Load(path string) (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, errors.New("could not determine home directory")
	}

	configDir := filepath.Join(home, ".config", "murmur")
	dataDir := filepath.Join(home, ".local", "share", "murmur")

	cfg := Config{
		Whisper: WhisperConfig{
			Command:   "whisper-cli",
			ModelPath: filepath.Join(dataDir, "models", "ggml-large-v3-turbo.bin"),
			Language:  "en",
			Timeout:   120 * time.Second,
		},
		Router: RouterConfig{
			EditTriggers:  []string{"edit:", "fix:", "change:", "rewrite:", "transform:"},
			EditModel:     "haiku",
			OllamaHost:    "http://localhost:11434",
			OllamaModel:   "qwen3:0.6b",
			OllamaTimeout: 30 * time.Second,
		},
		Grammar: GrammarConfig{
			Enabled:  true,
			Model:    "qwen3:0.6b",
			Timeout:  10 * time.Second,
			MinWords: 3,
		},
		Remote: RemoteConfig{
			Models: map[string]string{
				"haiku":  "claude-3-5-haiku-latest",
				"sonnet": "claude-3-7-sonnet-latest",
				"opus":   "claude-3-opus-latest",
			},
			Timeout: 120 * time.Second,
		},
		Output:        OutputConfig{AutoType: true},
		Notifications: NotificationConfig{Enabled: true},
		Timer:         TimerConfig{SoundEnabled: true, Timeout: 5 * time.Second},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(dataDir, "history.jsonl"),
		},
		Daemon: DaemonConfig{
			PIDPath:       filepath.Join(configDir, "murmur.pid"),
			MediaMarkPath: filepath.Join(configDir, "media_was_playing"),
			EventBuffer:   8,
		},
	}

	if path == "" {
		path = filepath.Join(configDir, "config.yaml")
	}
	if err := mergeFile(&cfg, path); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)

	if cfg.Daemon.EventBuffer <= 0 {
		cfg.Daemon.EventBuffer = 8
	}
	if cfg.Grammar.MinWords <= 0 {
		cfg.Grammar.MinWords = 3
	}
	if cfg.Whisper.Timeout <= 0 {
		cfg.Whisper.Timeout = 120 * time.Second
	}

	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Whisper.Command = envOrDefault("MURMUR_WHISPER_COMMAND", cfg.Whisper.Command)
	cfg.Whisper.ModelPath = envOrDefault("MURMUR_WHISPER_MODEL", cfg.Whisper.ModelPath)
	cfg.Whisper.Language = envOrDefault("MURMUR_WHISPER_LANGUAGE", cfg.Whisper.Language)
	cfg.Whisper.VocabPath = envOrDefault("MURMUR_VOCAB_FILE", cfg.Whisper.VocabPath)

	cfg.Router.OllamaHost = envOrDefault("MURMUR_OLLAMA_HOST", cfg.Router.OllamaHost)
	cfg.Router.OllamaModel = envOrDefault("MURMUR_OLLAMA_MODEL", cfg.Router.OllamaModel)

	cfg.Grammar.Enabled = envOrDefaultBool("MURMUR_GRAMMAR_ENABLED", cfg.Grammar.Enabled)
	cfg.Grammar.Model = envOrDefault("MURMUR_GRAMMAR_MODEL", cfg.Grammar.Model)
	cfg.Grammar.MinWords = envOrDefaultInt("MURMUR_GRAMMAR_MIN_WORDS", cfg.Grammar.MinWords)

	cfg.Remote.APIKey = envOrDefault("ANTHROPIC_API_KEY", cfg.Remote.APIKey)

	cfg.Output.AutoType = envOrDefaultBool("MURMUR_AUTO_TYPE", cfg.Output.AutoType)
	cfg.Notifications.Enabled = envOrDefaultBool("MURMUR_NOTIFICATIONS", cfg.Notifications.Enabled)
	cfg.Timer.SoundEnabled = envOrDefaultBool("MURMUR_TIMER_SOUND", cfg.Timer.SoundEnabled)

	cfg.History.Enabled = envOrDefaultBool("MURMUR_HISTORY_ENABLED", cfg.History.Enabled)
	cfg.History.Path = envOrDefault("MURMUR_HISTORY_PATH", cfg.History.Path)

	cfg.Daemon.PIDPath = envOrDefault("MURMUR_PID_FILE", cfg.Daemon.PIDPath)
	cfg.Daemon.MediaMarkPath = envOrDefault("MURMUR_MEDIA_MARK_FILE", cfg.Daemon.MediaMarkPath)
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDefaultBool(key string, fallback bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
