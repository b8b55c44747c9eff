// Package executor runs routed text against model backends.
package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"murmur/internal/domain"
)

// LocalConfig controls the Ollama-backed executor.
type LocalConfig struct {
	Host    string
	Model   string
	Timeout time.Duration
}

// Local executes prompts via a local Ollama model.
type Local struct {
	cfg    LocalConfig
	client *resty.Client
	log    *zap.Logger
}

func NewLocal(cfg LocalConfig, log *zap.Logger) *Local {
	if cfg.Host == "" {
		cfg.Host = "http://localhost:11434"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Local{
		cfg:    cfg,
		client: resty.New().SetBaseURL(cfg.Host).SetTimeout(cfg.Timeout),
		log:    log,
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Execute sends the prompt to Ollama and returns the model's response.
func (l *Local) Execute(ctx context.Context, text string) domain.ExecutionResult {
	l.log.Debug("executing local model",
		zap.String("model", l.cfg.Model),
		zap.Int("promptChars", len(text)))

	var out generateResponse
	resp, err := l.client.R().
		SetContext(ctx).
		SetBody(generateRequest{
			Model:  l.cfg.Model,
			Prompt: text,
			Stream: false,
			// Dictated requests want short answers.
			Options: map[string]any{"num_predict": 256},
		}).
		SetResult(&out).
		Post("/api/generate")
	if err != nil {
		return domain.ExecutionResult{Success: false, Error: l.describe(err)}
	}
	if resp.IsError() {
		return domain.ExecutionResult{
			Success: false,
			Error:   fmt.Sprintf("ollama returned %s", resp.Status()),
		}
	}

	return domain.ExecutionResult{Success: true, Response: strings.TrimSpace(out.Response)}
}

func (l *Local) describe(err error) string {
	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "connection") || strings.Contains(lower, "refused"):
		return fmt.Sprintf("cannot connect to Ollama at %s, is it running? (ollama serve)", l.cfg.Host)
	case strings.Contains(lower, "not found"):
		return fmt.Sprintf("model %q not found, pull it with: ollama pull %s", l.cfg.Model, l.cfg.Model)
	}
	return msg
}
