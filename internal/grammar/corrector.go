// Package grammar cleans up transcribed text with a small local model.
//
// The corrector sits between transcription and routing and is fail-open:
// every failure path returns the original text, so callers can always use
// the Corrected field without inspecting the outcome.
package grammar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"murmur/internal/domain"
)

const prompt = "Fix grammar and punctuation in the following text. " +
	"Output ONLY the corrected text with no explanation. " +
	"If the text is already correct, output it unchanged.\n\n%s"

// Config controls the Ollama-backed corrector.
type Config struct {
	Host     string
	Model    string
	Timeout  time.Duration
	MinWords int
}

// Corrector corrects grammar on transcribed text via Ollama.
type Corrector struct {
	cfg    Config
	client *resty.Client
	log    *zap.Logger
}

func NewCorrector(cfg Config, log *zap.Logger) *Corrector {
	if cfg.Host == "" {
		cfg.Host = "http://localhost:11434"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MinWords <= 0 {
		cfg.MinWords = 3
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Corrector{
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

// Correct returns corrected text. Short inputs are passed through; every
// failure degrades to the original text with the error recorded.
func (c *Corrector) Correct(ctx context.Context, text string) domain.CorrectionResult {
	if strings.TrimSpace(text) == "" {
		return domain.CorrectionResult{Success: true, Corrected: text, Original: text}
	}
	if len(strings.Fields(text)) < c.cfg.MinWords {
		return domain.CorrectionResult{Success: true, Corrected: text, Original: text}
	}

	var out generateResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(generateRequest{
			Model:  c.cfg.Model,
			Prompt: fmt.Sprintf(prompt, text),
			Stream: false,
			Options: map[string]any{
				"num_predict": 256,
				"temperature": 0.1,
			},
		}).
		SetResult(&out).
		Post("/api/generate")
	if err != nil {
		return c.degrade(text, connectError(err, c.cfg.Host))
	}
	if resp.IsError() {
		return c.degrade(text, fmt.Sprintf("ollama returned %s", resp.Status()))
	}

	corrected := strings.TrimSpace(out.Response)
	if corrected == "" {
		return c.degrade(text, "empty response from model")
	}

	// A wildly different length means the model hallucinated rather than
	// corrected.
	if len(corrected) > len(text)*3/2 || len(corrected) < len(text)/2 {
		return c.degrade(text, "response length diverged too much from original")
	}

	return domain.CorrectionResult{Success: true, Corrected: corrected, Original: text}
}

func (c *Corrector) degrade(text string, reason string) domain.CorrectionResult {
	c.log.Debug("grammar correction degraded", zap.String("reason", reason))
	return domain.CorrectionResult{
		Success:   false,
		Corrected: text,
		Original:  text,
		Error:     reason,
	}
}

func connectError(err error, host string) string {
	msg := err.Error()
	if strings.Contains(strings.ToLower(msg), "connection") || strings.Contains(strings.ToLower(msg), "refused") {
		return fmt.Sprintf("cannot connect to Ollama at %s", host)
	}
	return msg
}
