package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"murmur/internal/domain"
)

// RemoteConfig controls the Anthropic-backed tiered executor.
type RemoteConfig struct {
	APIKey  string
	Models  map[string]string
	Timeout time.Duration
}

// messageCreator abstracts the SDK call for testability.
type messageCreator interface {
	create(ctx context.Context, model string, prompt string) (string, error)
}

type anthropicCreator struct {
	client anthropic.Client
}

func (a anthropicCreator) create(ctx context.Context, model string, prompt string) (string, error) {
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}

// Remote executes prompts against a remote model, selecting the model id
// by tier (haiku, sonnet, opus).
type Remote struct {
	cfg     RemoteConfig
	creator messageCreator
	log     *zap.Logger
}

func NewRemote(cfg RemoteConfig, log *zap.Logger) *Remote {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Remote{
		cfg:     cfg,
		creator: anthropicCreator{client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey))},
		log:     log,
	}
}

// Execute sends the prompt to the tier's model.
func (r *Remote) Execute(ctx context.Context, text string, tier string) domain.ExecutionResult {
	model, ok := r.cfg.Models[tier]
	if !ok || model == "" {
		return domain.ExecutionResult{
			Success: false,
			Error:   fmt.Sprintf("no model configured for tier %q", tier),
		}
	}
	if r.cfg.APIKey == "" {
		return domain.ExecutionResult{
			Success: false,
			Error:   "ANTHROPIC_API_KEY is not set",
		}
	}

	r.log.Debug("executing remote model",
		zap.String("tier", tier),
		zap.String("model", model),
		zap.Int("promptChars", len(text)))

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	response, err := r.creator.create(ctx, model, text)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return domain.ExecutionResult{
				Success: false,
				Error:   fmt.Sprintf("%s timed out after %s", tier, r.cfg.Timeout),
			}
		}
		return domain.ExecutionResult{Success: false, Error: err.Error()}
	}

	return domain.ExecutionResult{Success: true, Response: strings.TrimSpace(response)}
}
