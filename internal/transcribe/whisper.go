// Package transcribe converts recorded WAV audio to text with whisper-cli.
package transcribe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"murmur/internal/domain"
	"murmur/internal/vocab"
)

// Config controls the whisper-cli invocation.
type Config struct {
	Command   string
	ModelPath string
	Language  string
	Timeout   time.Duration
}

// commandRunner abstracts process execution for testability.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("%w: %s", err, detail)
		}
		return "", err
	}
	return stdout.String(), nil
}

// WhisperTranscriber shells out to whisper-cli. The model check runs in the
// background at startup; Transcribe blocks on that latch when invoked
// before it completes.
type WhisperTranscriber struct {
	cfg    Config
	vocab  *vocab.Engine
	runner commandRunner
	log    *zap.Logger

	onReady func()
	onError func(string)

	loadOnce sync.Once
	ready    chan struct{}
	loadErr  error
}

func NewWhisperTranscriber(cfg Config, corrections *vocab.Engine, log *zap.Logger, onReady func(), onError func(string)) *WhisperTranscriber {
	if cfg.Command == "" {
		cfg.Command = "whisper-cli"
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WhisperTranscriber{
		cfg:     cfg,
		vocab:   corrections,
		runner:  execRunner{},
		log:     log,
		onReady: onReady,
		onError: onError,
		ready:   make(chan struct{}),
	}
}

// LoadAsync verifies the binary and model file in the background and
// signals readiness through a one-shot latch.
func (t *WhisperTranscriber) LoadAsync() {
	t.loadOnce.Do(func() {
		go func() {
			defer close(t.ready)

			if _, err := exec.LookPath(t.cfg.Command); err != nil {
				t.loadErr = fmt.Errorf("%s not found in PATH", t.cfg.Command)
			} else if _, err := os.Stat(t.cfg.ModelPath); err != nil {
				t.loadErr = fmt.Errorf("whisper model not found at %s", t.cfg.ModelPath)
			}

			if t.loadErr != nil {
				t.log.Warn("transcriber load failed", zap.Error(t.loadErr))
				if t.onError != nil {
					t.onError(t.loadErr.Error())
				}
				return
			}

			t.log.Info("transcriber ready", zap.String("model", t.cfg.ModelPath))
			if t.onReady != nil {
				t.onReady()
			}
		}()
	})
}

// Transcribe runs whisper-cli on the recorded file. A nil result with nil
// error means no usable speech was detected.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (*domain.TranscriptionResult, error) {
	t.LoadAsync()

	select {
	case <-t.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if t.loadErr != nil {
		return nil, t.loadErr
	}

	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	args := []string{
		"-m", t.cfg.ModelPath,
		"-f", audioPath,
		"--language", t.cfg.Language,
		"--no-timestamps",
		"--no-prints",
	}

	started := time.Now()
	out, err := t.runner.Run(ctx, t.cfg.Command, args...)
	if err != nil {
		return nil, fmt.Errorf("whisper failed: %w", err)
	}

	text := strings.TrimSpace(out)
	if text == "" {
		return nil, nil
	}
	if t.vocab != nil {
		text = t.vocab.Apply(text)
	}

	t.log.Debug("transcription complete",
		zap.Int("chars", len(text)),
		zap.Duration("took", time.Since(started)))

	return &domain.TranscriptionResult{
		Text:     text,
		Duration: audioSeconds(audioPath),
	}, nil
}

// audioSeconds estimates clip length from the WAV payload size
// (16kHz mono s16le).
func audioSeconds(path string) float64 {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= 44 {
		return 0
	}
	return float64(info.Size()-44) / 32000.0
}
