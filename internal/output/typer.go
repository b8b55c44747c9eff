// Package output delivers text into the focused window. Typing goes
// through the clipboard: set the text, paste with ctrl+v, then restore
// whatever the clipboard held before. Paste is effectively instant for
// any length of text, where synthesized keystrokes are not.
package output

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// Config controls the typer.
type Config struct {
	// AutoType disables delivery entirely when false; the response still
	// reaches the notification and history paths.
	AutoType bool
	// PasteDelay is how long to wait between setting the clipboard and
	// pasting, letting the clipboard manager settle.
	PasteDelay time.Duration
	// RestoreDelay is how long to wait before restoring the previous
	// clipboard contents, so the paste reads the new text first.
	RestoreDelay time.Duration
}

type commandRunner interface {
	run(ctx context.Context, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

type clipboardAccess interface {
	read() (string, error)
	write(text string) error
}

type systemClipboard struct{}

func (systemClipboard) read() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) write(text string) error { return clipboard.WriteAll(text) }

// Typer pastes text into the focused window via xdotool.
type Typer struct {
	cfg    Config
	runner commandRunner
	clip   clipboardAccess
	log    *zap.Logger
}

func NewTyper(cfg Config, log *zap.Logger) *Typer {
	if cfg.PasteDelay <= 0 {
		cfg.PasteDelay = 150 * time.Millisecond
	}
	if cfg.RestoreDelay <= 0 {
		cfg.RestoreDelay = 300 * time.Millisecond
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Typer{cfg: cfg, runner: execRunner{}, clip: systemClipboard{}, log: log}
}

// Type delivers text into the focused window and reports whether
// anything was actually typed.
func (t *Typer) Type(ctx context.Context, text string) bool {
	if !t.cfg.AutoType || text == "" {
		return false
	}

	previous, prevErr := t.clip.read()

	if err := t.clip.write(text); err != nil {
		t.log.Warn("clipboard write failed", zap.Error(err))
		return false
	}

	if !sleepCtx(ctx, t.cfg.PasteDelay) {
		return false
	}

	if err := t.runner.run(ctx, "xdotool", "key", "--clearmodifiers", "ctrl+v"); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			t.log.Warn("xdotool not found, cannot paste")
		} else {
			t.log.Warn("paste failed", zap.Error(err))
		}
		t.restore(previous, prevErr)
		return false
	}

	sleepCtx(ctx, t.cfg.RestoreDelay)
	t.restore(previous, prevErr)
	return true
}

func (t *Typer) restore(previous string, prevErr error) {
	if prevErr != nil {
		return
	}
	if err := t.clip.write(previous); err != nil {
		t.log.Debug("clipboard restore failed", zap.Error(err))
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
