package output

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeRunner struct {
	err   error
	calls []string
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	return f.err
}

type fakeClipboard struct {
	contents string
	readErr  error
	writes   []string
}

func (f *fakeClipboard) read() (string, error) {
	return f.contents, f.readErr
}

func (f *fakeClipboard) write(text string) error {
	f.writes = append(f.writes, text)
	f.contents = text
	return nil
}

func newTestTyper(autoType bool, runner *fakeRunner, clip *fakeClipboard) *Typer {
	return &Typer{
		cfg: Config{
			AutoType:     autoType,
			PasteDelay:   time.Millisecond,
			RestoreDelay: time.Millisecond,
		},
		runner: runner,
		clip:   clip,
		log:    zap.NewNop(),
	}
}

func TestTypePastesAndRestoresClipboard(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	clip := &fakeClipboard{contents: "old contents"}
	typer := newTestTyper(true, runner, clip)

	if !typer.Type(context.Background(), "hello world") {
		t.Fatalf("expected typed=true")
	}

	if len(runner.calls) != 1 || !strings.Contains(runner.calls[0], "ctrl+v") {
		t.Fatalf("unexpected runner calls: %v", runner.calls)
	}
	if len(clip.writes) != 2 || clip.writes[0] != "hello world" || clip.writes[1] != "old contents" {
		t.Fatalf("unexpected clipboard writes: %v", clip.writes)
	}
}

func TestTypeDisabled(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	typer := newTestTyper(false, runner, &fakeClipboard{})

	if typer.Type(context.Background(), "hello") {
		t.Fatalf("expected typed=false when auto-type is off")
	}
	if len(runner.calls) != 0 {
		t.Fatalf("should not touch xdotool when disabled")
	}
}

func TestTypeEmptyText(t *testing.T) {
	t.Parallel()

	typer := newTestTyper(true, &fakeRunner{}, &fakeClipboard{})
	if typer.Type(context.Background(), "") {
		t.Fatalf("expected typed=false for empty text")
	}
}

func TestTypePasteFailureRestoresClipboard(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{err: exec.ErrNotFound}
	clip := &fakeClipboard{contents: "old"}
	typer := newTestTyper(true, runner, clip)

	if typer.Type(context.Background(), "new") {
		t.Fatalf("expected typed=false when paste fails")
	}
	if clip.contents != "old" {
		t.Fatalf("clipboard not restored: %q", clip.contents)
	}
}

func TestTypeSkipsRestoreWhenReadFailed(t *testing.T) {
	t.Parallel()

	clip := &fakeClipboard{readErr: errors.New("no clipboard")}
	typer := newTestTyper(true, &fakeRunner{}, clip)

	if !typer.Type(context.Background(), "text") {
		t.Fatalf("expected typed=true")
	}
	// Only the paste payload should have been written; there was nothing
	// trustworthy to restore.
	if len(clip.writes) != 1 {
		t.Fatalf("unexpected writes: %v", clip.writes)
	}
}
