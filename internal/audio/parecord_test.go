package audio

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestCapture(command string) *ParecordCapture {
	capture := NewParecordCapture(command)
	capture.stopGrace = 0
	capture.settleWait = 0
	return capture
}

func TestParecordCaptureStartStopProducesFile(t *testing.T) {
	t.Parallel()

	// The script simulates a recorder: writes samples past the WAV header
	// size into its target file, then sleeps until interrupted.
	script := writeScript(t, "record.sh",
		"#!/usr/bin/env bash\nfile=\"${!#}\"\nhead -c 128 /dev/zero > \"$file\"\nsleep 5\n")
	capture := newTestCapture(script)

	path, err := capture.Start(context.Background())
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if !strings.HasSuffix(path, ".wav") {
		t.Fatalf("unexpected temp path: %q", path)
	}

	got, err := capture.Stop()
	if err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if got != path {
		t.Fatalf("expected recorded path %q, got %q", path, got)
	}

	capture.Cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected temp file removed, got %v", err)
	}
}

func TestParecordCaptureStopWithoutSamplesReturnsEmpty(t *testing.T) {
	t.Parallel()

	// Recorder that only writes a bare header before being stopped.
	script := writeScript(t, "header.sh",
		"#!/usr/bin/env bash\nfile=\"${!#}\"\nhead -c 44 /dev/zero > \"$file\"\nsleep 5\n")
	capture := newTestCapture(script)

	if _, err := capture.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	got, err := capture.Stop()
	if err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty path for headerless capture, got %q", got)
	}
	capture.Cleanup()
}

func TestParecordCaptureStartEarlyExit(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "fail.sh", "#!/usr/bin/env bash\necho 'no such device' 1>&2\nexit 1\n")
	capture := newTestCapture(script)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := capture.Start(ctx)
	if err == nil {
		t.Fatalf("expected early exit error")
	}
	if !strings.Contains(err.Error(), "exited before capture started") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParecordCaptureStopWhenIdleIsNoOp(t *testing.T) {
	t.Parallel()

	capture := newTestCapture("parecord")
	got, err := capture.Stop()
	if err != nil || got != "" {
		t.Fatalf("expected idle stop no-op, got %q err=%v", got, err)
	}
	capture.Cleanup()
}

func TestParecordCaptureDoubleStartFails(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "record.sh",
		"#!/usr/bin/env bash\nfile=\"${!#}\"\nhead -c 128 /dev/zero > \"$file\"\nsleep 5\n")
	capture := newTestCapture(script)

	if _, err := capture.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := capture.Start(context.Background()); err == nil {
		t.Fatalf("expected second start to fail")
	}
	if _, err := capture.Stop(); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	capture.Cleanup()
}

func TestNormalizeStopErrExitErrorIsIgnored(t *testing.T) {
	t.Parallel()

	err := exec.Command("bash", "-lc", "exit 1").Run()
	if err == nil {
		t.Fatalf("expected command to fail")
	}
	if got := normalizeStopErr(err); got != nil {
		t.Fatalf("expected nil for exit error, got %v", got)
	}
}

func writeScript(t *testing.T, name string, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o700); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}
