package timer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const completionSound = "/usr/share/sounds/freedesktop/stereo/complete.oga"

// commandRunner abstracts process execution for testability.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("%w: %s", err, detail)
		}
		return "", err
	}
	return strings.TrimSpace(stderr.String()), nil
}

// SystemdScheduler arms transient user timers via systemd-run. The timer
// unit fires a desktop notification, and optionally a sound, on expiry so
// it survives this daemon's restarts.
type SystemdScheduler struct {
	runner       commandRunner
	soundEnabled bool
}

func NewSystemdScheduler(soundEnabled bool) *SystemdScheduler {
	return &SystemdScheduler{runner: execRunner{}, soundEnabled: soundEnabled}
}

// Schedule creates a transient timer firing after the given delay token.
func (s *SystemdScheduler) Schedule(ctx context.Context, delay string, title string, body string) error {
	notifyCmd := fmt.Sprintf(
		`notify-send -a "Murmur" -i alarm-symbolic -u critical %s %s`,
		shellQuote(title), shellQuote(body),
	)
	if s.soundEnabled {
		notifyCmd += " ; paplay " + completionSound + " 2>/dev/null || true"
	}

	_, err := s.runner.Run(ctx, "systemd-run",
		"--user",
		"--on-active="+delay,
		"--description=Murmur Timer",
		"/bin/bash", "-c", notifyCmd,
	)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return errors.New("systemd-run not found, is systemd available?")
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errors.New("timed out creating timer")
		}
		return err
	}
	return nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
