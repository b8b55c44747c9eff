// Package audio records microphone input to temporary WAV files using
// parecord (PipeWire/PulseAudio).
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"
)

// wavHeaderSize is the byte count of an empty RIFF/WAVE container; a file
// at or below this size holds no samples.
const wavHeaderSize = 44

// ParecordCapture records 16kHz mono s16le WAV audio, the input format the
// transcriber expects.
type ParecordCapture struct {
	command    string
	stopGrace  time.Duration
	settleWait time.Duration

	mu        sync.Mutex
	recording bool
	tempFile  string
	process   *os.Process
	waitErr   <-chan error
	stderr    *bytes.Buffer
}

func NewParecordCapture(command string) *ParecordCapture {
	if command == "" {
		command = "parecord"
	}
	return &ParecordCapture{
		command:    command,
		stopGrace:  500 * time.Millisecond,
		settleWait: 100 * time.Millisecond,
	}
}

// Start begins recording to a fresh temporary WAV file and returns its path.
func (c *ParecordCapture) Start(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.recording {
		return "", errors.New("already recording")
	}

	tmp, err := os.CreateTemp("", "murmur-*.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create temp recording file: %w", err)
	}
	path := tmp.Name()
	_ = tmp.Close()

	args := []string{
		"--format=s16le",
		"--rate=16000",
		"--channels=1",
		"--file-format=wav",
		"--latency-msec=200",
		path,
	}

	cmd := exec.CommandContext(ctx, c.command, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to start %s: %w", c.command, err)
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
		close(waitErr)
	}()

	// A recorder that dies immediately means a missing device or a bad
	// invocation, not an empty recording.
	select {
	case err := <-waitErr:
		_ = os.Remove(path)
		detail := trimmed(stderr.String())
		if err != nil {
			return "", fmt.Errorf("%s exited before capture started: %w: %s", c.command, err, detail)
		}
		return "", fmt.Errorf("%s exited before capture started: %s", c.command, detail)
	case <-time.After(250 * time.Millisecond):
	}

	c.recording = true
	c.tempFile = path
	c.process = cmd.Process
	c.waitErr = waitErr
	c.stderr = &stderr
	return path, nil
}

// Stop ends the recording and returns the recorded file path. It returns
// "" when no recording was active or the file contains no samples. Safe to
// call when idle.
func (c *ParecordCapture) Stop() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.recording {
		return "", nil
	}
	c.recording = false

	// Brief grace so trailing speech is not cut off mid-word.
	time.Sleep(c.stopGrace)

	if c.process != nil {
		_ = c.process.Signal(os.Interrupt)
	}
	var stopErr error
	select {
	case err, ok := <-c.waitErr:
		if ok {
			stopErr = normalizeStopErr(err)
		}
	case <-time.After(1200 * time.Millisecond):
		if c.process != nil {
			_ = c.process.Kill()
		}
		if err, ok := <-c.waitErr; ok {
			stopErr = normalizeStopErr(err)
		}
	}
	c.process = nil

	if stopErr != nil {
		if c.stderr != nil && c.stderr.Len() > 0 {
			stopErr = fmt.Errorf("%w: %s", stopErr, trimmed(c.stderr.String()))
		}
		return "", stopErr
	}

	// Give the recorder a moment to flush the WAV header.
	time.Sleep(c.settleWait)

	info, err := os.Stat(c.tempFile)
	if err != nil || info.Size() <= wavHeaderSize {
		return "", nil
	}
	return c.tempFile, nil
}

// Cleanup removes the temporary recording artifact. Safe to call anytime.
func (c *ParecordCapture) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tempFile != "" {
		_ = os.Remove(c.tempFile)
		c.tempFile = ""
	}
}

func normalizeStopErr(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// Interrupting the recorder is the normal stop path.
		return nil
	}
	return err
}

func trimmed(input string) string {
	return string(bytes.TrimSpace([]byte(input)))
}
