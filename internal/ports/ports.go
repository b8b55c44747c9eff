package ports

import (
	"context"

	"murmur/internal/domain"
)

// AudioCapture records microphone audio to a temporary file.
// Stop and Cleanup must tolerate being called when nothing is recording.
type AudioCapture interface {
	// Start begins a recording and returns the path it will write to.
	Start(ctx context.Context) (string, error)
	// Stop ends the recording and returns the recorded file path, or ""
	// when no recording was active or nothing was captured.
	Stop() (string, error)
	// Cleanup removes the temporary recording artifact.
	Cleanup()
}

// Transcriber converts recorded audio into text. A nil result with a nil
// error means no usable speech was detected.
type Transcriber interface {
	// LoadAsync begins loading the model in the background. Transcribe
	// blocks until loading finishes if invoked earlier.
	LoadAsync()
	Transcribe(ctx context.Context, audioPath string) (*domain.TranscriptionResult, error)
}

// GrammarCorrector cleans up transcribed text. It is fail-open: the result
// always carries usable text, falling back to the original on any failure.
type GrammarCorrector interface {
	Correct(ctx context.Context, text string) domain.CorrectionResult
}

// Executor runs routed text against a backend (local model, timer, ...).
type Executor interface {
	Execute(ctx context.Context, text string) domain.ExecutionResult
}

// RemoteExecutor runs routed text against a remote model tier.
type RemoteExecutor interface {
	Execute(ctx context.Context, text string, tier string) domain.ExecutionResult
}

// TimerScheduler arms an OS-level delayed notification. The delay token is
// a compact duration such as "1h30m" or "45s".
type TimerScheduler interface {
	Schedule(ctx context.Context, delay string, title string, body string) error
}

// MediaController pauses and resumes external media playback. All methods
// are best-effort and must never fail the dictation pipeline.
type MediaController interface {
	Playing(ctx context.Context) bool
	Pause(ctx context.Context)
	Resume(ctx context.Context)
}

// Output types text into the foreground application.
type Output interface {
	Type(ctx context.Context, text string) bool
}

// Notifier surfaces pipeline progress to the operator. Calls are
// fire-and-forget: they never block and never fail the pipeline.
type Notifier interface {
	Ready(model string)
	Recording()
	Transcribing()
	Processing(target string)
	Done(text string)
	Error(text string)
	NoSpeech()
	Cancelled()
}

// HistoryStore persists per-cycle interaction records for later analysis.
// Appends are best-effort observability, never a pipeline dependency.
type HistoryStore interface {
	Append(record domain.Interaction) error
}
