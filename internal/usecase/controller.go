// Package usecase holds the session controller: the state machine that
// sequences one dictation cycle from toggle to typed output.
package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"murmur/internal/domain"
	"murmur/internal/ports"
)

// routeDecider classifies corrected text. Satisfied by router.Router.
type routeDecider interface {
	Route(text string) domain.RouteDecision
}

// pauseMark is the on-disk media-pause flag. Satisfied by media.Mark.
type pauseMark interface {
	Set() error
	Exists() bool
	Clear() bool
}

// Collaborators are the external services one dictation cycle touches.
type Collaborators struct {
	Audio       ports.AudioCapture
	Transcriber ports.Transcriber
	Grammar     ports.GrammarCorrector
	Router      routeDecider
	Local       ports.Executor
	Remote      ports.RemoteExecutor
	Timer       ports.Executor
	Media       ports.MediaController
	Mark        pauseMark
	Output      ports.Output
	Notifier    ports.Notifier
	History     ports.HistoryStore
}

// SessionController owns the {Idle, Recording, Transcribing} state machine.
// It is single-flight: events are consumed one at a time and a cycle runs
// to completion before the next event is honored.
type SessionController struct {
	co  Collaborators
	log *zap.Logger

	mu    sync.Mutex
	state domain.SessionState

	recordingStarted time.Time
}

func NewSessionController(co Collaborators, log *zap.Logger) *SessionController {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionController{co: co, log: log, state: domain.SessionStateIdle}
}

// Run consumes events until a terminate event, context cancellation, or
// channel close. Terminate is an immediate exit, not a graceful drain:
// captured-but-unprocessed audio is discarded.
func (c *SessionController) Run(ctx context.Context, events <-chan domain.Event) error {
	for {
		select {
		case <-ctx.Done():
			c.co.Audio.Cleanup()
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event == domain.EventTerminate {
				c.co.Audio.Cleanup()
				return nil
			}
			cycled := c.handle(ctx, event)
			// Events that piled up while the blocking transcribe/dispatch
			// phase ran are stale signals against a state that no longer
			// exists. Drop them, but a terminate still wins.
			if cycled && c.drainStale(events) {
				c.co.Audio.Cleanup()
				return nil
			}
		}
	}
}

// handle processes one event, reporting whether a full transcribe and
// dispatch phase ran.
func (c *SessionController) handle(ctx context.Context, event domain.Event) bool {
	switch event {
	case domain.EventToggle:
		switch c.State() {
		case domain.SessionStateIdle:
			c.startRecording(ctx)
		case domain.SessionStateRecording:
			c.completeCycle(ctx)
			return true
		default:
			c.log.Debug("toggle ignored mid-cycle")
		}
	case domain.EventCancel:
		if c.State() == domain.SessionStateRecording {
			c.cancelRecording(ctx)
		}
	}
	return false
}

func (c *SessionController) drainStale(events <-chan domain.Event) bool {
	for {
		select {
		case event, ok := <-events:
			if !ok || event == domain.EventTerminate {
				return true
			}
			c.log.Debug("dropping stale event", zap.String("event", string(event)))
		default:
			return false
		}
	}
}

// State reports the current session state.
func (c *SessionController) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Status summarizes the controller for external queries.
func (c *SessionController) Status() domain.Status {
	state := c.State()
	return domain.Status{State: state, Active: state != domain.SessionStateIdle}
}

func (c *SessionController) setState(state domain.SessionState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

// startRecording handles Idle → Recording.
func (c *SessionController) startRecording(ctx context.Context) {
	if c.co.Media.Playing(ctx) {
		if err := c.co.Mark.Set(); err != nil {
			c.log.Warn("could not persist pause mark", zap.Error(err))
		}
		c.co.Media.Pause(ctx)
	} else {
		// A stale mark means a previous cycle died before resuming.
		c.co.Mark.Clear()
	}

	if _, err := c.co.Audio.Start(ctx); err != nil {
		c.log.Error("audio capture failed to start", zap.Error(err))
		c.co.Notifier.Error(err.Error())
		c.resumeMedia(ctx)
		return
	}

	c.recordingStarted = time.Now()
	c.setState(domain.SessionStateRecording)
	c.co.Notifier.Recording()
}

// cancelRecording handles Recording → Idle on cancel. No transcription.
func (c *SessionController) cancelRecording(ctx context.Context) {
	if _, err := c.co.Audio.Stop(); err != nil {
		c.log.Warn("audio stop on cancel", zap.Error(err))
	}
	c.co.Audio.Cleanup()
	c.resumeMedia(ctx)
	c.setState(domain.SessionStateIdle)
	c.co.Notifier.Cancelled()

	c.appendHistory(domain.Interaction{
		TotalDuration: time.Since(c.recordingStarted).Seconds(),
		Completed:     false,
		ErrorSummary:  "cancelled",
	})
}

// completeCycle handles Recording → Transcribing → Idle.
func (c *SessionController) completeCycle(ctx context.Context) {
	c.setState(domain.SessionStateTranscribing)
	defer c.setState(domain.SessionStateIdle)
	defer c.resumeMedia(ctx)
	defer c.co.Audio.Cleanup()

	record := domain.Interaction{}
	defer func() {
		record.TotalDuration = time.Since(c.recordingStarted).Seconds()
		c.appendHistory(record)
	}()

	audioPath, err := c.co.Audio.Stop()
	if err != nil {
		c.log.Error("audio capture failed", zap.Error(err))
		c.co.Notifier.Error(err.Error())
		record.ErrorSummary = err.Error()
		return
	}
	if audioPath == "" {
		c.co.Notifier.NoSpeech()
		record.ErrorSummary = "no audio captured"
		return
	}

	c.co.Notifier.Transcribing()

	transcribeStart := time.Now()
	result, err := c.co.Transcriber.Transcribe(ctx, audioPath)
	record.TranscriptionDuration = time.Since(transcribeStart).Seconds()
	if err != nil {
		c.log.Error("transcription failed", zap.Error(err))
		c.co.Notifier.Error(err.Error())
		record.ErrorSummary = err.Error()
		return
	}
	if result == nil || result.Text == "" {
		c.co.Notifier.NoSpeech()
		record.ErrorSummary = "no speech detected"
		return
	}
	record.RawTranscription = result.Text
	record.AudioDuration = result.Duration

	correction := c.co.Grammar.Correct(ctx, result.Text)
	text := correction.Corrected
	record.CorrectedTranscription = text
	record.GrammarChanged = correction.Success && correction.Corrected != correction.Original
	record.GrammarError = correction.Error
	if !correction.Success {
		c.log.Debug("grammar correction degraded", zap.String("error", correction.Error))
	}

	decision := c.co.Router.Route(text)
	record.RouteKind = decision.Kind
	record.RouteModel = decision.Model
	record.RouteConfidence = decision.Confidence

	c.dispatch(ctx, decision, &record)
}

// dispatch runs the routed text against its executor and delivers output.
func (c *SessionController) dispatch(ctx context.Context, decision domain.RouteDecision, record *domain.Interaction) {
	switch {
	case decision.Kind == domain.RouteType || decision.Kind == domain.RouteCommand:
		c.deliver(ctx, decision.Text, record)
		record.ExecutionSuccess = true
		record.Completed = true

	case decision.Kind == domain.RouteLocal:
		c.co.Notifier.Processing("local model")
		c.finishExecution(ctx, c.co.Local.Execute(ctx, decision.Text), record, true)

	case decision.Kind.RemoteTier():
		c.co.Notifier.Processing(string(decision.Kind))
		result := c.co.Remote.Execute(ctx, decision.Text, string(decision.Kind))
		c.finishExecution(ctx, result, record, true)

	case decision.Kind == domain.RouteTimer:
		c.finishExecution(ctx, c.co.Timer.Execute(ctx, decision.Text), record, false)

	case decision.Kind == domain.RouteEdit:
		c.co.Notifier.Error("edit mode not implemented")
		record.ErrorSummary = "edit mode not implemented"
	}
}

// finishExecution converts an executor result into output, notification
// and history fields. typeResponse is false for executors whose response
// is a confirmation, not dictated text.
func (c *SessionController) finishExecution(ctx context.Context, result domain.ExecutionResult, record *domain.Interaction, typeResponse bool) {
	record.ResponseText = result.Response
	record.ExecutionSuccess = result.Success
	record.ExecutionError = result.Error

	if !result.Success {
		c.co.Notifier.Error(result.Error)
		record.ErrorSummary = result.Error
		return
	}

	if typeResponse {
		c.deliver(ctx, result.Response, record)
	} else {
		c.co.Notifier.Done(result.Response)
	}
	record.Completed = true
}

// deliver types text into the foreground window and notifies completion.
// The notification is truncated for display; the typed text is not.
func (c *SessionController) deliver(ctx context.Context, text string, record *domain.Interaction) {
	typed := c.co.Output.Type(ctx, text)
	record.OutputTyped = typed
	if typed {
		record.OutputCharCount = len([]rune(text))
	}
	c.co.Notifier.Done(text)
}

// resumeMedia consumes the pause mark, resuming playback if one existed.
func (c *SessionController) resumeMedia(ctx context.Context) {
	if c.co.Mark.Clear() {
		c.co.Media.Resume(ctx)
	}
}

func (c *SessionController) appendHistory(record domain.Interaction) {
	if c.co.History == nil {
		return
	}
	if err := c.co.History.Append(record); err != nil {
		c.log.Warn("history append failed", zap.Error(err))
	}
}
