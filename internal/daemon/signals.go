package daemon

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"murmur/internal/domain"
)

// Control signals understood by the daemon. SIGUSR1 toggles a dictation
// cycle, SIGUSR2 cancels one in flight, SIGINT/SIGTERM shut down.
const (
	SignalToggle = syscall.SIGUSR1
	SignalCancel = syscall.SIGUSR2
)

// SignalListener translates incoming signals into session events on a
// bounded channel. When the session loop is behind, extra events are
// dropped rather than queued: a stale toggle delivered seconds late is
// worse than a missed one.
type SignalListener struct {
	events chan domain.Event
	raw    chan os.Signal
	log    *zap.Logger
}

func NewSignalListener(buffer int, log *zap.Logger) *SignalListener {
	if buffer <= 0 {
		buffer = 8
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SignalListener{
		events: make(chan domain.Event, buffer),
		raw:    make(chan os.Signal, buffer),
		log:    log,
	}
}

// Events is the channel the session loop consumes.
func (l *SignalListener) Events() <-chan domain.Event {
	return l.events
}

// Start subscribes to the control signals and begins translating them.
func (l *SignalListener) Start() {
	signal.Notify(l.raw, SignalToggle, SignalCancel, syscall.SIGINT, syscall.SIGTERM)
	go l.translate()
}

// Stop unsubscribes from signal delivery.
func (l *SignalListener) Stop() {
	signal.Stop(l.raw)
}

func (l *SignalListener) translate() {
	for sig := range l.raw {
		event, ok := eventFor(sig)
		if !ok {
			continue
		}
		l.dispatch(event)
		if event == domain.EventTerminate {
			return
		}
	}
}

func (l *SignalListener) dispatch(event domain.Event) {
	select {
	case l.events <- event:
	default:
		l.log.Warn("event queue full, dropping", zap.String("event", string(event)))
	}
}

func eventFor(sig os.Signal) (domain.Event, bool) {
	switch sig {
	case SignalToggle:
		return domain.EventToggle, true
	case SignalCancel:
		return domain.EventCancel, true
	case syscall.SIGINT, syscall.SIGTERM:
		return domain.EventTerminate, true
	}
	return "", false
}
