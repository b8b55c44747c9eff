// Package notify surfaces pipeline progress as desktop notifications.
// Every method is best-effort; a missing notification daemon never
// interrupts dictation.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"go.uber.org/zap"
)

const (
	appName = "Murmur"
	// displayLimit caps how much of a response is shown in the
	// completion bubble; the full text still goes to the clipboard
	// and history.
	displayLimit = 100
)

type sender interface {
	send(title string, body string) error
}

type beeepSender struct{}

func (beeepSender) send(title string, body string) error {
	return beeep.Notify(title, body, "")
}

// Notifier emits the fixed vocabulary of dictation notifications.
type Notifier struct {
	enabled bool
	sender  sender
	log     *zap.Logger
}

func NewNotifier(enabled bool, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{enabled: enabled, sender: beeepSender{}, log: log}
}

func (n *Notifier) Ready(model string) {
	n.notify(appName, fmt.Sprintf("Ready (%s)", model))
}

func (n *Notifier) Recording() {
	n.notify(appName, "Recording... speak now")
}

func (n *Notifier) Transcribing() {
	n.notify(appName, "Transcribing...")
}

func (n *Notifier) Processing(target string) {
	n.notify(appName, fmt.Sprintf("Sending to %s...", target))
}

func (n *Notifier) Done(text string) {
	n.notify(appName, truncate(text, displayLimit))
}

func (n *Notifier) Error(text string) {
	n.notify(appName+" error", text)
}

func (n *Notifier) NoSpeech() {
	n.notify(appName, "No speech detected")
}

func (n *Notifier) Cancelled() {
	n.notify(appName, "Cancelled")
}

func (n *Notifier) notify(title string, body string) {
	if !n.enabled {
		return
	}
	if err := n.sender.send(title, body); err != nil {
		n.log.Debug("notification failed", zap.Error(err))
	}
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
