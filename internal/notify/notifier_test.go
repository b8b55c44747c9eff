package notify

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type fakeSender struct {
	err    error
	titles []string
	bodies []string
}

func (f *fakeSender) send(title string, body string) error {
	f.titles = append(f.titles, title)
	f.bodies = append(f.bodies, body)
	return f.err
}

func newTestNotifier(enabled bool, s sender) *Notifier {
	return &Notifier{enabled: enabled, sender: s, log: zap.NewNop()}
}

func TestNotifierVocabulary(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	notifier := newTestNotifier(true, sender)

	notifier.Ready("large-v3-turbo")
	notifier.Recording()
	notifier.Transcribing()
	notifier.Processing("sonnet")
	notifier.Done("done text")
	notifier.Error("boom")
	notifier.NoSpeech()
	notifier.Cancelled()

	want := []string{
		"Ready (large-v3-turbo)",
		"Recording... speak now",
		"Transcribing...",
		"Sending to sonnet...",
		"done text",
		"boom",
		"No speech detected",
		"Cancelled",
	}
	if len(sender.bodies) != len(want) {
		t.Fatalf("got %d notifications, want %d", len(sender.bodies), len(want))
	}
	for i, body := range want {
		if sender.bodies[i] != body {
			t.Errorf("notification %d: got %q, want %q", i, sender.bodies[i], body)
		}
	}
	if sender.titles[5] != "Murmur error" {
		t.Errorf("error title: got %q", sender.titles[5])
	}
}

func TestNotifierDisabled(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	notifier := newTestNotifier(false, sender)

	notifier.Recording()
	notifier.Done("text")

	if len(sender.bodies) != 0 {
		t.Fatalf("disabled notifier sent %v", sender.bodies)
	}
}

func TestDoneTruncatesLongResponses(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	notifier := newTestNotifier(true, sender)

	notifier.Done(strings.Repeat("x", 250))

	body := sender.bodies[0]
	if len([]rune(body)) != displayLimit+3 || !strings.HasSuffix(body, "...") {
		t.Fatalf("unexpected truncation: %q (%d runes)", body, len([]rune(body)))
	}
}

func TestNotifierSendFailureIsBestEffort(t *testing.T) {
	t.Parallel()

	notifier := newTestNotifier(true, &fakeSender{err: errors.New("no daemon")})
	notifier.Recording()
}
