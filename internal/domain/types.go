package domain

// SessionState models the dictation cycle lifecycle.
type SessionState string

const (
	SessionStateIdle         SessionState = "idle"
	SessionStateRecording    SessionState = "recording"
	SessionStateTranscribing SessionState = "transcribing"
)

// Event is a control input delivered to the session loop.
type Event string

const (
	EventToggle    Event = "toggle"
	EventCancel    Event = "cancel"
	EventTerminate Event = "terminate"
)

// RouteKind classifies where corrected transcription text is dispatched.
type RouteKind string

const (
	RouteType    RouteKind = "type"    // type the text verbatim
	RouteLocal   RouteKind = "local"   // local model via Ollama
	RouteHaiku   RouteKind = "haiku"   // remote, fast tier
	RouteSonnet  RouteKind = "sonnet"  // remote, standard tier
	RouteOpus    RouteKind = "opus"    // remote, deep tier
	RouteEdit    RouteKind = "edit"    // text transformation mode
	RouteCommand RouteKind = "command" // keyboard/system command
	RouteTimer   RouteKind = "timer"   // notification timer
)

// RemoteTier reports whether the kind dispatches to a remote model tier.
func (k RouteKind) RemoteTier() bool {
	switch k {
	case RouteHaiku, RouteSonnet, RouteOpus:
		return true
	}
	return false
}

// RouteDecision is the routing outcome for one transcription cycle.
type RouteDecision struct {
	Kind       RouteKind `json:"kind"`
	Model      string    `json:"model,omitempty"`
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence"`
}

// ParsedDuration is the outcome of parsing a spoken duration phrase.
type ParsedDuration struct {
	Seconds int    `json:"seconds"`
	Found   bool   `json:"found"`
	Label   string `json:"label"`
}

// ExecutionResult is the shape every executor returns.
type ExecutionResult struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// CorrectionResult carries grammar-correction output. Corrected is always
// usable text: on failure it holds the original unchanged (fail-open).
type CorrectionResult struct {
	Success   bool   `json:"success"`
	Corrected string `json:"corrected"`
	Original  string `json:"original"`
	Error     string `json:"error,omitempty"`
}

// TranscriptionResult is the outcome of one blocking transcription call.
type TranscriptionResult struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
}

// Status summarizes the daemon's current runtime status.
type Status struct {
	State   SessionState `json:"state"`
	Active  bool         `json:"active"`
	Message string       `json:"message,omitempty"`
}
