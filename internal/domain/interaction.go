package domain

import "time"

// Interaction is one dictation cycle's history record.
type Interaction struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	AudioDuration float64 `json:"audioDuration,omitempty"`

	RawTranscription       string  `json:"rawTranscription,omitempty"`
	CorrectedTranscription string  `json:"correctedTranscription,omitempty"`
	GrammarChanged         bool    `json:"grammarChanged,omitempty"`
	GrammarError           string  `json:"grammarError,omitempty"`
	TranscriptionDuration  float64 `json:"transcriptionDuration,omitempty"`

	RouteKind       RouteKind `json:"routeKind,omitempty"`
	RouteModel      string    `json:"routeModel,omitempty"`
	RouteConfidence float64   `json:"routeConfidence,omitempty"`

	ResponseText     string `json:"responseText,omitempty"`
	ExecutionSuccess bool   `json:"executionSuccess"`
	ExecutionError   string `json:"executionError,omitempty"`

	OutputTyped     bool `json:"outputTyped"`
	OutputCharCount int  `json:"outputCharCount,omitempty"`

	TotalDuration float64 `json:"totalDuration,omitempty"`
	Completed     bool    `json:"completed"`
	ErrorSummary  string  `json:"errorSummary,omitempty"`
}
