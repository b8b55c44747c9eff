package router

import (
	"strings"

	"murmur/internal/domain"
)

// Config controls trigger words and the edit-mode backend.
type Config struct {
	EditTriggers []string
	EditModel    string
}

// DefaultConfig mirrors the stock trigger vocabulary.
func DefaultConfig() Config {
	return Config{
		EditTriggers: []string{"edit:", "fix:", "change:", "rewrite:", "transform:"},
		EditModel:    "haiku",
	}
}

// Router classifies corrected transcription text by first-word triggers.
// Default is type-verbatim; keywords select other backends.
type Router struct {
	cfg Config
}

func New(cfg Config) *Router {
	if len(cfg.EditTriggers) == 0 {
		cfg.EditTriggers = DefaultConfig().EditTriggers
	}
	if cfg.EditModel == "" {
		cfg.EditModel = DefaultConfig().EditModel
	}
	return &Router{cfg: cfg}
}

// tierTriggers maps first-word complexity keywords to dispatch targets.
var tierTriggers = map[string]domain.RouteKind{
	"timer":  domain.RouteTimer,
	"simple": domain.RouteLocal,
	"easy":   domain.RouteHaiku,
	"medium": domain.RouteSonnet,
	"hard":   domain.RouteOpus,
}

// Route decides where text should be dispatched. It never fails: every
// input, including empty text, produces a decision.
//
// Priority: edit triggers first, then single-word dispatch triggers, then
// the type-verbatim default. Matching is case-insensitive but processed
// text keeps the original casing.
func (r *Router) Route(text string) domain.RouteDecision {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.RouteDecision{Kind: domain.RouteType, Text: text, Confidence: 1.0}
	}

	lower := strings.ToLower(text)

	for _, trigger := range r.cfg.EditTriggers {
		if strings.HasPrefix(lower, trigger) {
			return domain.RouteDecision{
				Kind:       domain.RouteEdit,
				Model:      r.cfg.EditModel,
				Text:       strings.TrimSpace(text[len(trigger):]),
				Confidence: 1.0,
			}
		}
	}

	first, rest := splitFirstWord(text)
	first = strings.TrimRight(strings.ToLower(first), ".,!?:;")

	if kind, ok := tierTriggers[first]; ok {
		model := ""
		if kind != domain.RouteTimer {
			model = modelFor(kind)
		}
		return domain.RouteDecision{Kind: kind, Model: model, Text: rest, Confidence: 1.0}
	}

	return domain.RouteDecision{Kind: domain.RouteType, Text: text, Confidence: 1.0}
}

func modelFor(kind domain.RouteKind) string {
	switch kind {
	case domain.RouteLocal:
		return "local"
	case domain.RouteHaiku:
		return "haiku"
	case domain.RouteSonnet:
		return "sonnet"
	case domain.RouteOpus:
		return "opus"
	}
	return ""
}

// splitFirstWord splits on the first run of whitespace.
func splitFirstWord(text string) (string, string) {
	idx := strings.IndexFunc(text, isSpace)
	if idx < 0 {
		return text, ""
	}
	return text[:idx], strings.TrimLeftFunc(text[idx:], isSpace)
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
