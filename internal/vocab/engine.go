// Package vocab fixes recurring transcription mistakes with deterministic
// substitutions, e.g. misheard project names and spoken slash commands.
package vocab

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

type correction struct {
	from string
	to   string
}

// Engine applies ordered literal substitutions to transcribed text.
type Engine struct {
	corrections []correction
}

// defaultCorrections covers the stock misheard-word fixes.
func defaultCorrections() []correction {
	return []correction{
		{".clod", ".claude"},
		{".cloud", ".claude"},
		{".clawed", ".claude"},
		{" clod", " claude"},
		{" clawed", " claude"},
		{"Clod", "Claude"},
		{"Clawed", "Claude"},
	}
}

// NewEngine loads corrections from an optional rules file, appended after
// the built-in defaults. A missing file is not an error.
func NewEngine(path string) (*Engine, error) {
	engine := &Engine{corrections: defaultCorrections()}

	if strings.TrimSpace(path) == "" {
		return engine, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return engine, nil
		}
		return nil, fmt.Errorf("failed to read vocab file %q: %w", path, err)
	}

	extra, err := parseCorrections(string(contents))
	if err != nil {
		return nil, fmt.Errorf("failed to parse vocab file %q: %w", path, err)
	}
	engine.corrections = append(engine.corrections, extra...)
	return engine, nil
}

// Apply rewrites text, replacing every occurrence of each correction in
// declaration order.
func (e *Engine) Apply(text string) string {
	for _, c := range e.corrections {
		text = strings.ReplaceAll(text, c.from, c.to)
	}
	return text
}

// parseCorrections reads one "from => to" correction per line; blank lines
// and #-comments are skipped.
func parseCorrections(contents string) ([]correction, error) {
	lines := strings.Split(contents, "\n")
	corrections := make([]correction, 0, len(lines))

	for index, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=>", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: expected 'from => to'", index+1)
		}
		from := strings.TrimSpace(parts[0])
		to := strings.TrimSpace(parts[1])
		if from == "" {
			return nil, fmt.Errorf("line %d: correction source cannot be empty", index+1)
		}
		corrections = append(corrections, correction{from: from, to: to})
	}

	return corrections, nil
}
