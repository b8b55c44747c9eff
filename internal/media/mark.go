package media

import (
	"os"
	"path/filepath"
)

// Mark is the on-disk flag recording "playback was paused by this tool and
// must be resumed". At most one mark is outstanding at a time; absence
// means media either was not playing or has already been resumed.
type Mark struct {
	path string
}

func NewMark(path string) *Mark {
	return &Mark{path: path}
}

// Set creates the mark.
func (m *Mark) Set() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(m.path, []byte("playing"), 0o600)
}

// Exists reports whether a mark is outstanding.
func (m *Mark) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// Clear consumes the mark, reporting whether one existed.
func (m *Mark) Clear() bool {
	err := os.Remove(m.path)
	return err == nil
}
