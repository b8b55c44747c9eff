// Package history persists one JSON line per completed dictation cycle.
package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"murmur/internal/domain"
)

// Store appends interactions to a JSONL file. Appends are best-effort
// from the pipeline's point of view; callers log failures and move on.
type Store struct {
	path string
	log  *zap.Logger
}

func NewStore(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{path: path, log: log}
}

// Append stamps the record with an ID and timestamp if missing and
// writes it as one JSON line.
func (s *Store) Append(record domain.Interaction) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	line, err := json.Marshal(record)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return err
	}
	return nil
}

// Recent reads back the last n records, newest last. Used by the status
// command; a missing file yields an empty slice.
func (s *Store) Recent(n int) ([]domain.Interaction, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []domain.Interaction
	decoder := json.NewDecoder(bytes.NewReader(data))
	for decoder.More() {
		var record domain.Interaction
		if err := decoder.Decode(&record); err != nil {
			s.log.Warn("skipping malformed history line", zap.Error(err))
			break
		}
		records = append(records, record)
	}

	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	return records, nil
}
