package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"feedback-console/internal/metrics"
	"feedback-console/internal/models"

	"github.com/rs/zerolog"
)

const backendFile = "file"

// FileStore keeps every record in a single JSON array and rewrites the whole
// file on each append. The mutex serialises writers inside this process only.
type FileStore struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

func NewFileStore(path string, log zerolog.Logger) *FileStore {
	return &FileStore{
		path: path,
		log:  log.With().Str("component", "file_store").Str("path", path).Logger(),
	}
}

func (s *FileStore) Load(ctx context.Context) ([]models.FeedbackRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	records, err := s.load()
	metrics.ObserveStore(backendFile, "load", start, err)
	return records, err
}

func (s *FileStore) Append(ctx context.Context, record models.FeedbackRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	err := s.append(record)
	metrics.ObserveStore(backendFile, "append", start, err)
	return err
}

func (s *FileStore) load() ([]models.FeedbackRecord, error) {
	raw, err := s.readRaw()
	if err != nil {
		return nil, err
	}
	records := make([]models.FeedbackRecord, 0, len(raw))
	for i, elem := range raw {
		var rec models.FeedbackRecord
		if err := json.Unmarshal(elem, &rec); err != nil {
			s.log.Warn().Err(err).Int("index", i).Msg("skipping unreadable feedback record")
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// readRaw returns the array elements undecoded. A missing file or one that is
// not a JSON array reads as empty.
func (s *FileStore) readRaw() ([]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.log.Warn().Err(err).Msg("feedback file is corrupt, treating as empty")
		return nil, nil
	}
	return raw, nil
}

// append keeps existing elements verbatim, including ones that no longer
// decode into a FeedbackRecord.
func (s *FileStore) append(record models.FeedbackRecord) error {
	raw, err := s.readRaw()
	if err != nil {
		return err
	}
	elem, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}
	raw = append(raw, elem)

	data, err := json.MarshalIndent(raw, "", "    ")
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
