package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/NihalNavath/Campus-Navigator/internal/domain/events"
	"github.com/NihalNavath/Campus-Navigator/internal/metrics"
	"github.com/rs/zerolog"
)

// Repository stores the event sequence as a single JSON array file. Reads
// and writes always cover the whole document; there is no locking, no
// append-only log and no transactional guarantee between concurrent writers.
type Repository struct {
	path   string
	logger zerolog.Logger
}

func NewRepository(path string, logger zerolog.Logger) *Repository {
	return &Repository{path: path, logger: logger}
}

// Path returns the backing file location.
func (r *Repository) Path() string {
	return r.path
}

// Load reads and parses the stored sequence. A missing file, unreadable file
// or malformed document is logged and degraded to an empty sequence; callers
// never see a read failure.
func (r *Repository) Load(ctx context.Context) ([]events.Event, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			r.logger.Error().Err(err).Str("path", r.path).Msg("read events file failed")
			metrics.StoreReadFailuresTotal.Inc()
		}
		return []events.Event{}, nil
	}

	var sequence []events.Event
	if err := json.Unmarshal(data, &sequence); err != nil {
		r.logger.Error().Err(err).Str("path", r.path).Msg("parse events file failed")
		metrics.StoreReadFailuresTotal.Inc()
		return []events.Event{}, nil
	}
	if sequence == nil {
		sequence = []events.Event{}
	}
	return sequence, nil
}

// Save rewrites the whole file, creating the parent directory on first write.
// The caller treats persistence as best-effort; the error return exists so it
// can log the failure.
func (r *Repository) Save(ctx context.Context, sequence []events.Event) error {
	if sequence == nil {
		sequence = []events.Event{}
	}

	payload, err := json.MarshalIndent(sequence, "", "  ")
	if err != nil {
		metrics.StoreWriteFailuresTotal.Inc()
		return fmt.Errorf("encode events: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		metrics.StoreWriteFailuresTotal.Inc()
		return fmt.Errorf("create events directory: %w", err)
	}

	if err := os.WriteFile(r.path, payload, 0o644); err != nil {
		metrics.StoreWriteFailuresTotal.Inc()
		return fmt.Errorf("write events file: %w", err)
	}

	metrics.StoreEventsTotal.Set(float64(len(sequence)))
	return nil
}
