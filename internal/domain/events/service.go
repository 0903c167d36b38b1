package events

import (
	"context"
	"time"

	"github.com/NihalNavath/Campus-Navigator/internal/domain/ids"
	"github.com/rs/zerolog"
)

// timestampLayout is how audit timestamps are stored: ISO-8601 in UTC.
const timestampLayout = time.RFC3339Nano

// Service implements the catalog operations on top of a Repository. Every
// mutation performs a full read-modify-write of the sequence; two concurrent
// writers can race and the last writer wins. Persistence is best-effort:
// save failures are logged, not surfaced, so a mutation's return value
// reflects the in-memory result even when the write behind it failed.
type Service struct {
	repo Repository

	now func() time.Time // injectable for timestamp tests
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns the stored sequence in insertion order, never nil and never an
// error: read failures have already been degraded to an empty sequence by the
// repository.
func (s *Service) List(ctx context.Context) []Event {
	events, err := s.repo.Load(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("load events failed")
		return []Event{}
	}
	if events == nil {
		return []Event{}
	}
	return events
}

// Get locates an event by id with a linear scan.
func (s *Service) Get(ctx context.Context, id string) (Event, error) {
	for _, e := range s.List(ctx) {
		if e.ID() == id {
			return e, nil
		}
	}
	return nil, ErrNotFound
}

// Create assigns id, createdAt and updatedAt, appends the record and persists
// the full sequence. It does not validate data; that is the caller's step.
func (s *Service) Create(ctx context.Context, data Event) (Event, error) {
	id, err := ids.NewEventID()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC().Format(timestampLayout)
	record := data.Clone()
	if record == nil {
		record = Event{}
	}
	record[FieldID] = id
	record[FieldCreatedAt] = now
	record[FieldUpdatedAt] = now

	events := s.List(ctx)
	events = append(events, record)
	s.save(ctx, events)
	return record, nil
}

// Update shallow-merges data over the stored record: new fields win, id is
// forcibly restored, createdAt is kept and updatedAt refreshed. Returns
// ErrNotFound without side effects when no record matches.
func (s *Service) Update(ctx context.Context, id string, data Event) (Event, error) {
	events := s.List(ctx)
	for i, e := range events {
		if e.ID() != id {
			continue
		}

		merged := e.merge(data)
		merged[FieldID] = id
		merged[FieldUpdatedAt] = s.now().UTC().Format(timestampLayout)
		events[i] = merged
		s.save(ctx, events)
		return merged, nil
	}
	return nil, ErrNotFound
}

// Delete removes the matching record and rewrites the sequence. Returns
// ErrNotFound, with no write performed, when no record matches.
func (s *Service) Delete(ctx context.Context, id string) error {
	events := s.List(ctx)
	remaining := make([]Event, 0, len(events))
	for _, e := range events {
		if e.ID() != id {
			remaining = append(remaining, e)
		}
	}
	if len(remaining) == len(events) {
		return ErrNotFound
	}

	s.save(ctx, remaining)
	return nil
}

func (s *Service) save(ctx context.Context, events []Event) {
	if err := s.repo.Save(ctx, events); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int("count", len(events)).Msg("save events failed")
	}
}
