package services

import (
	"context"

	"go.uber.org/zap"

	"ordbok-backend/application/ports"
	"ordbok-backend/domain/core/entities"
	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/pkg/coalesce"
	"ordbok-backend/pkg/observability"
)

// Fetch results reported to metrics
const (
	fetchFound   = "found"
	fetchMissing = "missing"
	fetchError   = "error"
)

// EntryService fetches and transforms entries. Concurrent requests for the
// same entry share a single upstream read and transformation.
type EntryService struct {
	reader      ports.EntryReader
	transformer *EntryTransformer
	inflight    coalesce.Group[*entities.Entry]
	metrics     *observability.Collector
	logger      *zap.Logger
}

// NewEntryService creates a new entry service
func NewEntryService(
	reader ports.EntryReader,
	transformer *EntryTransformer,
	metrics *observability.Collector,
	logger *zap.Logger,
) *EntryService {
	return &EntryService{
		reader:      reader,
		transformer: transformer,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetEntry returns the entry for id, or nil and no error when it does not
// exist upstream.
func (s *EntryService) GetEntry(ctx context.Context, id valueobjects.EntryID) (*entities.Entry, error) {
	entry, shared, err := s.inflight.Do(ctx, id.String(), func(ctx context.Context) (*entities.Entry, error) {
		raw, err := s.reader.GetEntry(ctx, id)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, nil
		}
		return s.transformer.TransformEntry(id.Dictionary(), raw)
	})

	switch {
	case err != nil:
		s.metrics.RecordEntryFetch(id.Dictionary().String(), fetchError, shared)
		s.logger.Error("Failed to fetch entry",
			zap.String("entryID", id.String()),
			zap.Bool("coalesced", shared),
			zap.Error(err),
		)
		return nil, err
	case entry == nil:
		s.metrics.RecordEntryFetch(id.Dictionary().String(), fetchMissing, shared)
		s.logger.Debug("Entry not found", zap.String("entryID", id.String()))
		return nil, nil
	default:
		s.metrics.RecordEntryFetch(id.Dictionary().String(), fetchFound, shared)
		return entry, nil
	}
}
