package handlers

import (
	"context"

	"go.uber.org/zap"

	"ordbok-backend/application/queries"
	"ordbok-backend/application/services"
	"ordbok-backend/domain/core/entities"
	"ordbok-backend/domain/core/valueobjects"
	appErrors "ordbok-backend/pkg/errors"
)

// GetEntryHandler handles entry and relationship queries
type GetEntryHandler struct {
	entries services.EntryFetcher
	logger  *zap.Logger
}

// NewGetEntryHandler creates a new entry handler
func NewGetEntryHandler(entries services.EntryFetcher, logger *zap.Logger) *GetEntryHandler {
	return &GetEntryHandler{
		entries: entries,
		logger:  logger,
	}
}

// Handle executes the get entry query
func (h *GetEntryHandler) Handle(ctx context.Context, query queries.GetEntryQuery) (*queries.GetEntryResult, error) {
	entry, err := h.load(ctx, query.EntryRef)
	if err != nil {
		return nil, err
	}
	return &queries.GetEntryResult{Entry: entry}, nil
}

// HandleRelationships executes the relationships query
func (h *GetEntryHandler) HandleRelationships(
	ctx context.Context,
	query queries.GetEntryRelationshipsQuery,
) (*queries.GetEntryRelationshipsResult, error) {
	entry, err := h.load(ctx, query.EntryRef)
	if err != nil {
		return nil, err
	}
	return &queries.GetEntryRelationshipsResult{
		Entry:         entry.ID(),
		Lemma:         entry.PrimaryLemma(),
		Relationships: entry.Relationships(),
	}, nil
}

func (h *GetEntryHandler) load(ctx context.Context, ref queries.EntryRef) (*entities.Entry, error) {
	id, err := ref.EntryID()
	if err != nil {
		return nil, appErrors.NewValidationError(err.Error())
	}

	entry, err := h.entries.GetEntry(ctx, id)
	if err != nil {
		return nil, appErrors.Wrapf(err, "failed to get entry %s", id)
	}
	if entry == nil {
		return nil, entryNotFound(id)
	}
	return entry, nil
}

func entryNotFound(id valueobjects.EntryID) *appErrors.AppError {
	return appErrors.NewNotFoundError("entry "+id.String()).
		WithDetail("dictionary", id.Dictionary().String()).
		WithDetail("id", id.ID())
}
