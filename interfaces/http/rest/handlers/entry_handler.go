package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ordbok-backend/application/queries"
	querybus "ordbok-backend/application/queries/bus"
	"ordbok-backend/pkg/common"
	appErrors "ordbok-backend/pkg/errors"
)

// GraphLimits are the depth rules applied to graph requests
type GraphLimits struct {
	DefaultDepth int
	MaxDepth     int
}

// EntryHandler handles entry-related HTTP requests
type EntryHandler struct {
	queryBus *querybus.QueryBus
	errors   *appErrors.ErrorHandler
	limits   GraphLimits
	logger   *zap.Logger
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(queryBus *querybus.QueryBus, errorHandler *appErrors.ErrorHandler, limits GraphLimits, logger *zap.Logger) *EntryHandler {
	return &EntryHandler{
		queryBus: queryBus,
		errors:   errorHandler,
		limits:   limits,
		logger:   logger,
	}
}

// GetEntry handles GET /dictionaries/{dictionary}/entries/{id}
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	ref, err := entryRef(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := querybus.Ask[*queries.GetEntryResult](r.Context(), h.queryBus, queries.GetEntryQuery{EntryRef: ref})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.respond(w, r, result.Entry)
}

// GetRelationships handles GET /dictionaries/{dictionary}/entries/{id}/relationships
func (h *EntryHandler) GetRelationships(w http.ResponseWriter, r *http.Request) {
	ref, err := entryRef(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := querybus.Ask[*queries.GetEntryRelationshipsResult](r.Context(), h.queryBus, queries.GetEntryRelationshipsQuery{EntryRef: ref})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.respond(w, r, result)
}

// GetGraph handles GET /dictionaries/{dictionary}/entries/{id}/graph?depth=&fields=
func (h *EntryHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	ref, err := entryRef(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	depth := h.limits.DefaultDepth
	if raw := r.URL.Query().Get("depth"); raw != "" {
		depth, err = strconv.Atoi(raw)
		if err != nil {
			h.errors.Handle(w, r, appErrors.NewValidationError("depth must be an integer").
				WithDetail("depth", raw))
			return
		}
	}
	if h.limits.MaxDepth > 0 && depth > h.limits.MaxDepth {
		depth = h.limits.MaxDepth
	}

	query := queries.GetEntryGraphQuery{
		EntryRef: ref,
		Depth:    depth,
		Fields:   splitFields(r.URL.Query().Get("fields")),
	}

	result, err := querybus.Ask[*queries.GetEntryGraphResult](r.Context(), h.queryBus, query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.respond(w, r, result)
}

func (h *EntryHandler) respond(w http.ResponseWriter, r *http.Request, data interface{}) {
	if err := common.RespondJSON(w, r, http.StatusOK, data); err != nil {
		h.logger.Error("Failed to encode response", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

// entryRef reads the dictionary and id path parameters. The dictionary is
// checked by query validation.
func entryRef(r *http.Request) (queries.EntryRef, error) {
	dictionary := chi.URLParam(r, "dictionary")
	rawID := chi.URLParam(r, "id")

	id, err := strconv.Atoi(rawID)
	if err != nil {
		return queries.EntryRef{}, appErrors.NewValidationError("entry id must be an integer").
			WithDetail("id", rawID)
	}
	return queries.EntryRef{Dictionary: dictionary, ID: id}, nil
}

func splitFields(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			fields = append(fields, p)
		}
	}
	return fields
}
