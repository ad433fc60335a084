package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ordbok-backend/application/queries"
	"ordbok-backend/application/services"
	"ordbok-backend/domain/core/aggregates"
	"ordbok-backend/domain/core/valueobjects"
	appErrors "ordbok-backend/pkg/errors"
)

// GraphBuilder builds relationship graphs
type GraphBuilder interface {
	BuildRelationshipGraph(
		ctx context.Context,
		root valueobjects.EntryID,
		depth int,
		edgeFields []aggregates.EdgeField,
	) (*aggregates.Graph, error)
}

// GetEntryGraphHandler handles relationship graph queries
type GetEntryGraphHandler struct {
	walker GraphBuilder
	logger *zap.Logger
}

// NewGetEntryGraphHandler creates a new graph handler
func NewGetEntryGraphHandler(walker GraphBuilder, logger *zap.Logger) *GetEntryGraphHandler {
	return &GetEntryGraphHandler{
		walker: walker,
		logger: logger,
	}
}

// Handle executes the graph query. A graph without the root entry means the
// root does not exist.
func (h *GetEntryGraphHandler) Handle(ctx context.Context, query queries.GetEntryGraphQuery) (*queries.GetEntryGraphResult, error) {
	id, err := query.EntryID()
	if err != nil {
		return nil, appErrors.NewValidationError(err.Error())
	}
	fields, err := query.EdgeFields()
	if err != nil {
		return nil, appErrors.NewValidationError(err.Error())
	}

	depth := services.ClampDepth(query.Depth)
	start := time.Now()

	graph, err := h.walker.BuildRelationshipGraph(ctx, id, depth, fields)
	if err != nil {
		return nil, appErrors.Wrapf(err, "failed to build graph for %s", id)
	}
	if !graph.HasNode(id) {
		return nil, entryNotFound(id)
	}

	h.logger.Info("Built relationship graph",
		zap.String("entryID", id.String()),
		zap.Int("depth", depth),
		zap.Int("nodes", graph.NodeCount()),
		zap.Int("edges", graph.EdgeCount()),
		zap.Duration("duration", time.Since(start)),
	)

	return &queries.GetEntryGraphResult{
		Nodes: graph.Nodes(),
		Edges: graph.Edges(),
		Stats: queries.GraphStats{
			NodeCount: graph.NodeCount(),
			EdgeCount: graph.EdgeCount(),
			Depth:     depth,
		},
	}, nil
}
