package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ordbok-backend/domain/core/aggregates"
	"ordbok-backend/domain/core/entities"
	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/pkg/observability"
)

const (
	// MaxGraphDepth is the hard ceiling on walk depth
	MaxGraphDepth = 3

	// DefaultGraphConcurrency bounds the fetches in flight per level
	DefaultGraphConcurrency = 32
)

// ClampDepth limits depth to [0, MaxGraphDepth]
func ClampDepth(depth int) int {
	if depth < 0 {
		return 0
	}
	if depth > MaxGraphDepth {
		return MaxGraphDepth
	}
	return depth
}

// EntryFetcher returns transformed entries; nil and no error means the entry
// does not exist.
type EntryFetcher interface {
	GetEntry(ctx context.Context, id valueobjects.EntryID) (*entities.Entry, error)
}

// GraphWalkerOption configures a GraphWalker
type GraphWalkerOption func(*GraphWalker)

// WithConcurrency bounds the number of concurrent fetches within a level
func WithConcurrency(n int) GraphWalkerOption {
	return func(w *GraphWalker) {
		if n > 0 {
			w.concurrency = n
		}
	}
}

// WithMaxDepth lowers the depth ceiling below MaxGraphDepth
func WithMaxDepth(depth int) GraphWalkerOption {
	return func(w *GraphWalker) {
		w.maxDepth = ClampDepth(depth)
	}
}

// GraphWalker expands the relationship graph around an entry breadth first.
// Each level is fetched concurrently and completes before the next starts.
type GraphWalker struct {
	entries     EntryFetcher
	concurrency int
	maxDepth    int
	metrics     *observability.Collector
	logger      *zap.Logger
}

// NewGraphWalker creates a new graph walker
func NewGraphWalker(entries EntryFetcher, metrics *observability.Collector, logger *zap.Logger, opts ...GraphWalkerOption) *GraphWalker {
	w := &GraphWalker{
		entries:     entries,
		concurrency: DefaultGraphConcurrency,
		maxDepth:    MaxGraphDepth,
		metrics:     metrics,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// BuildRelationshipGraph collects every entry within depth hops of root
// together with the edges between them. Depth is clamped rather than
// rejected. Edges are deduplicated on source, target and edgeFields.
// Missing entries are left out; any other fetch error fails the walk.
func (w *GraphWalker) BuildRelationshipGraph(
	ctx context.Context,
	root valueobjects.EntryID,
	depth int,
	edgeFields []aggregates.EdgeField,
) (*aggregates.Graph, error) {
	start := time.Now()
	depth = ClampDepth(depth)
	if depth > w.maxDepth {
		depth = w.maxDepth
	}

	walkID := uuid.NewString()
	logger := w.logger.With(
		zap.String("walkID", walkID),
		zap.String("root", root.String()),
		zap.Int("depth", depth),
	)
	logger.Debug("Starting graph walk")

	graph := aggregates.NewGraph(edgeFields)

	var mu sync.Mutex
	visited := map[valueobjects.EntryID]bool{root: true}

	level := []valueobjects.EntryID{root}
	for current := 0; len(level) > 0; current++ {
		var next []valueobjects.EntryID
		expand := current < depth

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(w.concurrency)

		for _, id := range level {
			g.Go(func() error {
				entry, err := w.entries.GetEntry(gctx, id)
				if err != nil {
					return err
				}
				if entry == nil {
					logger.Debug("Skipping missing entry", zap.String("entryID", id.String()))
					return nil
				}

				graph.AddNode(entry)
				if !expand {
					return nil
				}

				children := addEntryEdges(graph, entry)

				mu.Lock()
				defer mu.Unlock()
				for _, child := range children {
					if visited[child] {
						continue
					}
					visited[child] = true
					next = append(next, child)
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			w.metrics.RecordGraphBuild(time.Since(start), graph.NodeCount(), graph.EdgeCount(), err)
			logger.Error("Graph walk failed", zap.Int("level", current), zap.Error(err))
			return nil, err
		}

		logger.Debug("Graph level complete",
			zap.Int("level", current),
			zap.Int("fetched", len(level)),
			zap.Int("discovered", len(next)),
		)
		level = next
	}

	w.metrics.RecordGraphBuild(time.Since(start), graph.NodeCount(), graph.EdgeCount(), nil)
	logger.Debug("Graph walk complete",
		zap.Int("nodes", graph.NodeCount()),
		zap.Int("edges", graph.EdgeCount()),
		zap.Duration("duration", time.Since(start)),
	)

	return graph, nil
}

// addEntryEdges adds the outgoing edges of entry and returns the distinct
// targets in discovery order. Relationships of nested definitions are
// attributed to their top-level definition.
func addEntryEdges(graph *aggregates.Graph, entry *entities.Entry) []valueobjects.EntryID {
	source := entry.ID()
	seen := make(map[valueobjects.EntryID]bool)
	var children []valueobjects.EntryID

	addChild := func(target valueobjects.EntryID) {
		if target == source || seen[target] {
			return
		}
		seen[target] = true
		children = append(children, target)
	}

	for index, def := range entry.Definitions() {
		definitionID := def.ID
		definitionIndex := index

		def.Walk(func(d *entities.Definition) {
			for _, rel := range d.Relationships {
				graph.AddEdge(aggregates.Edge{
					SourceID:              source,
					TargetID:              rel.Target,
					Type:                  rel.Type,
					SourceDefinitionID:    definitionID,
					SourceDefinitionIndex: &definitionIndex,
				})
				addChild(rel.Target)
			}
		})
	}

	for _, phrase := range entry.Phrases() {
		graph.AddEdge(aggregates.Edge{
			SourceID: source,
			TargetID: phrase,
			Type:     entities.RelationshipPhrase,
		})
		addChild(phrase)
	}

	return children
}
