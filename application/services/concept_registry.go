package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"ordbok-backend/application/ports"
	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/domain/source"
)

// ConceptRegistry holds the concept tables of every dictionary in memory
// and answers lookups without I/O. Tables that fail to load are retried in
// the background until they succeed.
type ConceptRegistry struct {
	repo          ports.ConceptRepository
	retryInterval time.Duration
	logger        *zap.Logger

	mu     sync.RWMutex
	tables map[valueobjects.Dictionary]*source.ConceptTable
}

// NewConceptRegistry creates an empty registry
func NewConceptRegistry(repo ports.ConceptRepository, retryInterval time.Duration, logger *zap.Logger) *ConceptRegistry {
	return &ConceptRegistry{
		repo:          repo,
		retryInterval: retryInterval,
		logger:        logger,
		tables:        make(map[valueobjects.Dictionary]*source.ConceptTable),
	}
}

// Concept returns the display text of a concept id
func (r *ConceptRegistry) Concept(dictionary valueobjects.Dictionary, id string) (string, bool) {
	r.mu.RLock()
	table := r.tables[dictionary]
	r.mu.RUnlock()
	return table.Lookup(id)
}

// Load fetches every dictionary's table that is not loaded yet. A dictionary
// without a stored table counts as loaded with an empty table.
func (r *ConceptRegistry) Load(ctx context.Context) error {
	var errs []error
	for _, dictionary := range r.pending() {
		table, err := r.repo.GetConceptTable(ctx, dictionary)
		if err != nil {
			errs = append(errs, fmt.Errorf("concept table %s: %w", dictionary, err))
			continue
		}
		if table == nil {
			r.logger.Warn("No concept table stored, using an empty one", zap.String("dictionary", dictionary.String()))
			table = &source.ConceptTable{ID: dictionary.String(), Concepts: map[string]source.Concept{}}
		}

		r.mu.Lock()
		r.tables[dictionary] = table
		r.mu.Unlock()

		r.logger.Info("Loaded concept table",
			zap.String("dictionary", dictionary.String()),
			zap.Int("concepts", len(table.Concepts)),
		)
	}
	return errors.Join(errs...)
}

// Start loads the tables and, if any fail, keeps retrying on the configured
// interval until all are loaded or ctx is done. It does not block on the
// retries.
func (r *ConceptRegistry) Start(ctx context.Context) {
	err := r.Load(ctx)
	if err == nil {
		return
	}
	r.logger.Error("Concept table load failed, retrying in background",
		zap.Duration("interval", r.retryInterval),
		zap.Error(err),
	)

	go func() {
		ticker := time.NewTicker(r.retryInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := r.Load(ctx); err != nil {
					r.logger.Error("Concept table retry failed", zap.Error(err))
					continue
				}
				r.logger.Info("All concept tables loaded")
				return
			}
		}
	}()
}

// Ready reports whether every dictionary's table is loaded
func (r *ConceptRegistry) Ready() bool {
	return len(r.pending()) == 0
}

// Name identifies the registry in readiness reports
func (r *ConceptRegistry) Name() string {
	return "concepts"
}

// Ping fails while any table is still missing
func (r *ConceptRegistry) Ping(context.Context) error {
	if missing := r.pending(); len(missing) > 0 {
		return fmt.Errorf("concept tables not loaded: %v", missing)
	}
	return nil
}

func (r *ConceptRegistry) pending() []valueobjects.Dictionary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var missing []valueobjects.Dictionary
	for _, dictionary := range valueobjects.AllDictionaries() {
		if _, ok := r.tables[dictionary]; !ok {
			missing = append(missing, dictionary)
		}
	}
	return missing
}
