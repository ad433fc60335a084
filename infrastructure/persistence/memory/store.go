// Package memory provides an in-process document store for local
// development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/domain/source"
)

// Store keeps raw documents in memory, keyed the same way as the DynamoDB
// table
type Store struct {
	mu       sync.RWMutex
	entries  map[valueobjects.EntryID][]byte
	concepts map[valueobjects.Dictionary][]byte
	logger   *zap.Logger
}

// NewStore creates an empty store
func NewStore(logger *zap.Logger) *Store {
	return &Store{
		entries:  make(map[valueobjects.EntryID][]byte),
		concepts: make(map[valueobjects.Dictionary][]byte),
		logger:   logger,
	}
}

// GetEntry decodes a stored article; nil when absent
func (s *Store) GetEntry(_ context.Context, id valueobjects.EntryID) (*source.RawEntry, error) {
	s.mu.RLock()
	data, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return source.ParseEntry(data)
}

// PutEntry stores an article document
func (s *Store) PutEntry(_ context.Context, id valueobjects.EntryID, document []byte) error {
	if _, err := source.ParseEntry(document); err != nil {
		return fmt.Errorf("refusing to store entry %s: %w", id, err)
	}

	data := make([]byte, len(document))
	copy(data, document)

	s.mu.Lock()
	s.entries[id] = data
	s.mu.Unlock()

	s.logger.Debug("Stored entry", zap.String("entryID", id.String()), zap.Int("bytes", len(data)))
	return nil
}

// GetConceptTable decodes a stored concept table; nil when absent
func (s *Store) GetConceptTable(_ context.Context, dictionary valueobjects.Dictionary) (*source.ConceptTable, error) {
	s.mu.RLock()
	data, ok := s.concepts[dictionary]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return source.ParseConceptTable(data)
}

// PutConceptTable stores a concept table document
func (s *Store) PutConceptTable(_ context.Context, dictionary valueobjects.Dictionary, document []byte) error {
	if _, err := source.ParseConceptTable(document); err != nil {
		return fmt.Errorf("refusing to store concept table %s: %w", dictionary, err)
	}

	data := make([]byte, len(document))
	copy(data, document)

	s.mu.Lock()
	s.concepts[dictionary] = data
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored articles
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Name identifies the store in readiness reports
func (s *Store) Name() string {
	return "memory"
}

// Ping always succeeds
func (s *Store) Ping(context.Context) error {
	return nil
}
