package ports

import (
	"context"
	"time"

	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/domain/source"
)

// EntryReader fetches upstream article documents.
// This is a port in hexagonal architecture - the core doesn't know where
// entries are stored or how they are cached.
type EntryReader interface {
	// GetEntry returns the document for id, or nil and no error when the
	// entry does not exist
	GetEntry(ctx context.Context, id valueobjects.EntryID) (*source.RawEntry, error)
}

// EntryWriter stores upstream article documents
type EntryWriter interface {
	// PutEntry stores the raw document for id, replacing any previous version
	PutEntry(ctx context.Context, id valueobjects.EntryID, document []byte) error
}

// EntryRepository reads and writes article documents
type EntryRepository interface {
	EntryReader
	EntryWriter
}

// ConceptRepository stores the per-dictionary concept tables
type ConceptRepository interface {
	// GetConceptTable returns the table for a dictionary, or nil and no
	// error when none is stored
	GetConceptTable(ctx context.Context, dictionary valueobjects.Dictionary) (*source.ConceptTable, error)

	// PutConceptTable stores the raw concept table document
	PutConceptTable(ctx context.Context, dictionary valueobjects.Dictionary, document []byte) error
}

// ConceptLookup resolves concept ids to display text. Lookups never block on
// I/O; tables are loaded ahead of time.
type ConceptLookup interface {
	Concept(dictionary valueobjects.Dictionary, id string) (string, bool)
}

// Cache defines the interface for caching raw documents
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value in cache; a zero ttl means the backend default
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from cache
	Clear(ctx context.Context) error
}

// HealthChecker is implemented by collaborators that can report readiness
type HealthChecker interface {
	Name() string
	Ping(ctx context.Context) error
}
