package decorators

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ordbok-backend/application/ports"
	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/domain/source"
)

// EntryCacheKey is the cache key of a raw article document
func EntryCacheKey(id valueobjects.EntryID) string {
	return fmt.Sprintf("entry:%s:%d", id.Dictionary(), id.ID())
}

// CachedEntryStore serves article documents from a cache before the wrapped
// store. Only found documents are cached. Cache failures are logged and the
// read falls through to the store.
type CachedEntryStore struct {
	next   ports.EntryRepository
	cache  ports.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedEntryStore creates a cache-aside decorator around next
func NewCachedEntryStore(next ports.EntryRepository, cache ports.Cache, ttl time.Duration, logger *zap.Logger) *CachedEntryStore {
	return &CachedEntryStore{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// GetEntry returns the cached document or loads and caches it
func (s *CachedEntryStore) GetEntry(ctx context.Context, id valueobjects.EntryID) (*source.RawEntry, error) {
	key := EntryCacheKey(id)

	data, found, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.logger.Error("Entry cache read failed", zap.String("key", key), zap.Error(err))
	case found:
		entry, parseErr := source.ParseEntry(data)
		if parseErr == nil {
			return entry, nil
		}
		s.logger.Error("Dropping undecodable cached entry", zap.String("key", key), zap.Error(parseErr))
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Error("Entry cache delete failed", zap.String("key", key), zap.Error(err))
		}
	}

	entry, err := s.next.GetEntry(ctx, id)
	if err != nil || entry == nil {
		return entry, err
	}

	if err := s.cache.Set(ctx, key, entry.Bytes(), s.ttl); err != nil {
		s.logger.Error("Entry cache write failed", zap.String("key", key), zap.Error(err))
	}
	return entry, nil
}

// PutEntry writes through to the store and invalidates the cached copy
func (s *CachedEntryStore) PutEntry(ctx context.Context, id valueobjects.EntryID, document []byte) error {
	if err := s.next.PutEntry(ctx, id, document); err != nil {
		return err
	}

	key := EntryCacheKey(id)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Error("Entry cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}
