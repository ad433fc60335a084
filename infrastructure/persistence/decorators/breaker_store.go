package decorators

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"ordbok-backend/application/ports"
	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/domain/source"
	apperrors "ordbok-backend/pkg/errors"
	"ordbok-backend/pkg/observability"
)

// BreakerOptions configures the circuit breaker around the entry store
type BreakerOptions struct {
	Name string
	// MaxRequests allowed through while half-open
	MaxRequests uint32
	// Interval after which closed-state failure counts reset
	Interval time.Duration
	// Timeout the breaker stays open before probing
	Timeout time.Duration
	// ConsecutiveFailures that trip the breaker
	ConsecutiveFailures uint32
}

// DefaultBreakerOptions returns the options used when none are configured
func DefaultBreakerOptions() BreakerOptions {
	return BreakerOptions{
		Name:                "entry-store",
		MaxRequests:         1,
		Interval:            60 * time.Second,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// BreakerEntryStore isolates callers from a failing entry store. While the
// breaker is open calls fail fast with an UNAVAILABLE error. Missing entries
// and caller cancellation do not count as failures.
type BreakerEntryStore struct {
	next    ports.EntryRepository
	cb      *gobreaker.CircuitBreaker
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewBreakerEntryStore wraps next in a circuit breaker
func NewBreakerEntryStore(next ports.EntryRepository, opts BreakerOptions, metrics *observability.Collector, logger *zap.Logger) *BreakerEntryStore {
	s := &BreakerEntryStore{
		next:    next,
		metrics: metrics,
		logger:  logger,
	}

	s.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        opts.Name,
		MaxRequests: opts.MaxRequests,
		Interval:    opts.Interval,
		Timeout:     opts.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.ConsecutiveFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.SetBreakerState(name, int(to))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	metrics.SetBreakerState(opts.Name, int(gobreaker.StateClosed))

	return s
}

// State reports the breaker state
func (s *BreakerEntryStore) State() gobreaker.State {
	return s.cb.State()
}

// GetEntry reads through the breaker
func (s *BreakerEntryStore) GetEntry(ctx context.Context, id valueobjects.EntryID) (*source.RawEntry, error) {
	start := time.Now()
	result, err := s.cb.Execute(func() (interface{}, error) {
		return s.next.GetEntry(ctx, id)
	})
	s.metrics.RecordStoreOperation("get_entry", time.Since(start), err)
	if err != nil {
		return nil, s.translate(err)
	}

	entry, _ := result.(*source.RawEntry)
	return entry, nil
}

// PutEntry writes through the breaker
func (s *BreakerEntryStore) PutEntry(ctx context.Context, id valueobjects.EntryID, document []byte) error {
	start := time.Now()
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.next.PutEntry(ctx, id, document)
	})
	s.metrics.RecordStoreOperation("put_entry", time.Since(start), err)
	if err != nil {
		return s.translate(err)
	}
	return nil
}

func (s *BreakerEntryStore) translate(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return apperrors.NewUnavailableError("entry store").WithCause(err)
	}
	return err
}
