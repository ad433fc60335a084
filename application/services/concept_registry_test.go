package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/domain/source"
	"ordbok-backend/tests/fixtures"
)

type mockConceptRepository struct {
	mock.Mock
}

func (m *mockConceptRepository) GetConceptTable(ctx context.Context, dictionary valueobjects.Dictionary) (*source.ConceptTable, error) {
	args := m.Called(ctx, dictionary)
	table, _ := args.Get(0).(*source.ConceptTable)
	return table, args.Error(1)
}

func (m *mockConceptRepository) PutConceptTable(ctx context.Context, dictionary valueobjects.Dictionary, document []byte) error {
	return m.Called(ctx, dictionary, document).Error(0)
}

func conceptTable(t *testing.T, dictionary valueobjects.Dictionary, expansions map[string]string) *source.ConceptTable {
	t.Helper()
	table, err := source.ParseConceptTable(fixtures.ConceptTable(dictionary, expansions))
	require.NoError(t, err)
	return table
}

func TestConceptRegistryLoad(t *testing.T) {
	repo := new(mockConceptRepository)
	repo.On("GetConceptTable", mock.Anything, valueobjects.Bokmaal).
		Return(conceptTable(t, valueobjects.Bokmaal, map[string]string{"jf": "jamfør"}), nil)
	repo.On("GetConceptTable", mock.Anything, valueobjects.Nynorsk).
		Return(conceptTable(t, valueobjects.Nynorsk, map[string]string{"jf": "jamfør", "m": "hankjønn"}), nil)
	repo.On("GetConceptTable", mock.Anything, valueobjects.NorskOrdbok).Return(nil, nil)

	registry := NewConceptRegistry(repo, time.Second, zap.NewNop())
	require.NoError(t, registry.Load(context.Background()))
	assert.True(t, registry.Ready())
	assert.NoError(t, registry.Ping(context.Background()))

	expansion, ok := registry.Concept(valueobjects.Nynorsk, "m")
	assert.True(t, ok)
	assert.Equal(t, "hankjønn", expansion)

	_, ok = registry.Concept(valueobjects.Bokmaal, "m")
	assert.False(t, ok, "tables are per dictionary")

	_, ok = registry.Concept(valueobjects.NorskOrdbok, "jf")
	assert.False(t, ok, "a missing table behaves as empty")
}

func TestConceptRegistryLookupBeforeLoad(t *testing.T) {
	registry := NewConceptRegistry(new(mockConceptRepository), time.Second, zap.NewNop())

	_, ok := registry.Concept(valueobjects.Bokmaal, "jf")
	assert.False(t, ok)
	assert.False(t, registry.Ready())
	assert.Error(t, registry.Ping(context.Background()))
}

func TestConceptRegistryPartialFailure(t *testing.T) {
	repo := new(mockConceptRepository)
	repo.On("GetConceptTable", mock.Anything, valueobjects.Bokmaal).
		Return(conceptTable(t, valueobjects.Bokmaal, map[string]string{"jf": "jamfør"}), nil).Once()
	repo.On("GetConceptTable", mock.Anything, valueobjects.Nynorsk).Return(nil, errors.New("throttled"))
	repo.On("GetConceptTable", mock.Anything, valueobjects.NorskOrdbok).Return(nil, nil).Once()

	registry := NewConceptRegistry(repo, time.Second, zap.NewNop())
	err := registry.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nn")
	assert.False(t, registry.Ready())

	_, ok := registry.Concept(valueobjects.Bokmaal, "jf")
	assert.True(t, ok, "loaded tables are usable while others retry")

	// a second load only asks for the failed dictionary
	_ = registry.Load(context.Background())
	repo.AssertNumberOfCalls(t, "GetConceptTable", 4)
}

func TestConceptRegistryStartRetriesInBackground(t *testing.T) {
	repo := new(mockConceptRepository)
	repo.On("GetConceptTable", mock.Anything, valueobjects.Bokmaal).Return(nil, errors.New("table not ready")).Twice()
	repo.On("GetConceptTable", mock.Anything, valueobjects.Bokmaal).
		Return(conceptTable(t, valueobjects.Bokmaal, map[string]string{"jf": "jamfør"}), nil)
	repo.On("GetConceptTable", mock.Anything, valueobjects.Nynorsk).Return(nil, nil)
	repo.On("GetConceptTable", mock.Anything, valueobjects.NorskOrdbok).Return(nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := NewConceptRegistry(repo, 10*time.Millisecond, zap.NewNop())
	registry.Start(ctx)
	assert.False(t, registry.Ready(), "start does not wait for retries")

	assert.Eventually(t, registry.Ready, time.Second, 5*time.Millisecond)
	expansion, ok := registry.Concept(valueobjects.Bokmaal, "jf")
	assert.True(t, ok)
	assert.Equal(t, "jamfør", expansion)
}

// downConcepts fails every load and counts attempts
type downConcepts struct {
	attempts atomic.Int32
}

func (d *downConcepts) GetConceptTable(context.Context, valueobjects.Dictionary) (*source.ConceptTable, error) {
	d.attempts.Add(1)
	return nil, errors.New("down")
}

func (d *downConcepts) PutConceptTable(context.Context, valueobjects.Dictionary, []byte) error {
	return nil
}

func TestConceptRegistryStartStopsWithContext(t *testing.T) {
	repo := &downConcepts{}
	ctx, cancel := context.WithCancel(context.Background())
	registry := NewConceptRegistry(repo, 5*time.Millisecond, zap.NewNop())
	registry.Start(ctx)

	assert.Eventually(t, func() bool { return repo.attempts.Load() > 3 }, time.Second, time.Millisecond)
	cancel()

	time.Sleep(20 * time.Millisecond)
	settled := repo.attempts.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, repo.attempts.Load())
	assert.False(t, registry.Ready())
}
