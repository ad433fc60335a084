package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordbok-backend/domain/core/valueobjects"
	"ordbok-backend/infrastructure/config"
	"ordbok-backend/tests/fixtures"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nn"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nn", "100431.json"), fixtures.Skule(), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nn", "concepts.json"),
		fixtures.ConceptTable(valueobjects.Nynorsk, map[string]string{"norr.": "norrønt"}), 0o600))

	cfg := config.Default()
	cfg.Environment = "test"
	cfg.LogLevel = "error"
	cfg.StoreBackend = config.StoreMemory
	cfg.SeedDir = dir
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestInitializeContainer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container, cleanup, err := InitializeContainer(ctx, testConfig(t))
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, container.Concepts.Ready())

	entry, err := container.Entries.GetEntry(ctx, valueobjects.MustEntryID(valueobjects.Nynorsk, 100431))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "skule", entry.PrimaryLemma())

	requests := []struct {
		path   string
		status int
	}{
		{"/health", http.StatusOK},
		{"/ready", http.StatusOK},
		{"/api/v1/dictionaries/nn/entries/100431", http.StatusOK},
		{"/api/v1/dictionaries/nn/entries/100431/graph", http.StatusOK},
		{"/api/v1/dictionaries/bm/entries/100431", http.StatusNotFound},
		{"/metrics", http.StatusOK},
	}
	for _, req := range requests {
		w := httptest.NewRecorder()
		container.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, req.path, nil))
		assert.Equal(t, req.status, w.Code, req.path)
	}
}

func TestInitializeContainer_BadSeedDirectory(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.SeedDir, "nn", "7.json"), []byte("{broken"), 0o600))

	_, _, err := InitializeContainer(context.Background(), cfg)
	assert.Error(t, err)
}

func TestProvideLogger_RejectsUnknownLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "chatty"

	_, err := ProvideLogger(cfg)
	assert.Error(t, err)
}
