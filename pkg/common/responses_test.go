package common

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/dictionaries/bm/entries/1", nil)
	r = r.WithContext(context.WithValue(r.Context(), middleware.RequestIDKey, "req-1"))
	w := httptest.NewRecorder()

	require.NoError(t, RespondJSON(w, r, http.StatusOK, map[string]int{"id": 1}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
		Meta    MetaInfo       `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Data["id"])
	assert.Equal(t, "req-1", body.Meta.RequestID)
	assert.Equal(t, APIVersion, body.Meta.Version)
	assert.NotEmpty(t, body.Meta.Timestamp)
}

func TestRespondWithMeta_NonSuccessStatus(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, RespondWithMeta(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"}, nil))

	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Nil(t, body.Meta)
}
