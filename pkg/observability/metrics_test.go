package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecords(t *testing.T) {
	c := NewCollector("ordbok")

	c.RecordEntryFetch("bm", "found", false)
	c.RecordEntryFetch("bm", "found", true)
	c.RecordEntryFetch("nn", "missing", false)
	c.RecordGraphBuild(20*time.Millisecond, 5, 12, nil)
	c.RecordGraphBuild(time.Millisecond, 0, 0, errors.New("boom"))
	c.RecordCacheResult("memory", "hit")
	c.RecordStoreOperation("GetEntry", time.Millisecond, nil)
	c.SetBreakerState("entry-store", 2)
	c.RecordQuery("GetEntryQuery", time.Millisecond, nil)
	c.RecordQuery("GetEntryQuery", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.EntryFetches.WithLabelValues("bm", "found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.CoalescedReads.WithLabelValues("bm")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.EntryFetches.WithLabelValues("nn", "missing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.GraphBuilds.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.GraphBuilds.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.CacheRequests.WithLabelValues("memory", "hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.BreakerState.WithLabelValues("entry-store")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Queries.WithLabelValues("GetEntryQuery", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Queries.WithLabelValues("GetEntryQuery", "error")))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector("ordbok")
	b := NewCollector("ordbok")

	a.RecordConceptMiss("bm")
	assert.Equal(t, 1.0, testutil.ToFloat64(a.ConceptMisses.WithLabelValues("bm")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ConceptMisses.WithLabelValues("bm")))
}

func TestCollectorHandler(t *testing.T) {
	c := NewCollector("ordbok")
	c.RecordHTTPRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `ordbok_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.RecordEntryFetch("bm", "found", true)
		c.RecordGraphBuild(time.Second, 1, 1, nil)
		c.RecordHTTPRequest("GET", "/", 200, time.Second)
		c.RecordStoreOperation("GetEntry", time.Second, nil)
		c.RecordCacheResult("redis", "miss")
		c.RecordConceptMiss("nn")
		c.SetBreakerState("x", 0)
		c.RecordQuery("q", time.Second, nil)
	})
	assert.Nil(t, c.Registry())
}

func TestTracerWithoutSegmentRunsFunction(t *testing.T) {
	for _, tracer := range []*Tracer{nil, NewTracer("ordbok", false), NewTracer("ordbok", true)} {
		called := false
		err := tracer.TraceFunction(context.Background(), "GetEntry", func(ctx context.Context) error {
			called = true
			return nil
		})
		assert.NoError(t, err)
		assert.True(t, called)
		assert.NotPanics(t, func() {
			tracer.AddAnnotation(context.Background(), "dictionary", "bm")
			tracer.AddMetadata(context.Background(), "depth", 2)
		})
	}
}
