package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObserveFacet(t *testing.T) {
	c := NewCollector("test")

	c.ObserveFacet("matches", true, 10*time.Millisecond)
	c.ObserveFacet("matches", false, time.Second)
	c.ObserveFacet("matches", false, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.FacetFetches.WithLabelValues("matches", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.FacetFetches.WithLabelValues("matches", "unavailable")))
}

func TestCollector_ObserveBuild(t *testing.T) {
	c := NewCollector("test")

	c.ObserveBuild("STARTUP", "degraded")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Builds.WithLabelValues("STARTUP", "degraded")))
}

func TestCollector_IndependentRegistries(t *testing.T) {
	a := NewCollector("test")
	b := NewCollector("test")

	a.ObserveBuild("INVESTOR", "complete")

	assert.Equal(t, 0.0, testutil.ToFloat64(b.Builds.WithLabelValues("INVESTOR", "complete")))
}

func TestCollector_HTTPMetricsAndHandler(t *testing.T) {
	c := NewCollector("test")
	mux := http.NewServeMux()
	mux.HandleFunc("GET /teapot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := c.HTTPMetrics(mux)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues(http.MethodGet, "GET /teapot", "418")))

	metrics := httptest.NewRecorder()
	c.Handler().ServeHTTP(metrics, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "test_http_requests_total")
}
