package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/assets/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, slug := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/assets/"+slug, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCounter.WithLabelValues("GET", "/api/assets/{slug}", "404")))
}

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.SignedURL("ok")
	m.SignedURL("error")
	m.SignedURL("error")
	m.ListenerEvent("Transfer", "ok")
	m.ListenerBlock(12)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.signedURLs.WithLabelValues("error")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.listenerBlock))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mip_pinata_signed_urls_total")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SignedURL("ok")
		m.ListenerEvent("Transfer", "ok")
		m.ListenerBlock(1)
	})
}
