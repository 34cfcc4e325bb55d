// Package metrics expõe as métricas Prometheus do servidor MIP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics reúne os coletores da API, do proxy de upload e do listener.
type Metrics struct {
	Registry *prometheus.Registry

	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	signedURLs      *prometheus.CounterVec
	listenerEvents  *prometheus.CounterVec
	listenerBlock   prometheus.Gauge
}

// New registra os coletores num registry próprio.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		requestCounter: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mip",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of API requests",
		}, []string{"method", "path", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mip",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "API request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		}, []string{"method", "path"}),
		signedURLs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mip",
			Subsystem: "pinata",
			Name:      "signed_urls_total",
			Help:      "Signed upload URL requests by outcome",
		}, []string{"outcome"}),
		listenerEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mip",
			Subsystem: "listener",
			Name:      "events_total",
			Help:      "Contract events processed by the listener",
		}, []string{"event", "outcome"}),
		listenerBlock: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "mip",
			Subsystem: "listener",
			Name:      "last_block",
			Help:      "Last block processed by the listener",
		}),
	}
}

// Middleware mede cada requisição usando o padrão de rota do chi como rótulo.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				path = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestCounter.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// Handler serve o endpoint /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// SignedURL conta o resultado de uma emissão de URL assinada ("ok" ou "error").
func (m *Metrics) SignedURL(outcome string) {
	if m == nil {
		return
	}
	m.signedURLs.WithLabelValues(outcome).Inc()
}

// ListenerEvent conta um evento processado pelo listener.
func (m *Metrics) ListenerEvent(event, outcome string) {
	if m == nil {
		return
	}
	m.listenerEvents.WithLabelValues(event, outcome).Inc()
}

// ListenerBlock registra o último bloco processado.
func (m *Metrics) ListenerBlock(block uint64) {
	if m == nil {
		return
	}
	m.listenerBlock.Set(float64(block))
}
