// Package server monta o roteador HTTP da API MIP.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/addegbenga/mip-dapp/handlers"
	"github.com/addegbenga/mip-dapp/logger"
	"github.com/addegbenga/mip-dapp/metrics"
	"github.com/addegbenga/mip-dapp/models"
)

// Handlers reúne os handlers registrados no roteador.
type Handlers struct {
	Assets   *handlers.AssetHandler
	Creators *handlers.CreatorHandler
	Tokens   *handlers.TokenHandler
	Pinata   *handlers.PinataHandler
	ABI      *handlers.ABIHandler
}

// NewRouter cria o roteador chi com os middlewares padrão e todas as rotas /api.
func NewRouter(h Handlers, m *metrics.Metrics, log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	if m != nil {
		r.Use(m.Middleware)
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/assets/{slug}", h.Assets.GetAsset)
		r.Get("/timeline", h.Assets.ListCollection(models.CollectionTimeline))
		r.Get("/portfolio", h.Assets.ListCollection(models.CollectionPortfolio))
		r.Get("/creators/{username}", h.Creators.GetCreatorAssets)

		r.Get("/pinata", h.Pinata.GetSignedURL)

		r.Get("/abi", h.ABI.GetABI)
		r.Get("/abi/functions", h.ABI.ListFunctions)

		r.Route("/tokens", func(r chi.Router) {
			r.Post("/mint/prepare", h.Tokens.PrepareMint)
			r.Post("/transfer/prepare", h.Tokens.PrepareTransfer)
			r.Get("/{tokenID}", h.Tokens.GetToken)
			r.Get("/{tokenID}/uri", h.Tokens.GetTokenURI)
			r.Get("/{tokenID}/owner", h.Tokens.GetOwner)
		})
	})
	return r
}

// requestLogger registra cada requisição no logger zap.
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("Requisição HTTP",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
