package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/addegbenga/mip-dapp/logger"
	"github.com/addegbenga/mip-dapp/models"
	"github.com/addegbenga/mip-dapp/services"
)

// AssetHandler lida com requisições HTTP relacionadas aos ativos registrados.
type AssetHandler struct {
	Resolver *services.AssetResolver
	Views    *services.AssetViewService
	Identity services.IdentityResolver
	log      *logger.Logger
}

// NewAssetHandler cria uma nova instância do handler de ativos.
func NewAssetHandler(resolver *services.AssetResolver, views *services.AssetViewService, identity services.IdentityResolver, log *logger.Logger) *AssetHandler {
	if identity == nil {
		identity = services.StaticIdentity(services.DefaultIdentity)
	}
	return &AssetHandler{Resolver: resolver, Views: views, Identity: identity, log: log}
}

// GetAsset retorna a página de detalhe de um ativo.
// GET /api/assets/{slug}
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	view, err := h.Views.View(r.Context(), slug, h.Identity(r))
	if err != nil {
		h.log.Error("Erro ao montar página do ativo", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "Erro ao buscar ativo")
		return
	}
	if !view.Found() {
		writeJSON(w, http.StatusNotFound, view)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ListCollection retorna os ativos de uma coleção na ordem de exibição.
// GET /api/timeline, GET /api/portfolio
func (h *AssetHandler) ListCollection(c models.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assets, err := h.Resolver.List(r.Context(), c)
		if err != nil {
			h.log.Error("Erro ao listar coleção", "collection", c, "error", err)
			writeError(w, http.StatusInternalServerError, "Erro ao listar ativos")
			return
		}
		if assets == nil {
			assets = []models.AssetIP{}
		}
		writeJSON(w, http.StatusOK, assets)
	}
}
