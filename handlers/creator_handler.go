package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/addegbenga/mip-dapp/logger"
	"github.com/addegbenga/mip-dapp/models"
	"github.com/addegbenga/mip-dapp/services"
)

// CreatorHandler lida com a página de perfil de um criador.
type CreatorHandler struct {
	Resolver *services.AssetResolver
	log      *logger.Logger
}

func NewCreatorHandler(resolver *services.AssetResolver, log *logger.Logger) *CreatorHandler {
	return &CreatorHandler{Resolver: resolver, log: log}
}

type creatorResponse struct {
	Creator models.Creator   `json:"creator"`
	Assets  []models.AssetIP `json:"assets"`
}

// GetCreatorAssets lista os ativos de um criador.
// GET /api/creators/{username}
func (h *CreatorHandler) GetCreatorAssets(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "username é obrigatório")
		return
	}
	assets, err := h.Resolver.ByCreator(r.Context(), username)
	if err != nil {
		h.log.Error("Erro ao listar ativos do criador", "username", username, "error", err)
		writeError(w, http.StatusInternalServerError, "Erro ao listar ativos")
		return
	}
	if len(assets) == 0 {
		writeError(w, http.StatusNotFound, "Criador não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, creatorResponse{Creator: *assets[0].Creator, Assets: assets})
}
