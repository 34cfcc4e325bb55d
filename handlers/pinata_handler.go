package handlers

import (
	"net/http"

	"github.com/addegbenga/mip-dapp/logger"
	"github.com/addegbenga/mip-dapp/metrics"
	"github.com/addegbenga/mip-dapp/pinata"
)

const signedURLErrorText = "Error creating API Key:"

// PinataHandler entrega URLs assinadas de upload para o cliente.
type PinataHandler struct {
	Creator pinata.SignedURLCreator
	Metrics *metrics.Metrics
	log     *logger.Logger
}

// NewPinataHandler aceita creator nil (JWT ausente): toda chamada responde 500.
func NewPinataHandler(creator pinata.SignedURLCreator, m *metrics.Metrics, log *logger.Logger) *PinataHandler {
	return &PinataHandler{Creator: creator, Metrics: m, log: log}
}

type signedURLResponse struct {
	URL string `json:"url"`
}

type signedURLError struct {
	Text string `json:"text"`
}

// GetSignedURL emite uma URL de upload assinada. Falhas não são detalhadas ao cliente.
// GET /api/pinata
func (h *PinataHandler) GetSignedURL(w http.ResponseWriter, r *http.Request) {
	if h.Creator == nil {
		h.log.Error("Falha ao criar URL assinada", "error", pinata.ErrMissingJWT)
		h.Metrics.SignedURL("error")
		writeJSON(w, http.StatusInternalServerError, signedURLError{Text: signedURLErrorText})
		return
	}
	url, err := h.Creator.CreateSignedURL(r.Context(), pinata.SignedURLExpires)
	if err != nil {
		h.log.Error("Falha ao criar URL assinada", "error", err)
		h.Metrics.SignedURL("error")
		writeJSON(w, http.StatusInternalServerError, signedURLError{Text: signedURLErrorText})
		return
	}
	h.Metrics.SignedURL("ok")
	writeJSON(w, http.StatusOK, signedURLResponse{URL: url})
}
