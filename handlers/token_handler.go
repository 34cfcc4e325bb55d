package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/addegbenga/mip-dapp/logger"
	"github.com/addegbenga/mip-dapp/services"
)

type TokenHandler struct {
	Service *services.TokenizationService
	log     *logger.Logger
}

func NewTokenHandler(s *services.TokenizationService, log *logger.Logger) *TokenHandler {
	return &TokenHandler{Service: s, log: log}
}

// PrepareMint prepara a chamada mint_item para assinatura na carteira do usuário.
// POST /api/tokens/mint/prepare
func (h *TokenHandler) PrepareMint(w http.ResponseWriter, r *http.Request) {
	var req services.MintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	call, err := h.Service.PrepareMint(req)
	if err != nil {
		h.fail(w, "mint", err)
		return
	}
	writeJSON(w, http.StatusOK, call)
}

// PrepareTransfer prepara a chamada transfer_from para assinatura na carteira do usuário.
// POST /api/tokens/transfer/prepare
func (h *TokenHandler) PrepareTransfer(w http.ResponseWriter, r *http.Request) {
	var req services.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	call, err := h.Service.PrepareTransfer(r.Context(), req)
	if err != nil {
		h.fail(w, "transfer", err)
		return
	}
	writeJSON(w, http.StatusOK, call)
}

// GetToken retorna o registro do token sincronizado pelo listener.
// GET /api/tokens/{tokenID}
func (h *TokenHandler) GetToken(w http.ResponseWriter, r *http.Request) {
	tokenID := chi.URLParam(r, "tokenID")
	token, found, err := h.Service.GetToken(r.Context(), tokenID)
	if err != nil {
		h.fail(w, "get_token", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Token não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, token)
}

// GetTokenURI lê o URI de metadados do token na rede.
// GET /api/tokens/{tokenID}/uri
func (h *TokenHandler) GetTokenURI(w http.ResponseWriter, r *http.Request) {
	tokenID := chi.URLParam(r, "tokenID")
	uri, err := h.Service.TokenURI(r.Context(), tokenID)
	if err != nil {
		h.fail(w, "token_uri", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token_id": tokenID, "uri": uri})
}

// GetOwner lê o dono atual do token na rede.
// GET /api/tokens/{tokenID}/owner
func (h *TokenHandler) GetOwner(w http.ResponseWriter, r *http.Request) {
	tokenID := chi.URLParam(r, "tokenID")
	owner, err := h.Service.OwnerOf(r.Context(), tokenID)
	if err != nil {
		h.fail(w, "owner_of", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token_id": tokenID, "owner": owner})
}

func (h *TokenHandler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrAssetNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAssetNotTokenized):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrChainUnavailable), errors.Is(err, services.ErrContractNotDefined):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.log.Error("Erro na operação de token", "op", op, "error", err)
		writeError(w, http.StatusBadGateway, "Erro ao consultar a rede Starknet")
	}
}
