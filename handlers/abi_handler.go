package handlers

import (
	"net/http"

	"github.com/addegbenga/mip-dapp/abi"
)

// ABIHandler publica o ABI do contrato MIP.
type ABIHandler struct {
	Raw        []byte
	Descriptor *abi.Descriptor
}

func NewABIHandler(raw []byte, d *abi.Descriptor) *ABIHandler {
	return &ABIHandler{Raw: raw, Descriptor: d}
}

// GetABI devolve o ABI exatamente como embutido.
// GET /api/abi
func (h *ABIHandler) GetABI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.Raw)
}

type functionSummary struct {
	Name            string `json:"name"`
	Selector        string `json:"selector"`
	StateMutability string `json:"state_mutability"`
	Inputs          int    `json:"inputs"`
	Outputs         int    `json:"outputs"`
}

// ListFunctions lista as funções do contrato com seus seletores.
// GET /api/abi/functions
func (h *ABIHandler) ListFunctions(w http.ResponseWriter, r *http.Request) {
	fns := h.Descriptor.Functions()
	out := make([]functionSummary, 0, len(fns))
	for _, fn := range fns {
		out = append(out, functionSummary{
			Name:            fn.Name,
			Selector:        abi.SelectorHex(fn.Name),
			StateMutability: fn.StateMutability,
			Inputs:          len(fn.Inputs),
			Outputs:         len(fn.Outputs),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
