package services

import (
	"net/http"

	"github.com/addegbenga/mip-dapp/models"
)

// Identity decide se o visitante atual é dono de um ativo.
type Identity interface {
	Owns(asset models.AssetIP) bool
}

// SentinelIdentity reconhece o usuário atual pelos valores fixos de username/nome
// gravados nos ativos do próprio usuário. Substituível por uma identidade de sessão.
type SentinelIdentity struct {
	Username string
	Name     string
}

// DefaultIdentity é a identidade usada enquanto não há autenticação.
var DefaultIdentity = SentinelIdentity{Username: "you", Name: "You"}

func (s SentinelIdentity) Owns(asset models.AssetIP) bool {
	if asset.Creator == nil {
		return false
	}
	return (s.Username != "" && asset.Creator.Username == s.Username) ||
		(s.Name != "" && asset.Creator.Name == s.Name)
}

// IdentityResolver obtém a identidade do visitante a partir da requisição.
type IdentityResolver func(r *http.Request) Identity

// StaticIdentity devolve sempre a mesma identidade.
func StaticIdentity(id Identity) IdentityResolver {
	return func(*http.Request) Identity { return id }
}
