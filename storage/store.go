package storage

import (
	"context"

	"github.com/addegbenga/mip-dapp/models"
)

// AssetStore é a fonte somente leitura dos ativos, organizada por coleção.
// A ordem de ListAssets é a ordem de exibição e de resolução.
type AssetStore interface {
	ListAssets(ctx context.Context, collection models.Collection) ([]models.AssetIP, error)
	GetAssetBySlug(ctx context.Context, collection models.Collection, slug string) (models.AssetIP, bool, error)
}

// AssetWriter grava ativos numa coleção, na posição indicada (usado pelo seed).
type AssetWriter interface {
	SaveAsset(ctx context.Context, collection models.Collection, position int, asset models.AssetIP) error
}

// TokenStore guarda o estado dos tokens observado pelo listener.
type TokenStore interface {
	SaveToken(ctx context.Context, token models.Token) error
	GetToken(ctx context.Context, contractAddress, tokenID string) (models.Token, bool, error)
	GetTokensByOwner(ctx context.Context, ownerAddress string) ([]models.Token, error)
}

// CursorStore guarda o último bloco processado por um consumidor de eventos.
type CursorStore interface {
	GetCursor(ctx context.Context, name string) (uint64, bool, error)
	SaveCursor(ctx context.Context, name string, block uint64) error
}
