package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/addegbenga/mip-dapp/models"
	"github.com/addegbenga/mip-dapp/storage"
)

// AssetResolver localiza ativos pelo slug percorrendo as coleções na ordem de resolução.
type AssetResolver struct {
	Store storage.AssetStore
	Order []models.Collection
}

// NewAssetResolver cria o resolver com a ordem padrão (timeline, depois portfolio).
func NewAssetResolver(store storage.AssetStore) *AssetResolver {
	return &AssetResolver{Store: store, Order: models.ResolutionOrder}
}

// Resolve retorna o primeiro ativo cujo slug é exatamente igual ao informado.
// Não encontrar não é erro: found volta false.
func (r *AssetResolver) Resolve(ctx context.Context, slug string) (models.AssetIP, bool, error) {
	if slug == "" {
		return models.AssetIP{}, false, nil
	}
	for _, c := range r.Order {
		asset, found, err := r.Store.GetAssetBySlug(ctx, c, slug)
		if err != nil {
			return models.AssetIP{}, false, fmt.Errorf("falha ao resolver ativo %q em %s: %w", slug, c, err)
		}
		if found {
			return asset, true, nil
		}
	}
	return models.AssetIP{}, false, nil
}

// List retorna os ativos de uma coleção na ordem de exibição.
func (r *AssetResolver) List(ctx context.Context, collection models.Collection) ([]models.AssetIP, error) {
	if !collection.Valid() {
		return nil, fmt.Errorf("coleção desconhecida: %q", collection)
	}
	assets, err := r.Store.ListAssets(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar %s: %w", collection, err)
	}
	return assets, nil
}

// ByCreator lista os ativos de um criador em todas as coleções, sem repetir slugs.
func (r *AssetResolver) ByCreator(ctx context.Context, username string) ([]models.AssetIP, error) {
	username = strings.TrimSpace(username)
	var out []models.AssetIP
	seen := map[string]bool{}
	for _, c := range r.Order {
		assets, err := r.List(ctx, c)
		if err != nil {
			return nil, err
		}
		for _, a := range assets {
			if a.Creator == nil || !strings.EqualFold(a.Creator.Username, username) || seen[a.Slug] {
				continue
			}
			seen[a.Slug] = true
			out = append(out, a)
		}
	}
	return out, nil
}
