package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/addegbenga/mip-dapp/logger"
	"github.com/addegbenga/mip-dapp/models"
)

// CachedAssetStore coloca um cache BigCache na frente de outro AssetStore.
// Apenas acertos são guardados; ausências sempre consultam a fonte.
type CachedAssetStore struct {
	next  AssetStore
	cache *bigcache.BigCache
	log   *logger.Logger
}

// NewCachedAssetStore cria o cache com o TTL indicado.
func NewCachedAssetStore(next AssetStore, ttl time.Duration, log *logger.Logger) (*CachedAssetStore, error) {
	cfg := bigcache.DefaultConfig(ttl)
	cfg.Shards = 64
	cfg.CleanWindow = ttl
	cfg.MaxEntrySize = 4096
	cfg.Verbose = false
	cache, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("falha ao criar cache de ativos: %w", err)
	}
	return &CachedAssetStore{next: next, cache: cache, log: log}, nil
}

func listKey(c models.Collection) string { return "list:" + string(c) }
func slugKey(c models.Collection, s string) string { return string(c) + ":" + s }

func (s *CachedAssetStore) ListAssets(ctx context.Context, collection models.Collection) ([]models.AssetIP, error) {
	var out []models.AssetIP
	if s.load(listKey(collection), &out) {
		return out, nil
	}
	out, err := s.next.ListAssets(ctx, collection)
	if err != nil {
		return nil, err
	}
	s.store(listKey(collection), out)
	return out, nil
}

func (s *CachedAssetStore) GetAssetBySlug(ctx context.Context, collection models.Collection, slug string) (models.AssetIP, bool, error) {
	var a models.AssetIP
	key := slugKey(collection, slug)
	if s.load(key, &a) {
		return a, true, nil
	}
	a, found, err := s.next.GetAssetBySlug(ctx, collection, slug)
	if err != nil || !found {
		return a, found, err
	}
	s.store(key, a)
	return a, true, nil
}

// Invalidate descarta todas as entradas (chamado após o seed).
func (s *CachedAssetStore) Invalidate() error {
	return s.cache.Reset()
}

func (s *CachedAssetStore) Close() error {
	return s.cache.Close()
}

func (s *CachedAssetStore) load(key string, v interface{}) bool {
	raw, err := s.cache.Get(key)
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			s.log.Warn("Falha ao ler cache de ativos", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		s.log.Warn("Entrada de cache inválida", "key", key, "error", err)
		_ = s.cache.Delete(key)
		return false
	}
	return true
}

func (s *CachedAssetStore) store(key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(key, raw); err != nil {
		s.log.Warn("Falha ao gravar cache de ativos", "key", key, "error", err)
	}
}
