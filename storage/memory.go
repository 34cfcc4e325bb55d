package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/addegbenga/mip-dapp/models"
)

// MemoryStore mantém ativos, tokens e cursores em memória.
type MemoryStore struct {
	mu      sync.RWMutex
	assets  map[models.Collection][]models.AssetIP
	tokens  map[string]models.Token // chave: contrato/token_id
	cursors map[string]uint64
}

// NewMemoryStore cria um store vazio.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		assets:  make(map[models.Collection][]models.AssetIP),
		tokens:  make(map[string]models.Token),
		cursors: make(map[string]uint64),
	}
}

// NewMemoryStoreFromFixtures cria um store já populado com os dados de demonstração.
func NewMemoryStoreFromFixtures() (*MemoryStore, error) {
	fx, err := LoadFixtures()
	if err != nil {
		return nil, err
	}
	s := NewMemoryStore()
	for _, c := range models.ResolutionOrder {
		for i, a := range fx[c] {
			if err := s.SaveAsset(context.Background(), c, i, a); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

func (s *MemoryStore) ListAssets(_ context.Context, collection models.Collection) ([]models.AssetIP, error) {
	if !collection.Valid() {
		return nil, fmt.Errorf("coleção desconhecida: %q", collection)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AssetIP, len(s.assets[collection]))
	copy(out, s.assets[collection])
	return out, nil
}

func (s *MemoryStore) GetAssetBySlug(_ context.Context, collection models.Collection, slug string) (models.AssetIP, bool, error) {
	if !collection.Valid() {
		return models.AssetIP{}, false, fmt.Errorf("coleção desconhecida: %q", collection)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.assets[collection] {
		if a.Slug == slug {
			return a, true, nil
		}
	}
	return models.AssetIP{}, false, nil
}

// SaveAsset insere o ativo na posição indicada ou substitui o ativo de mesmo slug.
func (s *MemoryStore) SaveAsset(_ context.Context, collection models.Collection, position int, asset models.AssetIP) error {
	if !collection.Valid() {
		return fmt.Errorf("coleção desconhecida: %q", collection)
	}
	if asset.Slug == "" {
		return fmt.Errorf("slug é obrigatório")
	}
	if asset.ID == "" {
		asset.ID = uuid.New().String()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.assets[collection]
	for i, a := range list {
		if a.Slug == asset.Slug {
			list[i] = asset
			return nil
		}
	}
	if position < 0 || position > len(list) {
		position = len(list)
	}
	list = append(list, models.AssetIP{})
	copy(list[position+1:], list[position:])
	list[position] = asset
	s.assets[collection] = list
	return nil
}

func tokenKey(contractAddress, tokenID string) string {
	return strings.ToLower(contractAddress) + "/" + tokenID
}

// SaveToken cria ou atualiza o token (mesma semântica de ON CONFLICT do Postgres).
func (s *MemoryStore) SaveToken(_ context.Context, token models.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tokenKey(token.ContractAddress, token.TokenID)
	now := time.Now()
	if existing, ok := s.tokens[key]; ok {
		token.ID = existing.ID
		token.CreatedAt = existing.CreatedAt
		if token.MintedBy == "" {
			token.MintedBy = existing.MintedBy
		}
	} else {
		if token.ID == "" {
			token.ID = uuid.New().String()
		}
		token.CreatedAt = now
	}
	token.UpdatedAt = now
	s.tokens[key] = token
	return nil
}

func (s *MemoryStore) GetToken(_ context.Context, contractAddress, tokenID string) (models.Token, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tokens[tokenKey(contractAddress, tokenID)]
	return t, ok, nil
}

func (s *MemoryStore) GetTokensByOwner(_ context.Context, ownerAddress string) ([]models.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Token
	for _, t := range s.tokens {
		if strings.EqualFold(t.OwnerAddress, ownerAddress) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TokenID < out[j].TokenID })
	return out, nil
}

func (s *MemoryStore) GetCursor(_ context.Context, name string) (uint64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.cursors[name]
	return b, ok, nil
}

func (s *MemoryStore) SaveCursor(_ context.Context, name string, block uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursors[name] = block
	return nil
}
