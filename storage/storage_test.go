package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addegbenga/mip-dapp/logger"
	"github.com/addegbenga/mip-dapp/models"
)

func TestLoadFixtures(t *testing.T) {
	fx, err := LoadFixtures()
	require.NoError(t, err)
	assert.NotEmpty(t, fx[models.CollectionTimeline])
	assert.NotEmpty(t, fx[models.CollectionPortfolio])

	art := fx[models.CollectionPortfolio][0]
	assert.Equal(t, "my-artwork", art.Slug)
	require.NotNil(t, art.Creator)
	assert.Equal(t, "you", art.Creator.Username)
}

func TestParseFixturesRejectsDuplicateSlugs(t *testing.T) {
	raw := []byte(`
timeline:
  - slug: same
portfolio:
  - slug: same
`)
	_, err := ParseFixtures(raw)
	assert.Error(t, err)
}

func TestParseFixturesRejectsEmptySlug(t *testing.T) {
	_, err := ParseFixtures([]byte("timeline:\n  - title: sem slug\n"))
	assert.Error(t, err)
}

func TestMemoryStoreAssets(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.SaveAsset(ctx, models.CollectionTimeline, 0, models.AssetIP{Slug: "b", Title: "B"}))
	require.NoError(t, s.SaveAsset(ctx, models.CollectionTimeline, 0, models.AssetIP{Slug: "a", Title: "A"}))
	require.NoError(t, s.SaveAsset(ctx, models.CollectionTimeline, 99, models.AssetIP{Slug: "c", Title: "C"}))

	list, err := s.ListAssets(ctx, models.CollectionTimeline)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{list[0].Slug, list[1].Slug, list[2].Slug})
	assert.NotEmpty(t, list[0].ID)

	require.NoError(t, s.SaveAsset(ctx, models.CollectionTimeline, 0, models.AssetIP{Slug: "b", Title: "B2"}))
	got, found, err := s.GetAssetBySlug(ctx, models.CollectionTimeline, "b")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "B2", got.Title)

	_, found, err = s.GetAssetBySlug(ctx, models.CollectionPortfolio, "b")
	require.NoError(t, err)
	assert.False(t, found)

	_, err = s.ListAssets(ctx, models.Collection("outra"))
	assert.Error(t, err)
	assert.Error(t, s.SaveAsset(ctx, models.CollectionTimeline, 0, models.AssetIP{}))
}

func TestMemoryStoreListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.SaveAsset(ctx, models.CollectionPortfolio, 0, models.AssetIP{Slug: "x", Title: "X"}))

	list, _ := s.ListAssets(ctx, models.CollectionPortfolio)
	list[0].Title = "alterado"

	got, _, _ := s.GetAssetBySlug(ctx, models.CollectionPortfolio, "x")
	assert.Equal(t, "X", got.Title)
}

func TestMemoryStoreTokens(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	mint := models.Token{TokenID: "1", ContractAddress: "0xABC", OwnerAddress: "0x1", MintedBy: "0x1", BlockNumber: 10}
	require.NoError(t, s.SaveToken(ctx, mint))
	first, found, err := s.GetToken(ctx, "0xabc", "1")
	require.NoError(t, err)
	require.True(t, found)

	require.NoError(t, s.SaveToken(ctx, models.Token{TokenID: "1", ContractAddress: "0xabc", OwnerAddress: "0x2", BlockNumber: 12}))
	second, found, err := s.GetToken(ctx, "0xABC", "1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "0x1", second.MintedBy)
	assert.Equal(t, "0x2", second.OwnerAddress)

	owned, err := s.GetTokensByOwner(ctx, "0x2")
	require.NoError(t, err)
	assert.Len(t, owned, 1)
	owned, err = s.GetTokensByOwner(ctx, "0x1")
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestMemoryStoreCursor(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_, found, err := s.GetCursor(ctx, "mip")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.SaveCursor(ctx, "mip", 42))
	b, found, err := s.GetCursor(ctx, "mip")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, uint64(42), b)
}

func TestAttributesJSON(t *testing.T) {
	var a attributesJSON
	v, err := a.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)

	require.NoError(t, a.Scan([]byte(`[{"trait_type":"Cor","value":"Azul"}]`)))
	require.Len(t, a, 1)
	assert.Equal(t, "Azul", a[0].Value)

	require.NoError(t, a.Scan("[]"))
	assert.Nil(t, a)
	assert.Error(t, a.Scan(42))
}

func TestRowRoundTripKeepsNilCreator(t *testing.T) {
	in := models.AssetIP{Slug: "s", Title: "T"}
	out := rowFromModel(models.CollectionTimeline, 3, in).toModel()
	assert.Nil(t, out.Creator)

	in.Creator = &models.Creator{Name: "Ana", Username: "ana", Verified: true}
	out = rowFromModel(models.CollectionTimeline, 3, in).toModel()
	require.NotNil(t, out.Creator)
	assert.Equal(t, *in.Creator, *out.Creator)
}

type countingStore struct {
	AssetStore
	lists, gets int
	fail        bool
}

func (c *countingStore) ListAssets(ctx context.Context, col models.Collection) ([]models.AssetIP, error) {
	c.lists++
	if c.fail {
		return nil, errors.New("indisponível")
	}
	return c.AssetStore.ListAssets(ctx, col)
}

func (c *countingStore) GetAssetBySlug(ctx context.Context, col models.Collection, slug string) (models.AssetIP, bool, error) {
	c.gets++
	return c.AssetStore.GetAssetBySlug(ctx, col, slug)
}

func TestCachedAssetStore(t *testing.T) {
	ctx := context.Background()
	mem, err := NewMemoryStoreFromFixtures()
	require.NoError(t, err)
	src := &countingStore{AssetStore: mem}

	cached, err := NewCachedAssetStore(src, time.Minute, logger.NewNop())
	require.NoError(t, err)
	defer cached.Close()

	for i := 0; i < 3; i++ {
		a, found, err := cached.GetAssetBySlug(ctx, models.CollectionPortfolio, "my-artwork")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "my-artwork", a.Slug)
	}
	assert.Equal(t, 1, src.gets)

	for i := 0; i < 2; i++ {
		_, found, err := cached.GetAssetBySlug(ctx, models.CollectionPortfolio, "inexistente")
		require.NoError(t, err)
		assert.False(t, found)
	}
	assert.Equal(t, 3, src.gets)

	l1, err := cached.ListAssets(ctx, models.CollectionTimeline)
	require.NoError(t, err)
	l2, err := cached.ListAssets(ctx, models.CollectionTimeline)
	require.NoError(t, err)
	assert.Equal(t, l1, l2)
	assert.Equal(t, 1, src.lists)

	require.NoError(t, cached.Invalidate())
	src.fail = true
	_, err = cached.ListAssets(ctx, models.CollectionTimeline)
	assert.Error(t, err)
}
