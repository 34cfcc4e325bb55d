package storage

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/addegbenga/mip-dapp/models"
)

//go:embed fixtures/assets.yaml
var fixturesFS embed.FS

type fixtureFile struct {
	Timeline  []models.AssetIP `yaml:"timeline"`
	Portfolio []models.AssetIP `yaml:"portfolio"`
}

// LoadFixtures lê os ativos de demonstração embutidos no binário.
func LoadFixtures() (map[models.Collection][]models.AssetIP, error) {
	raw, err := fixturesFS.ReadFile("fixtures/assets.yaml")
	if err != nil {
		return nil, fmt.Errorf("falha ao ler fixtures: %w", err)
	}
	return ParseFixtures(raw)
}

// ParseFixtures interpreta um arquivo de fixtures e valida a unicidade dos slugs
// na união das coleções.
func ParseFixtures(raw []byte) (map[models.Collection][]models.AssetIP, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("falha ao interpretar fixtures: %w", err)
	}
	out := map[models.Collection][]models.AssetIP{
		models.CollectionTimeline:  f.Timeline,
		models.CollectionPortfolio: f.Portfolio,
	}
	seen := map[string]models.Collection{}
	for _, c := range models.ResolutionOrder {
		for _, a := range out[c] {
			if a.Slug == "" {
				return nil, fmt.Errorf("ativo %q em %s sem slug", a.ID, c)
			}
			if prev, dup := seen[a.Slug]; dup {
				return nil, fmt.Errorf("slug duplicado %q em %s e %s", a.Slug, prev, c)
			}
			seen[a.Slug] = c
		}
	}
	return out, nil
}
