package llm

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is the static list of supported providers and their models.
type Catalog struct {
	providers []models.ProviderInfo
	byID      map[models.Provider]models.ProviderInfo
}

// LoadCatalog parses the embedded provider catalog.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
}

// ParseCatalog parses a catalog document. Every supported provider must be
// listed exactly once with a default model and base URL.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc struct {
		Providers []models.ProviderInfo `yaml:"providers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse provider catalog: %w", err)
	}

	byID := make(map[models.Provider]models.ProviderInfo, len(doc.Providers))
	for _, p := range doc.Providers {
		if !p.ID.IsValid() {
			return nil, fmt.Errorf("provider catalog: unknown provider %q", p.ID)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("provider catalog: duplicate provider %q", p.ID)
		}
		if p.DefaultModel == "" || p.BaseURL == "" {
			return nil, fmt.Errorf("provider catalog: %s needs default_model and base_url", p.ID)
		}
		byID[p.ID] = p
	}
	for _, p := range models.AllProviders {
		if _, ok := byID[p]; !ok {
			return nil, fmt.Errorf("provider catalog: missing provider %q", p)
		}
	}

	return &Catalog{providers: doc.Providers, byID: byID}, nil
}

// MustLoadCatalog is LoadCatalog for program start; the embedded document is
// covered by tests.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// Providers returns a copy of the catalog entries in declaration order.
func (c *Catalog) Providers() []models.ProviderInfo {
	out := make([]models.ProviderInfo, len(c.providers))
	for i, p := range c.providers {
		p.Models = slices.Clone(p.Models)
		out[i] = p
	}
	return out
}

// Lookup returns the entry for a provider.
func (c *Catalog) Lookup(p models.Provider) (models.ProviderInfo, bool) {
	info, ok := c.byID[p]
	return info, ok
}

// DefaultModel returns the model used for connection probes.
func (c *Catalog) DefaultModel(p models.Provider) string {
	info, _ := c.Lookup(p)
	return info.DefaultModel
}

// BaseURL returns the provider's public API base URL.
func (c *Catalog) BaseURL(p models.Provider) string {
	info, _ := c.Lookup(p)
	return info.BaseURL
}
