// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package offsets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/footprint/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the static offset data used when the marketplace is unavailable
type Catalog struct {
	PricePerTon     float64                `yaml:"price_per_ton"`
	Currency        string                 `yaml:"currency"`
	Projects        []models.OffsetProject `yaml:"projects"`
	Recommendations []string               `yaml:"recommendations"`
}

// DefaultCatalog returns the embedded catalog
func DefaultCatalog() Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded offset catalog is invalid: %v", err))
	}
	return c
}

// LoadCatalog reads a catalog from a YAML file. An empty path yields the embedded catalog.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read offset catalog: %w", err)
	}

	c, err := ParseCatalog(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes and validates a YAML catalog
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse offset catalog: %w", err)
	}

	if c.PricePerTon <= 0 {
		return Catalog{}, errors.New("offset catalog: price_per_ton must be greater than 0")
	}
	if c.Currency == "" {
		c.Currency = "USD"
	}
	for i, p := range c.Projects {
		if p.ID == "" || p.Name == "" {
			return Catalog{}, fmt.Errorf("offset catalog: project %d needs an id and a name", i)
		}
		if p.SDGGoals == nil {
			c.Projects[i].SDGGoals = []string{}
		}
	}
	if c.Projects == nil {
		c.Projects = []models.OffsetProject{}
	}

	return c, nil
}
