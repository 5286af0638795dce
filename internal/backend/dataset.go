package backend

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"locator/internal/domain"
)

// Dataset is the on-disk list of locations served by the memory backend
// and pushed to Meilisearch by locator-seed
type Dataset struct {
	Locations []domain.Result `yaml:"locations"`
}

// LoadDataset reads a YAML dataset file
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return ParseDataset(data)
}

// ParseDataset decodes a YAML dataset and validates ids
func ParseDataset(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	seen := make(map[string]bool, len(ds.Locations))
	for i, loc := range ds.Locations {
		if loc.ID == "" {
			return nil, fmt.Errorf("dataset location %d has no id", i)
		}
		if seen[loc.ID] {
			return nil, fmt.Errorf("dataset has duplicate id %q", loc.ID)
		}
		seen[loc.ID] = true
	}
	return &ds, nil
}
