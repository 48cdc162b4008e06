package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/erpworks/tablescout/internal/domain"
)

// MemoryStore serves catalog queries from a fixed record list. It backs
// the memory database driver (local development, tests) where the catalog
// is seeded from a YAML file instead of Redis.
type MemoryStore struct {
	records []domain.CatalogRecord
}

// NewMemory creates a catalog store over the given records.
func NewMemory(records []domain.CatalogRecord) *MemoryStore {
	return &MemoryStore{records: records}
}

// seedRecord is the YAML shape of one seeded catalog record.
type seedRecord struct {
	ID                string `yaml:"id"`
	Name              string `yaml:"name"`
	Description       string `yaml:"description"`
	BusinessPurpose   string `yaml:"business_purpose"`
	Module            string `yaml:"module"`
	MigrationClass    string `yaml:"migration_class"`
	MigrationPriority int    `yaml:"migration_priority"`
}

// NewMemoryFromFile loads a catalog store from a YAML seed file.
func NewMemoryFromFile(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read catalog seed %s: %w", path, err)
	}

	var seeds []seedRecord
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}

	records := make([]domain.CatalogRecord, len(seeds))
	for i, s := range seeds {
		records[i] = domain.CatalogRecord{
			ID:                s.ID,
			Name:              s.Name,
			Description:       s.Description,
			BusinessPurpose:   s.BusinessPurpose,
			Module:            s.Module,
			MigrationClass:    domain.ParseMigrationClass(s.MigrationClass),
			MigrationPriority: s.MigrationPriority,
		}
	}
	return NewMemory(records), nil
}

// Query evaluates a filter against the record list.
func (s *MemoryStore) Query(ctx context.Context, f domain.CatalogFilter) ([]domain.CatalogRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	return domain.ApplyFilter(s.records, f), nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
