package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/erpworks/tablescout/internal/domain"
)

const seedYAML = `
- id: bkpf
  name: BKPF
  description: Accounting document header
  business_purpose: Core FI posting header
  module: FI
  migration_class: BOTH
  migration_priority: 70

- id: bseg
  name: BSEG
  description: Accounting document segment
  module: FI
  migration_class: DEPRECATED
  migration_priority: 95
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewMemoryFromFile(t *testing.T) {
	store, err := NewMemoryFromFile(writeSeed(t, seedYAML))
	if err != nil {
		t.Fatal(err)
	}

	records, err := store.Query(context.Background(), domain.CatalogFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 seeded records, got %d", len(records))
	}
	if records[0].Name != "BKPF" || records[0].MigrationClass != domain.ClassBoth {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[1].MigrationClass != domain.ClassDeprecated || records[1].MigrationPriority != 95 {
		t.Errorf("unexpected second record: %+v", records[1])
	}
}

func TestNewMemoryFromFile_Missing(t *testing.T) {
	if _, err := NewMemoryFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing seed file")
	}
}

func TestNewMemoryFromFile_Malformed(t *testing.T) {
	if _, err := NewMemoryFromFile(writeSeed(t, "not: [valid")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestMemoryStore_QueryFilter(t *testing.T) {
	store := NewMemory([]domain.CatalogRecord{
		{ID: "a", Name: "MARA", Module: "MM", MigrationClass: domain.ClassBoth},
		{ID: "b", Name: "BKPF", Module: "FI", MigrationClass: domain.ClassBoth},
	})

	records, err := store.Query(context.Background(), domain.CatalogFilter{Modules: []string{"FI"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != "b" {
		t.Fatalf("unexpected filter result: %+v", records)
	}
}

func TestMemoryStore_QueryCancelled(t *testing.T) {
	store := NewMemory(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Query(ctx, domain.CatalogFilter{})
	if !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestMemoryStore_Ping(t *testing.T) {
	if err := NewMemory(nil).Ping(context.Background()); err != nil {
		t.Fatalf("memory ping should never fail: %v", err)
	}
}
