package search

import (
	"strings"

	"github.com/erpworks/tablescout/internal/domain"
)

// Per-strategy row caps.
const (
	capMigration = 8
	capNameMatch = 5
	capBroadText = 8
	capModule    = 5
)

// Strategy is one independent, bounded catalog query. Its position in the
// built list is its priority index: index 0 wins ties in the merger.
type Strategy struct {
	Name   string
	Filter domain.CatalogFilter
}

// BuildStrategies expands extracted keywords into the fixed ordered
// strategy list:
//
//  0. migration-priority match (only when a keyword is a migration term)
//  1. one name-match per keyword longer than three characters
//  2. broad text match on the first keyword (always)
//  3. module match (only when a keyword names a known module code)
//
// The order is significant and never mutated at runtime.
func BuildStrategies(keywords []string) []Strategy {
	var strategies []Strategy

	var migration []string
	for _, k := range keywords {
		if domain.IsMigrationTerm(strings.ToLower(k)) {
			migration = append(migration, strings.ToLower(k))
		}
	}
	if len(migration) > 0 {
		strategies = append(strategies, Strategy{
			Name: "migration_priority",
			Filter: domain.CatalogFilter{
				ClassContainsAny: migration,
				OrderByPriority:  true,
				Limit:            capMigration,
			},
		})
	}

	for _, k := range keywords {
		if len(k) > 3 {
			strategies = append(strategies, Strategy{
				Name:   "name_match:" + k,
				Filter: domain.CatalogFilter{NameContains: k, Limit: capNameMatch},
			})
		}
	}

	if len(keywords) > 0 {
		strategies = append(strategies, Strategy{
			Name:   "broad_text",
			Filter: domain.CatalogFilter{TextContains: keywords[0], Limit: capBroadText},
		})
	}

	var modules []string
	for _, k := range keywords {
		if domain.IsModule(k) {
			modules = append(modules, strings.ToUpper(k))
		}
	}
	if len(modules) > 0 {
		strategies = append(strategies, Strategy{
			Name: "module",
			Filter: domain.CatalogFilter{
				Modules:         modules,
				OrderByPriority: true,
				Limit:           capModule,
			},
		})
	}

	return strategies
}
