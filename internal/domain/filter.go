package domain

import (
	"sort"
	"strings"
)

// CatalogFilter is a declarative, read-only predicate over catalog records:
// case-insensitive substring tests, module set membership, an optional
// ordering key, and a row cap. Strategies are expressed as CatalogFilter
// values so the executor stays generic.
type CatalogFilter struct {
	// NameContains matches records whose name contains the substring.
	NameContains string
	// TextContains matches records whose name, description, or business
	// purpose contains the substring.
	TextContains string
	// ClassContainsAny matches records whose migration classification
	// contains any of the substrings.
	ClassContainsAny []string
	// Modules matches records whose module code is in the set.
	Modules []string
	// OrderByPriority orders matches by migration priority, descending.
	OrderByPriority bool
	// Limit caps the number of returned rows. Zero means no cap.
	Limit int
}

// Matches reports whether the record passes every predicate set on the
// filter. An empty filter matches everything.
func (f CatalogFilter) Matches(r CatalogRecord) bool {
	if f.NameContains != "" &&
		!containsFold(r.Name, f.NameContains) {
		return false
	}
	if f.TextContains != "" &&
		!containsFold(r.Name, f.TextContains) &&
		!containsFold(r.Description, f.TextContains) &&
		!containsFold(r.BusinessPurpose, f.TextContains) {
		return false
	}
	if len(f.ClassContainsAny) > 0 {
		matched := false
		for _, c := range f.ClassContainsAny {
			if containsFold(string(r.MigrationClass), c) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if len(f.Modules) > 0 {
		matched := false
		for _, m := range f.Modules {
			if strings.EqualFold(r.Module, m) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// ApplyFilter evaluates the filter against a record list: predicate, then
// ordering, then cap. The input slice is not modified.
func ApplyFilter(records []CatalogRecord, f CatalogFilter) []CatalogRecord {
	var out []CatalogRecord
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}

	if f.OrderByPriority {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].MigrationPriority > out[j].MigrationPriority
		})
	}

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
