package search

import (
	"context"

	"github.com/erpworks/tablescout/internal/domain"
)

// CatalogStore defines the read-only storage contract for strategies.
type CatalogStore interface {
	Query(ctx context.Context, f domain.CatalogFilter) ([]domain.CatalogRecord, error)
}

// Extractor turns a query into search keywords. It never fails.
type Extractor interface {
	Extract(ctx context.Context, query string) []string
}

// Explainer produces result explanations. It never fails.
type Explainer interface {
	Explain(ctx context.Context, query string, qc domain.QueryContext, records []domain.MergedRecord) string
	Cached(query string, resultCount int) string
}

// LogSink records search events. Callers treat it as fire-and-forget.
type LogSink interface {
	Record(ctx context.Context, event domain.SearchEvent) error
}
