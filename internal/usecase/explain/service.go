// Package explain turns a result list into a short natural-language
// explanation: an AI primary path with a templated fallback.
package explain

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/erpworks/tablescout/internal/domain"
	"github.com/erpworks/tablescout/internal/metrics"
)

// Service generates search result explanations. Explain never fails: any
// assistant error or timeout degrades to the deterministic template.
type Service struct {
	assistant Assistant
	logger    *zap.Logger
}

// New creates an explanation service. assistant can be nil, in which case
// only the templated path runs.
func New(assistant Assistant, logger *zap.Logger) *Service {
	return &Service{assistant: assistant, logger: logger}
}

// Explain produces an explanation for the result list under the query's
// context.
func (s *Service) Explain(ctx context.Context, query string, qc domain.QueryContext, records []domain.MergedRecord) string {
	if len(records) == 0 {
		return "No matching SAP tables found for your query."
	}

	if s.assistant != nil {
		text, err := s.assistant.Explain(ctx, BuildPrompt(query, qc, records), query)
		if err == nil && text != "" {
			if n := countDeprecated(records); n > 0 {
				return fmt.Sprintf("MIGRATION ALERT: %d deprecated table(s) found. %s", n, text)
			}
			return text
		}
		if err != nil {
			s.logger.Warn("assistant explanation failed", zap.Error(err))
		}
		metrics.AssistantRequestsTotal.WithLabelValues("explain", "fallback").Inc()
	}

	return Fallback(query, qc, records)
}

// Cached is the fixed explanation used when results come from the cache.
// The assistant is skipped entirely on a hit.
func (s *Service) Cached(query string, resultCount int) string {
	return fmt.Sprintf("Found %d relevant SAP tables for %q (cached results).", resultCount, query)
}

// Fallback renders the deterministic explanation: a count sentence, a
// deadline clause under migration context, and a deprecation alert prefix
// when deprecated tables are present.
func Fallback(query string, qc domain.QueryContext, records []domain.MergedRecord) string {
	text := fmt.Sprintf("Found %d relevant SAP tables for %q.", len(records), query)
	if qc.Type == domain.ContextMigration {
		text += fmt.Sprintf(" Review migration status for %d compliance.", domain.DeadlineYear)
	}
	if n := countDeprecated(records); n > 0 {
		text = fmt.Sprintf("MIGRATION ALERT: %d deprecated table(s) found. %s", n, text)
	}
	return text
}

func countDeprecated(records []domain.MergedRecord) int {
	n := 0
	for _, r := range records {
		if r.MigrationStatus == domain.ClassDeprecated {
			n++
		}
	}
	return n
}
