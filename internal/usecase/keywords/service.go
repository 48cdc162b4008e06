// Package keywords extracts 2-5 search keywords from free-text queries:
// an AI primary path with a deterministic fallback of identical shape.
package keywords

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/erpworks/tablescout/internal/domain"
	"github.com/erpworks/tablescout/internal/metrics"
)

const maxKeywords = 5

// Service extracts search keywords. Extract never fails: any assistant
// error, timeout, or unparseable response degrades to the deterministic
// extractor.
type Service struct {
	assistant Assistant
	logger    *zap.Logger
}

// New creates a keyword extraction service. assistant can be nil, in which
// case only the deterministic path runs.
func New(assistant Assistant, logger *zap.Logger) *Service {
	return &Service{assistant: assistant, logger: logger}
}

// Extract returns at most maxKeywords non-empty keywords for the query.
// The result is never empty for a non-empty query.
func (s *Service) Extract(ctx context.Context, query string) []string {
	if s.assistant != nil {
		if kws, ok := s.fromAssistant(ctx, query); ok {
			return kws
		}
		metrics.AssistantRequestsTotal.WithLabelValues("extract_keywords", "fallback").Inc()
	}
	return Fallback(query)
}

// fromAssistant runs the primary path: one assistant call, response parsed
// as a JSON array of strings.
func (s *Service) fromAssistant(ctx context.Context, query string) ([]string, bool) {
	content, err := s.assistant.ExtractKeywords(ctx, query)
	if err != nil {
		s.logger.Warn("assistant keyword extraction failed", zap.Error(err))
		return nil, false
	}

	var parsed []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &parsed); err != nil {
		s.logger.Warn("assistant returned non-JSON keywords", zap.Error(err))
		return nil, false
	}

	kws := make([]string, 0, maxKeywords)
	for _, k := range parsed {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		kws = append(kws, k)
		if len(kws) == maxKeywords {
			break
		}
	}
	if len(kws) == 0 {
		return nil, false
	}
	return kws, true
}

// Fallback is the deterministic extractor: migration terms found in the
// query come first, then whitespace tokens longer than two characters,
// deduplicated and truncated to maxKeywords. A non-empty query always
// yields at least one keyword.
func Fallback(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	seen := make(map[string]bool)
	var kws []string
	add := func(k string) {
		if !seen[k] && len(kws) < maxKeywords {
			seen[k] = true
			kws = append(kws, k)
		}
	}

	for _, term := range domain.MigrationTerms {
		if strings.Contains(q, term) {
			add(term)
		}
	}
	for _, token := range strings.Fields(q) {
		if len(token) > 2 {
			add(token)
		}
	}

	if len(kws) == 0 {
		kws = []string{q}
	}
	return kws
}
