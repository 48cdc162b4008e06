// Package search orchestrates the search pipeline: classify, cache lookup,
// keyword extraction, concurrent strategy fan-out, first-wins merge and
// scoring, explanation, response assembly, and fire-and-forget logging.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erpworks/tablescout/internal/cache"
	"github.com/erpworks/tablescout/internal/domain"
	"github.com/erpworks/tablescout/internal/metrics"
)

const (
	defaultLimit        = 10
	defaultStoreTimeout = 5 * time.Second
	defaultLogTimeout   = 3 * time.Second
)

// Request is the search request contract.
type Request struct {
	Query  string `json:"query"`
	UserID string `json:"userId,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// Response is the search response envelope.
type Response struct {
	Success          bool                  `json:"success"`
	Results          []domain.MergedRecord `json:"results"`
	AIExplanation    string                `json:"aiExplanation"`
	ProcessingTimeMs int64                 `json:"processingTimeMs"`
	Context          string                `json:"context"`
	MigrationAlert   string                `json:"migrationAlert,omitempty"`
	Error            string                `json:"error,omitempty"`
}

// Service runs the search pipeline. The result cache is the only state
// shared across concurrent requests.
type Service struct {
	catalog   CatalogStore
	extractor Extractor
	explainer Explainer
	cache     *cache.ResultCache
	sink      LogSink
	logger    *zap.Logger

	limit        int
	storeTimeout time.Duration
	logTimeout   time.Duration
	now          func() time.Time
}

// New creates a search service.
func New(
	catalog CatalogStore,
	extractor Extractor,
	explainer Explainer,
	resultCache *cache.ResultCache,
	sink LogSink,
	logger *zap.Logger,
) *Service {
	return &Service{
		catalog:      catalog,
		extractor:    extractor,
		explainer:    explainer,
		cache:        resultCache,
		sink:         sink,
		logger:       logger,
		limit:        defaultLimit,
		storeTimeout: defaultStoreTimeout,
		logTimeout:   defaultLogTimeout,
		now:          time.Now,
	}
}

// WithLimits overrides the default result limit and the per-call catalog
// timeout. Zero values keep the defaults.
func (s *Service) WithLimits(limit int, storeTimeout time.Duration) *Service {
	if limit > 0 {
		s.limit = limit
	}
	if storeTimeout > 0 {
		s.storeTimeout = storeTimeout
	}
	return s
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Search executes one search request. The returned error is non-nil only
// for validation failures (domain.ErrEmptyQuery); dependency degradation
// is absorbed by the pipeline and never surfaces here.
func (s *Service) Search(ctx context.Context, req Request) (Response, error) {
	start := s.now()

	query := strings.TrimSpace(req.Query)
	if query == "" {
		metrics.SearchesTotal.WithLabelValues("error", "invalid").Inc()
		return Response{
			Success:          false,
			Error:            "Search query is required",
			Results:          []domain.MergedRecord{},
			ProcessingTimeMs: s.sinceMs(start),
			Context:          "error",
		}, domain.ErrEmptyQuery
	}

	// Classification runs on every request, cache hits included: alert
	// text depends on the current query even when results are cached.
	qc := domain.Classify(query)

	limit := req.Limit
	if limit <= 0 {
		limit = s.limit
	}

	key := cache.Normalize(req.Query)
	if results, ok := s.cache.Get(key); ok {
		metrics.CacheTotal.WithLabelValues("hit").Inc()
		if len(results) > limit {
			results = results[:limit]
		}
		resp := s.assemble(qc, results, s.explainer.Cached(query, len(results)), start)
		s.logAsync(req.UserID, query, len(results), resp.ProcessingTimeMs, qc)
		metrics.SearchesTotal.WithLabelValues(string(qc.Type), "ok").Inc()
		return resp, nil
	}
	metrics.CacheTotal.WithLabelValues("miss").Inc()

	keywords := s.extractor.Extract(ctx, query)
	strategies := BuildStrategies(keywords)
	strategyResults := s.runStrategies(ctx, strategies)
	merged := MergeAndScore(strategyResults, qc, limit, s.now())

	s.cache.Put(key, merged)

	explanation := s.explainer.Explain(ctx, query, qc, merged)

	resp := s.assemble(qc, merged, explanation, start)
	s.logAsync(req.UserID, query, len(merged), resp.ProcessingTimeMs, qc)
	metrics.SearchesTotal.WithLabelValues(string(qc.Type), "ok").Inc()
	return resp, nil
}

// assemble shapes the final response, including the deadline alert for
// migration-typed or high-urgency queries.
func (s *Service) assemble(qc domain.QueryContext, results []domain.MergedRecord, explanation string, start time.Time) Response {
	if results == nil {
		results = []domain.MergedRecord{}
	}

	resp := Response{
		Success:          true,
		Results:          results,
		AIExplanation:    explanation,
		ProcessingTimeMs: s.sinceMs(start),
		Context:          string(qc.Type),
	}

	if qc.Type == domain.ContextMigration || qc.Urgency == domain.UrgencyHigh {
		resp.MigrationAlert = fmt.Sprintf(
			"SAP ECC end of life: %d years remaining until mandatory S/4HANA migration.",
			domain.YearsToDeadline(s.now()))
	}

	return resp
}

// logAsync fires the search event at the log sink without blocking the
// response. Failures are logged and discarded.
func (s *Service) logAsync(userID, query string, resultCount int, responseMs int64, qc domain.QueryContext) {
	event := domain.SearchEvent{
		ID:                    uuid.NewString(),
		UserID:                userID,
		Query:                 query,
		ResultCount:           resultCount,
		ResponseTimeMs:        responseMs,
		Context:               qc.Type,
		ConversionOpportunity: qc.Type == domain.ContextMigration,
		Timestamp:             s.now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.logTimeout)
		defer cancel()
		if err := s.sink.Record(ctx, event); err != nil {
			s.logger.Warn("search log failed", zap.Error(err))
		}
	}()
}

func (s *Service) sinceMs(start time.Time) int64 {
	return s.now().Sub(start).Milliseconds()
}
