package search

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/erpworks/tablescout/internal/domain"
	logpkg "github.com/erpworks/tablescout/internal/logger"
	"github.com/erpworks/tablescout/internal/metrics"
)

// StrategyResult carries one strategy's records together with its fixed
// priority index.
type StrategyResult struct {
	Index   int
	Records []domain.CatalogRecord
}

// runStrategies dispatches every strategy concurrently against the catalog
// and joins with a full barrier. A single strategy's failure degrades it to
// an empty result list; siblings are unaffected.
func (s *Service) runStrategies(ctx context.Context, strategies []Strategy) []StrategyResult {
	logger := logpkg.FromContext(ctx)
	results := make([]StrategyResult, len(strategies))

	start := time.Now()
	var wg sync.WaitGroup
	for i, strat := range strategies {
		wg.Add(1)
		go func(i int, strat Strategy) {
			defer wg.Done()

			qctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
			defer cancel()

			records, err := s.catalog.Query(qctx, strat.Filter)
			if err != nil {
				logger.Warn("strategy degraded to empty result",
					zap.String("strategy", strat.Name), zap.Error(err))
				metrics.StrategyErrorsTotal.WithLabelValues(strat.Name).Inc()
				records = nil
			}
			results[i] = StrategyResult{Index: i, Records: records}
		}(i, strat)
	}
	wg.Wait()
	metrics.StrategyRoundDuration.Observe(time.Since(start).Seconds())

	return results
}
