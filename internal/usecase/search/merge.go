package search

import (
	"sort"
	"time"

	"github.com/erpworks/tablescout/internal/domain"
)

// MergeAndScore folds strategy results into a ranked, deduplicated result
// list. Strategy results must be in strategy-priority order (index 0
// first): the earliest strategy to surface a record permanently fixes its
// priority score (first-wins), and later matches never overwrite it.
func MergeAndScore(results []StrategyResult, qc domain.QueryContext, limit int, now time.Time) []domain.MergedRecord {
	seen := make(map[string]bool)
	merged := make([]domain.MergedRecord, 0)

	for _, sr := range results {
		for _, rec := range sr.Records {
			if seen[rec.ID] {
				continue
			}
			seen[rec.ID] = true

			score := basePriority(sr.Index)
			// One-time migration boost at first insertion.
			switch rec.MigrationClass {
			case domain.ClassDeprecated:
				score += 25
			case domain.ClassECCOnly:
				score += 15
			}
			if score > 100 {
				score = 100
			}

			purpose := rec.BusinessPurpose
			if purpose == "" {
				purpose = rec.Description
			}

			merged = append(merged, domain.MergedRecord{
				ID:               rec.ID,
				TableName:        rec.Name,
				Description:      rec.Description,
				Module:           rec.Module,
				BusinessPurpose:  purpose,
				MigrationStatus:  rec.MigrationClass,
				MigrationUrgency: domain.MigrationUrgency(rec.MigrationClass),
				MigrationMessage: domain.MigrationMessage(rec.MigrationClass, now),
				PriorityScore:    score,
			})
		}
	}

	// Stable sort: ties keep insertion (strategy) order.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PriorityScore > merged[j].PriorityScore
	})
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}

	// Relevance reflects presentation rank, not the internal priority.
	for rank := range merged {
		rel := 95 - 5*rank
		if rel < 60 {
			rel = 60
		}
		if qc.Type == domain.ContextMigration && merged[rank].MigrationStatus == domain.ClassDeprecated {
			rel += 20
			if rel > 100 {
				rel = 100
			}
			merged[rank].UrgencyFlag = domain.DeprecatedUrgencyFlag
		}
		merged[rank].RelevanceScore = rel
	}

	return merged
}

// basePriority is the score a strategy index assigns at first insertion:
// 100 for index 0, then 90-10*index floored at zero.
func basePriority(index int) int {
	if index == 0 {
		return 100
	}
	score := 90 - 10*index
	if score < 0 {
		score = 0
	}
	return score
}
