// Package ranker provides candidate selection strategies for the ranking
// phase.
package ranker

import (
	"context"
	"sort"

	"github.com/webprobe-dev/webprobe/internal/core"
)

// PriorityRanker orders candidates by priority weight plus complexity and
// selects the top N. Sorting is stable, so generation order breaks ties.
type PriorityRanker struct{}

// NewPriorityRanker creates a priority-based ranker.
func NewPriorityRanker() *PriorityRanker {
	return &PriorityRanker{}
}

// Name implements core.Ranker.
func (r *PriorityRanker) Name() string { return "priority" }

// Rank implements core.Ranker.
func (r *PriorityRanker) Rank(ctx context.Context, candidates []core.TestCaseDescriptor, selectCount int) (*core.RankingResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, core.ErrRanking(core.CodeRankerFailed, "ranking canceled").WithCause(err)
	}
	if selectCount < 0 {
		return nil, core.ErrRanking(core.CodeInvalidCount, "select count cannot be negative")
	}

	ordered := make([]core.TestCaseDescriptor, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return score(ordered[i]) > score(ordered[j])
	})

	if selectCount > len(ordered) {
		selectCount = len(ordered)
	}
	return &core.RankingResult{
		Selected:        ordered[:selectCount],
		Rejected:        ordered[selectCount:],
		TotalCandidates: len(candidates),
	}, nil
}

func score(tc core.TestCaseDescriptor) float64 {
	weight := 1.0
	switch tc.Priority {
	case core.PriorityHigh:
		weight = 3.0
	case core.PriorityMedium:
		weight = 2.0
	}
	return weight + tc.ComplexityScore
}
