package analysis

import (
	"fmt"

	"github.com/webprobe-dev/webprobe/internal/core"
)

// Recommend evaluates the batch summary against the thresholds and returns
// actionable guidance. When every rule passes it returns the single
// all-clear recommendation, so the result is never empty.
func Recommend(summary core.Summary, limits Thresholds) []string {
	var recs []string

	if summary.SuccessRate < limits.MinSuccessRate {
		recs = append(recs, fmt.Sprintf("Success rate (%.1f%%) is below threshold. Review failing tests.", summary.SuccessRate*100))
	}
	if summary.ExecutionTimes.Average > limits.MaxExecutionTime {
		recs = append(recs, fmt.Sprintf("Average execution time (%.1fs) exceeds threshold. Optimize slow tests.", summary.ExecutionTimes.Average))
	}
	if summary.ErrorRate > limits.MaxErrorRate {
		recs = append(recs, fmt.Sprintf("Error rate (%.1f%%) is too high. Investigate common failure patterns.", summary.ErrorRate*100))
	}
	if summary.TotalTests < limits.MinTestCount {
		recs = append(recs, "Consider expanding test coverage with more test cases.")
	}

	if len(recs) == 0 {
		recs = append(recs, "All metrics within acceptable thresholds. Test suite performing well.")
	}
	return recs
}
