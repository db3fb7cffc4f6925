package analysis

import "github.com/webprobe-dev/webprobe/internal/core"

// Aggregate computes batch-level statistics over execution records. It is a
// pure function and never fails: an empty batch yields all-zero statistics,
// and records with a zero execution time are excluded from the timing
// distribution.
func Aggregate(records []core.TestExecutionRecord) core.Summary {
	total := len(records)
	if total == 0 {
		return core.Summary{}
	}

	summary := core.Summary{TotalTests: total}
	var times []float64
	for _, rec := range records {
		switch rec.Status {
		case core.TestStatusPassed:
			summary.Passed++
		case core.TestStatusFailed:
			summary.Failed++
		case core.TestStatusError:
			summary.Errors++
		}
		if rec.ExecutionTime > 0 {
			times = append(times, rec.ExecutionTime)
		}
	}

	summary.SuccessRate = float64(summary.Passed) / float64(total)
	summary.FailureRate = float64(summary.Failed) / float64(total)
	summary.ErrorRate = float64(summary.Errors) / float64(total)
	summary.ExecutionTimes = timeStats(times)
	return summary
}

func timeStats(times []float64) core.TimeStats {
	if len(times) == 0 {
		return core.TimeStats{}
	}
	stats := core.TimeStats{Min: times[0], Max: times[0]}
	for _, t := range times {
		if t < stats.Min {
			stats.Min = t
		}
		if t > stats.Max {
			stats.Max = t
		}
		stats.Total += t
	}
	stats.Average = stats.Total / float64(len(times))
	return stats
}
