package analysis

import (
	"sort"

	"github.com/webprobe-dev/webprobe/internal/core"
)

// AnalyzeErrors collects failure patterns from logged errors and failed
// records, tallies error types and compares the pattern rate against the
// threshold.
func AnalyzeErrors(records []core.TestExecutionRecord, limits Thresholds) core.ErrorAnalysis {
	out := core.ErrorAnalysis{
		ErrorSummary: make(map[string]int),
	}

	for _, rec := range records {
		for _, entry := range rec.Errors {
			out.ErrorSummary[entry.Type]++
			out.FailurePatterns = append(out.FailurePatterns, core.FailurePattern{
				TestID:    rec.TestID,
				ErrorType: entry.Type,
				Message:   entry.Message,
				Timestamp: entry.Timestamp,
			})
		}

		// A failed record contributes a synthesized test_failure pattern
		// even when nothing was logged against it.
		if rec.Status == core.TestStatusFailed {
			reason := rec.FailureReason
			if reason == "" {
				reason = "Unknown failure"
			}
			out.FailurePatterns = append(out.FailurePatterns, core.FailurePattern{
				TestID:    rec.TestID,
				ErrorType: core.ErrorTypeTestFailure,
				Message:   reason,
				Timestamp: rec.EndTime,
			})
		}
	}

	out.CommonErrors = commonErrors(out.FailurePatterns)

	rate := 0.0
	if len(records) > 0 {
		rate = float64(len(out.FailurePatterns)) / float64(len(records))
	}
	out.RateAnalysis = core.ErrorRateAnalysis{
		WithinThreshold: rate <= limits.MaxErrorRate,
		CurrentRate:     rate,
		Threshold:       limits.MaxErrorRate,
	}
	return out
}

// commonErrors keeps error types appearing in more than one pattern, most
// frequent first.
func commonErrors(patterns []core.FailurePattern) []core.CommonError {
	counts := make(map[string]int)
	for _, p := range patterns {
		counts[p.ErrorType]++
	}

	var common []core.CommonError
	for errType, count := range counts {
		if count <= 1 {
			continue
		}
		common = append(common, core.CommonError{
			ErrorType: errType,
			Count:     count,
			Frequency: float64(count) / float64(len(patterns)),
		})
	}
	sort.Slice(common, func(i, j int) bool {
		if common[i].Count != common[j].Count {
			return common[i].Count > common[j].Count
		}
		return common[i].ErrorType < common[j].ErrorType
	})
	return common
}
