package analysis

import "github.com/webprobe-dev/webprobe/internal/core"

// AnalyzeReliability computes per-category pass rates, flags flaky tests and
// assesses repeatability across categories.
func AnalyzeReliability(records []core.TestExecutionRecord) core.ReliabilityAnalysis {
	out := core.ReliabilityAnalysis{
		CategoryReliability: make(map[core.Category]float64),
	}

	totals := make(map[core.Category]int)
	passes := make(map[core.Category]int)
	for _, rec := range records {
		totals[rec.Category]++
		if rec.Status == core.TestStatusPassed {
			passes[rec.Category]++
		}

		// A test that passed while logging errors is suspect.
		if rec.Status == core.TestStatusPassed && len(rec.Errors) > 0 {
			out.FlakyTests = append(out.FlakyTests, rec.TestID)
		}
	}

	var sum float64
	for category, total := range totals {
		score := float64(passes[category]) / float64(total)
		out.CategoryReliability[category] = score
		sum += score
		if score >= 0.9 {
			out.Repeatability.ConsistentResults++
		}
		if score < 0.7 {
			out.Repeatability.InconsistentResults++
		}
	}
	if len(totals) > 0 {
		out.OverallReliability = sum / float64(len(totals))
	}
	return out
}
