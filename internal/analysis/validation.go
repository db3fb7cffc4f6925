package analysis

import (
	"fmt"
	"sort"

	"github.com/webprobe-dev/webprobe/internal/core"
)

const validationCheckCount = 3

// Validate runs the three cross-validation checks over a batch and scores
// the result as the fraction of checks that passed.
func Validate(records []core.TestExecutionRecord) core.ValidationResults {
	checks := []core.ValidationCheck{
		checkTimeConsistency(records),
		checkErrorPatterns(records),
		checkArtifactCompleteness(records),
	}

	passes := 0
	overall := core.CheckStatusPass
	for _, check := range checks {
		if check.Status == core.CheckStatusPass {
			passes++
		} else {
			overall = core.CheckStatusWarning
		}
	}

	return core.ValidationResults{
		Checks:               checks,
		OverallStatus:        overall,
		CrossValidationScore: float64(passes) / validationCheckCount,
	}
}

// checkTimeConsistency flags records whose execution time deviates from the
// batch mean by more than twice the mean. The check fails when outliers
// exceed 10% of the batch; an empty batch passes trivially.
func checkTimeConsistency(records []core.TestExecutionRecord) core.ValidationCheck {
	check := core.ValidationCheck{Name: "execution_time_consistency"}
	if len(records) == 0 {
		check.Status = core.CheckStatusPass
		check.Details = "no execution times to validate"
		return check
	}

	var total float64
	for _, rec := range records {
		total += rec.ExecutionTime
	}
	mean := total / float64(len(records))

	for _, rec := range records {
		deviation := rec.ExecutionTime - mean
		if deviation < 0 {
			deviation = -deviation
		}
		if deviation > 2*mean {
			check.Outliers = append(check.Outliers, core.TimeOutlier{
				TestID: rec.TestID,
				Time:   rec.ExecutionTime,
			})
		}
	}

	if float64(len(check.Outliers)) <= 0.1*float64(len(records)) {
		check.Status = core.CheckStatusPass
	} else {
		check.Status = core.CheckStatusFail
	}
	check.Details = fmt.Sprintf("%d outliers out of %d tests (mean %.2fs)", len(check.Outliers), len(records), mean)
	return check
}

// checkErrorPatterns warns when the batch shows more than three distinct
// logged error types.
func checkErrorPatterns(records []core.TestExecutionRecord) core.ValidationCheck {
	check := core.ValidationCheck{
		Name:          "error_pattern_consistency",
		ErrorPatterns: make(map[string]int),
	}
	for _, rec := range records {
		for _, entry := range rec.Errors {
			check.ErrorPatterns[entry.Type]++
		}
	}

	if len(check.ErrorPatterns) <= 3 {
		check.Status = core.CheckStatusPass
	} else {
		check.Status = core.CheckStatusWarning
	}
	check.Details = fmt.Sprintf("%d distinct error types", len(check.ErrorPatterns))
	return check
}

// checkArtifactCompleteness warns when any record captured neither a
// screenshot nor an artifact reference.
func checkArtifactCompleteness(records []core.TestExecutionRecord) core.ValidationCheck {
	check := core.ValidationCheck{Name: "artifact_completeness"}
	for _, rec := range records {
		if len(rec.Screenshots) == 0 && len(rec.Artifacts) == 0 {
			check.IncompleteTests = append(check.IncompleteTests, rec.TestID)
		}
	}
	sort.Strings(check.IncompleteTests)

	if len(check.IncompleteTests) == 0 {
		check.Status = core.CheckStatusPass
		check.Details = "all tests captured artifacts"
	} else {
		check.Status = core.CheckStatusWarning
		check.Details = fmt.Sprintf("%d tests captured no artifacts", len(check.IncompleteTests))
	}
	return check
}
