package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/webprobe-dev/webprobe/internal/core"
)

func TestTriageTiers(t *testing.T) {
	limits := DefaultThresholds()
	now := time.Now()

	pageError := record("TC_001", core.TestStatusFailed, 5.0)
	pageError.AddError(core.ErrorTypePageError, "server returned 500", now)

	slow := record("TC_002", core.TestStatusFailed, 45.0)

	plain := record("TC_003", core.TestStatusFailed, 5.0)

	infra := record("TC_004", core.TestStatusError, 1.0)

	passed := record("TC_005", core.TestStatusPassed, 5.0)

	notes := Triage([]core.TestExecutionRecord{pageError, slow, plain, infra, passed}, limits)

	assert.Equal(t, []string{
		"TC_001: Page errors detected - investigate immediately",
		"TC_004: Test execution error - fix test infrastructure",
	}, notes.HighPriority)
	assert.Equal(t, []string{"TC_002: Performance issues - timeout or slow execution"}, notes.MediumPriority)
	assert.Equal(t, []string{"TC_003: General test failure - review test logic"}, notes.LowPriority)
}

func TestTriagePageErrorOutranksSlowness(t *testing.T) {
	rec := record("TC_001", core.TestStatusFailed, 120.0)
	rec.AddError(core.ErrorTypePageError, "crash", time.Now())

	notes := Triage([]core.TestExecutionRecord{rec}, DefaultThresholds())

	assert.Len(t, notes.HighPriority, 1)
	assert.Empty(t, notes.MediumPriority)
}

func TestTriageErroredTestAlwaysHigh(t *testing.T) {
	rec := record("TC_001", core.TestStatusError, 200.0)

	notes := Triage([]core.TestExecutionRecord{rec}, DefaultThresholds())

	assert.Len(t, notes.HighPriority, 1)
	assert.Empty(t, notes.MediumPriority)
	assert.Empty(t, notes.LowPriority)
}

func TestRecommendAllClear(t *testing.T) {
	summary := core.Summary{
		TotalTests:  10,
		Passed:      9,
		Failed:      1,
		SuccessRate: 0.9,
		FailureRate: 0.1,
		ExecutionTimes: core.TimeStats{
			Average: 6.0,
		},
	}

	recs := Recommend(summary, DefaultThresholds())

	assert.Equal(t, []string{"All metrics within acceptable thresholds. Test suite performing well."}, recs)
}

func TestRecommendEachRule(t *testing.T) {
	summary := core.Summary{
		TotalTests:  5,
		Passed:      2,
		Failed:      2,
		Errors:      1,
		SuccessRate: 0.4,
		FailureRate: 0.4,
		ErrorRate:   0.2,
		ExecutionTimes: core.TimeStats{
			Average: 42.0,
		},
	}
	summary.ErrorRate = 0.25

	recs := Recommend(summary, DefaultThresholds())

	assert.Len(t, recs, 4)
	assert.Contains(t, recs[0], "Success rate (40.0%)")
	assert.Contains(t, recs[1], "Average execution time (42.0s)")
	assert.Contains(t, recs[2], "Error rate (25.0%)")
	assert.Contains(t, recs[3], "expanding test coverage")
}

func TestRecommendNeverEmpty(t *testing.T) {
	recs := Recommend(core.Summary{}, DefaultThresholds())
	assert.NotEmpty(t, recs)
}
