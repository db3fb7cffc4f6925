package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webprobe-dev/webprobe/internal/core"
)

func healthyBatch() []core.TestExecutionRecord {
	var records []core.TestExecutionRecord
	for i := 0; i < 10; i++ {
		id := []string{"TC_001", "TC_002", "TC_003", "TC_004", "TC_005", "TC_006", "TC_007", "TC_008", "TC_009", "TC_010"}[i]
		status := core.TestStatusPassed
		if i == 9 {
			status = core.TestStatusFailed
		}
		rec := record(id, status, 5.0)
		rec.Screenshots = []string{id + ".png"}
		records = append(records, rec)
	}
	return records
}

func TestAnalyzeHealthyBatch(t *testing.T) {
	analyzer := NewAnalyzer(DefaultThresholds())
	runID := core.RunID("test_20260831_120000")

	report, err := analyzer.Analyze(context.Background(), runID, healthyBatch())
	require.NoError(t, err)

	assert.Equal(t, runID, report.TestRunID)
	assert.InDelta(t, 0.9, report.Summary.SuccessRate, 1e-9)
	assert.Equal(t, core.VerdictExcellent, core.VerdictForRate(report.Summary.SuccessRate))

	// One plain failure lands in the low tier and nowhere else.
	assert.Empty(t, report.Triage.HighPriority)
	assert.Empty(t, report.Triage.MediumPriority)
	assert.Len(t, report.Triage.LowPriority, 1)

	assert.Equal(t, []string{"All metrics within acceptable thresholds. Test suite performing well."}, report.Recommendations)
	assert.Equal(t, core.CheckStatusPass, report.Validation.OverallStatus)
	assert.Equal(t, "webprobe-analyzer", report.Metadata.AnalyzedBy)
	assert.Equal(t, analyzerVersion, report.Metadata.Version)
	assert.False(t, report.Metadata.Timestamp.IsZero())
}

func TestAnalyzeEmptyBatch(t *testing.T) {
	analyzer := NewAnalyzer(DefaultThresholds())

	report, err := analyzer.Analyze(context.Background(), core.RunID("test_20260831_120000"), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Summary.TotalTests)
	assert.Zero(t, report.Summary.ExecutionTimes.Average)
	assert.Equal(t, core.CheckStatusPass, report.Validation.OverallStatus)
	assert.NotEmpty(t, report.Recommendations)
	assert.Empty(t, report.Triage.HighPriority)
	assert.NotNil(t, report.Detailed.Errors.ErrorSummary)
}

func TestAnalyzeDeterministic(t *testing.T) {
	fixed := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	analyzer := NewAnalyzer(DefaultThresholds(), WithClock(func() time.Time { return fixed }))
	runID := core.RunID("test_20260831_120000")
	batch := healthyBatch()

	first, err := analyzer.Analyze(context.Background(), runID, batch)
	require.NoError(t, err)
	second, err := analyzer.Analyze(context.Background(), runID, batch)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

type savingStore struct {
	core.ReportStore
	saved *core.AnalysisReport
}

func (s *savingStore) SaveAnalysis(_ context.Context, report *core.AnalysisReport) error {
	s.saved = report
	return nil
}

func TestAnalyzePersistsReport(t *testing.T) {
	store := &savingStore{}
	analyzer := NewAnalyzer(DefaultThresholds(), WithStore(store))

	report, err := analyzer.Analyze(context.Background(), core.RunID("test_20260831_120000"), healthyBatch())
	require.NoError(t, err)

	assert.Same(t, report, store.saved)
}
