package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webprobe-dev/webprobe/internal/core"
)

func sampleAnalysis(id core.RunID) *core.AnalysisReport {
	return &core.AnalysisReport{
		TestRunID: id,
		Summary:   core.Summary{TotalTests: 5, Passed: 4, Failed: 1, SuccessRate: 0.8},
		Metadata: core.ReportMetadata{
			AnalyzedBy: "webprobe-analyzer",
			Timestamp:  time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
			Version:    "1.0.0",
		},
	}
}

func sampleWorkflow(id core.RunID) *core.WorkflowReport {
	report := core.NewWorkflowReport(id, time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))
	report.FinalVerdict = core.VerdictGood
	report.Complete(time.Date(2026, 8, 31, 12, 5, 0, 0, time.UTC))
	return report
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()
	id := core.RunID("test_20260831_120000")

	require.NoError(t, store.SaveAnalysis(ctx, sampleAnalysis(id)))
	require.NoError(t, store.SaveWorkflowReport(ctx, sampleWorkflow(id)))

	analysis, err := store.LoadAnalysis(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, analysis.TestRunID)
	assert.Equal(t, 5, analysis.Summary.TotalTests)

	workflow, err := store.LoadWorkflowReport(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, core.RunStatusCompleted, workflow.Status)
	assert.Equal(t, core.VerdictGood, workflow.FinalVerdict)
}

func TestFileStoreDocumentNames(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	id := core.RunID("test_20260831_120000")

	require.NoError(t, store.SaveAnalysis(context.Background(), sampleAnalysis(id)))

	_, err := os.Stat(filepath.Join(dir, "test_20260831_120000_analysis.json"))
	assert.NoError(t, err)
}

func TestFileStoreNotFound(t *testing.T) {
	store := NewFileStore(t.TempDir())

	_, err := store.LoadAnalysis(context.Background(), core.RunID("test_unknown"))
	assert.True(t, core.IsCategory(err, core.ErrCatNotFound))

	_, err = store.LoadWorkflowReport(context.Background(), core.RunID("test_unknown"))
	assert.True(t, core.IsCategory(err, core.ErrCatNotFound))
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test_x_analysis.json"), []byte("{nope"), 0o644))

	_, err := store.LoadAnalysis(context.Background(), core.RunID("test_x"))
	assert.True(t, core.IsCategory(err, core.ErrCatState))
}

func TestFileStoreList(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()
	id := core.RunID("test_20260831_120000")

	require.NoError(t, store.SaveAnalysis(ctx, sampleAnalysis(id)))
	require.NoError(t, store.SaveWorkflowReport(ctx, sampleWorkflow(id)))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	kinds := map[string]bool{}
	for _, info := range infos {
		assert.Equal(t, id, info.RunID)
		assert.Positive(t, info.SizeBytes)
		kinds[info.Kind] = true
	}
	assert.True(t, kinds["analysis"])
	assert.True(t, kinds["final_report"])
}

func TestFileStoreListMissingDir(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope"))

	infos, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, infos)
}
