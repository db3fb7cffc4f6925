package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webprobe-dev/webprobe/internal/analysis"
	"github.com/webprobe-dev/webprobe/internal/core"
	"github.com/webprobe-dev/webprobe/internal/events"
)

type mockGenerator struct {
	cases []core.TestCaseDescriptor
	err   error
}

func (m *mockGenerator) Name() string { return "mock-generator" }

func (m *mockGenerator) Generate(_ context.Context, _ core.Requirements) ([]core.TestCaseDescriptor, error) {
	return m.cases, m.err
}

type mockRanker struct {
	err error
}

func (m *mockRanker) Name() string { return "mock-ranker" }

func (m *mockRanker) Rank(_ context.Context, candidates []core.TestCaseDescriptor, selectCount int) (*core.RankingResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if selectCount > len(candidates) {
		selectCount = len(candidates)
	}
	return &core.RankingResult{
		Selected:        candidates[:selectCount],
		Rejected:        candidates[selectCount:],
		TotalCandidates: len(candidates),
	}, nil
}

type mockExecutor struct {
	records   []core.TestExecutionRecord
	err       error
	panicWith any
}

func (m *mockExecutor) Name() string { return "mock-executor" }

func (m *mockExecutor) Execute(_ context.Context, _ []core.TestCaseDescriptor, _ core.RunID) ([]core.TestExecutionRecord, error) {
	if m.panicWith != nil {
		panic(m.panicWith)
	}
	return m.records, m.err
}

func descriptors(n int) []core.TestCaseDescriptor {
	out := make([]core.TestCaseDescriptor, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, core.TestCaseDescriptor{
			ID:       fmt.Sprintf("TC_%03d", i+1),
			Title:    fmt.Sprintf("case %d", i+1),
			Category: core.CategoryFunctional,
		})
	}
	return out
}

func records(passed, failed int) []core.TestExecutionRecord {
	var out []core.TestExecutionRecord
	for i := 0; i < passed+failed; i++ {
		status := core.TestStatusPassed
		if i >= passed {
			status = core.TestStatusFailed
		}
		out = append(out, core.TestExecutionRecord{
			TestID:        fmt.Sprintf("TC_%03d", i+1),
			Category:      core.CategoryFunctional,
			Status:        status,
			ExecutionTime: 5.0,
			Screenshots:   []string{fmt.Sprintf("TC_%03d.png", i+1)},
		})
	}
	return out
}

func newTestController(gen core.Generator, ranker core.Ranker, exec core.Executor, opts ...ControllerOption) *Controller {
	return NewController(gen, ranker, exec, analysis.NewAnalyzer(analysis.DefaultThresholds()), opts...)
}

func TestRunHappyPath(t *testing.T) {
	controller := newTestController(
		&mockGenerator{cases: descriptors(10)},
		&mockRanker{},
		&mockExecutor{records: records(9, 1)},
	)

	var progress []int
	report, err := controller.Run(context.Background(), RunRequest{
		Requirements: core.Requirements{TargetURL: "https://example.com", CandidateCount: 10},
		SelectCount:  10,
		Observer: core.ProgressFunc(func(_ string, percent int, _ string) {
			progress = append(progress, percent)
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, core.RunStatusCompleted, report.Status)
	assert.Equal(t, core.VerdictExcellent, report.FinalVerdict)
	assert.Len(t, report.Phases, 5)
	assert.True(t, report.AllPhasesSucceeded())
	assert.Equal(t, []int{10, 30, 50, 80, 95, 100}, progress)

	require.NotNil(t, report.FinalReport)
	assert.Equal(t, 10, report.FinalReport.ExecutiveSummary.TestCasesGenerated)
	assert.Equal(t, 10, report.FinalReport.ExecutiveSummary.TestCasesExecuted)
	assert.InDelta(t, 0.9, report.FinalReport.ExecutiveSummary.OverallSuccessRate, 1e-9)
	assert.True(t, report.FinalReport.Reproducibility.WorkflowReproducible)
	assert.True(t, report.FinalReport.Reproducibility.CrossValidationPerformed)
	assert.NotEmpty(t, report.FinalReport.KeyFindings)
	assert.NotEmpty(t, report.FinalReport.NextSteps)
}

func TestRunGeneratesRunID(t *testing.T) {
	controller := newTestController(
		&mockGenerator{cases: descriptors(2)},
		&mockRanker{},
		&mockExecutor{records: records(2, 0)},
	)

	report, err := controller.Run(context.Background(), RunRequest{
		Requirements: core.Requirements{TargetURL: "https://example.com"},
		SelectCount:  2,
	})
	require.NoError(t, err)
	assert.Regexp(t, `^test_\d{8}_\d{6}$`, report.RunID.String())
}

func TestRunPlanningFallback(t *testing.T) {
	controller := newTestController(
		&mockGenerator{err: core.ErrGeneration(core.CodeGeneratorFailed, "model unavailable")},
		&mockRanker{},
		&mockExecutor{},
	)

	report, err := controller.Run(context.Background(), RunRequest{
		Requirements: core.Requirements{TargetURL: "https://example.com"},
		SelectCount:  5,
	})
	require.NoError(t, err)

	planning := report.Phases[core.PhasePlanning]
	assert.Equal(t, core.PhaseStatusFailed, planning.Status)
	assert.True(t, planning.Degraded)
	assert.Zero(t, planning.Planning.Generated)

	// Downstream phases still ran on the empty set.
	assert.Equal(t, core.RunStatusCompleted, report.Status)
	assert.Len(t, report.Phases, 5)
	assert.Equal(t, core.VerdictPoor, report.FinalVerdict)
	assert.False(t, report.FinalReport.Reproducibility.WorkflowReproducible)
}

func TestRunRankingFallbackTakesHead(t *testing.T) {
	controller := newTestController(
		&mockGenerator{cases: descriptors(8)},
		&mockRanker{err: core.ErrRanking(core.CodeRankerFailed, "scoring failed")},
		&mockExecutor{records: records(5, 0)},
	)

	report, err := controller.Run(context.Background(), RunRequest{
		Requirements: core.Requirements{TargetURL: "https://example.com"},
		SelectCount:  5,
	})
	require.NoError(t, err)

	ranking := report.Phases[core.PhaseRanking]
	assert.True(t, ranking.Degraded)
	require.Len(t, ranking.Ranking.Selected, 5)
	assert.Equal(t, "TC_001", ranking.Ranking.Selected[0].ID)
	assert.Equal(t, "TC_005", ranking.Ranking.Selected[4].ID)
	assert.Empty(t, ranking.Ranking.Rejected)
	assert.Equal(t, 8, ranking.Ranking.TotalCandidates)
	assert.Equal(t, core.RunStatusCompleted, report.Status)
}

func TestRunExecutorFallbackStillAnalyzes(t *testing.T) {
	controller := newTestController(
		&mockGenerator{cases: descriptors(4)},
		&mockRanker{},
		&mockExecutor{err: core.ErrExecution(core.CodeExecutorFailed, "browser crashed")},
	)

	report, err := controller.Run(context.Background(), RunRequest{
		Requirements: core.Requirements{TargetURL: "https://example.com"},
		SelectCount:  4,
	})
	require.NoError(t, err)

	execution := report.Phases[core.PhaseExecution]
	assert.True(t, execution.Degraded)
	assert.Zero(t, execution.Execution.Stats.TotalExecuted)

	analysisPhase := report.Phases[core.PhaseAnalysis]
	require.NotNil(t, analysisPhase.Analysis.Report)
	assert.Zero(t, analysisPhase.Analysis.Report.Summary.TotalTests)
	assert.Equal(t, core.VerdictPoor, report.FinalVerdict)
}

func TestRunPanicFailsRun(t *testing.T) {
	bus := events.New(10)
	defer bus.Close()
	failures := bus.SubscribePriority()

	controller := newTestController(
		&mockGenerator{cases: descriptors(2)},
		&mockRanker{},
		&mockExecutor{panicWith: "index out of range"},
		WithBus(bus),
	)

	report, err := controller.Run(context.Background(), RunRequest{
		Requirements: core.Requirements{TargetURL: "https://example.com"},
		SelectCount:  2,
	})
	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatController))

	assert.Equal(t, core.RunStatusFailed, report.Status)
	assert.Contains(t, report.Error, "index out of range")
	// Execution and later phases never got recorded.
	assert.NotContains(t, report.Phases, core.PhaseExecution)
	assert.NotContains(t, report.Phases, core.PhaseAnalysis)
	assert.NotContains(t, report.Phases, core.PhaseReporting)

	ev := <-failures
	assert.Equal(t, events.TypeRunFailed, ev.EventType())
}

func TestRunMissingCollaborator(t *testing.T) {
	controller := NewController(nil, &mockRanker{}, &mockExecutor{}, analysis.NewAnalyzer(analysis.DefaultThresholds()))

	_, err := controller.Run(context.Background(), RunRequest{
		Requirements: core.Requirements{TargetURL: "https://example.com"},
	})
	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatController))
}

func TestRunPublishesLifecycleEvents(t *testing.T) {
	bus := events.New(100)
	defer bus.Close()
	ch := bus.Subscribe(events.TypeRunStarted, events.TypePhaseCompleted, events.TypeRunCompleted)

	controller := newTestController(
		&mockGenerator{cases: descriptors(2)},
		&mockRanker{},
		&mockExecutor{records: records(2, 0)},
		WithBus(bus),
	)

	_, err := controller.Run(context.Background(), RunRequest{
		Requirements: core.Requirements{TargetURL: "https://example.com"},
		SelectCount:  2,
	})
	require.NoError(t, err)

	var types []string
	for len(ch) > 0 {
		types = append(types, (<-ch).EventType())
	}
	assert.Equal(t, []string{
		events.TypeRunStarted,
		events.TypePhaseCompleted,
		events.TypePhaseCompleted,
		events.TypePhaseCompleted,
		events.TypePhaseCompleted,
		events.TypePhaseCompleted,
		events.TypeRunCompleted,
	}, types)
}

type failingSaveStore struct {
	core.ReportStore
}

func (failingSaveStore) SaveWorkflowReport(_ context.Context, _ *core.WorkflowReport) error {
	return core.ErrState(core.CodePersistenceFailed, "disk full")
}

func TestRunReportingNeverFails(t *testing.T) {
	controller := newTestController(
		&mockGenerator{cases: descriptors(2)},
		&mockRanker{},
		&mockExecutor{records: records(2, 0)},
		WithStore(failingSaveStore{}),
	)

	report, err := controller.Run(context.Background(), RunRequest{
		Requirements: core.Requirements{TargetURL: "https://example.com"},
		SelectCount:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, core.RunStatusCompleted, report.Status)
	assert.Equal(t, core.PhaseStatusSuccess, report.Phases[core.PhaseReporting].Status)
}
