package core

import (
	"context"
	"time"
)

// Generator produces candidate test cases for a requirements descriptor.
// How cases are generated (rule catalog, LLM, recorded sessions) is opaque
// to the pipeline; only the output shape matters.
type Generator interface {
	// Name returns the adapter identifier.
	Name() string

	// Generate returns candidate test case descriptors. A failure is
	// reported with an ErrCatGeneration error.
	Generate(ctx context.Context, req Requirements) ([]TestCaseDescriptor, error)
}

// RankingResult partitions candidates into selected and rejected sets.
type RankingResult struct {
	Selected        []TestCaseDescriptor `json:"selected_test_cases"`
	Rejected        []TestCaseDescriptor `json:"rejected_test_cases"`
	TotalCandidates int                  `json:"total_candidates"`
}

// Ranker selects which candidates to execute.
type Ranker interface {
	Name() string

	// Rank partitions candidates into at most selectCount selected cases
	// plus the rejects. A failure is reported with an ErrCatRanking error.
	Rank(ctx context.Context, candidates []TestCaseDescriptor, selectCount int) (*RankingResult, error)
}

// Executor runs test cases against the live target. Per-test failures are
// expressed as records with status failed or error, never as a returned
// error; a returned error means the whole batch could not be executed.
type Executor interface {
	Name() string

	Execute(ctx context.Context, cases []TestCaseDescriptor, runID RunID) ([]TestExecutionRecord, error)
}

// ProgressObserver receives advisory progress updates once per phase
// transition. Implementations must not block; absence of an observer never
// changes pipeline behavior.
type ProgressObserver interface {
	OnProgress(stage string, percent int, message string)
}

// ProgressFunc adapts a function to the ProgressObserver interface.
type ProgressFunc func(stage string, percent int, message string)

// OnProgress implements ProgressObserver.
func (f ProgressFunc) OnProgress(stage string, percent int, message string) {
	f(stage, percent, message)
}

// ReportInfo describes a persisted report document for listings.
type ReportInfo struct {
	Name      string    `json:"name"`
	RunID     RunID     `json:"run_id"`
	Kind      string    `json:"kind"` // "analysis" or "final_report"
	CreatedAt time.Time `json:"created"`
	SizeBytes int64     `json:"size"`
}

// ReportStore persists one analysis document and one workflow report per
// run, addressable as {runID}_analysis and {runID}_final_report.
type ReportStore interface {
	SaveAnalysis(ctx context.Context, report *AnalysisReport) error
	SaveWorkflowReport(ctx context.Context, report *WorkflowReport) error

	// LoadAnalysis returns nil, ErrCatNotFound when no document exists.
	LoadAnalysis(ctx context.Context, id RunID) (*AnalysisReport, error)

	// LoadWorkflowReport returns nil, ErrCatNotFound when no document exists.
	LoadWorkflowReport(ctx context.Context, id RunID) (*WorkflowReport, error)

	List(ctx context.Context) ([]ReportInfo, error)
}
