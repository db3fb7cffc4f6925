package analysis

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/webprobe-dev/webprobe/internal/core"
	"github.com/webprobe-dev/webprobe/internal/logging"
)

const analyzerVersion = "1.0.0"

// Analyzer composes the aggregate summary, the four dimensional views,
// cross-validation, recommendations and triage into one report.
type Analyzer struct {
	thresholds Thresholds
	store      core.ReportStore
	logger     *logging.Logger
	now        func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithStore makes the analyzer persist each report after composing it.
func WithStore(store core.ReportStore) Option {
	return func(a *Analyzer) { a.store = store }
}

// WithLogger sets the analyzer's logger.
func WithLogger(logger *logging.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// WithClock overrides the metadata timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// NewAnalyzer creates an analyzer with the given thresholds.
func NewAnalyzer(thresholds Thresholds, opts ...Option) *Analyzer {
	a := &Analyzer{
		thresholds: thresholds,
		logger:     logging.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze builds the full analysis report for a run. The input batch is
// treated as immutable and the four dimensional analyzers run concurrently;
// an empty batch yields a structurally complete report with zero statistics.
// When a store is configured the report is persisted before returning, and a
// persistence failure fails the analysis.
func (a *Analyzer) Analyze(ctx context.Context, runID core.RunID, records []core.TestExecutionRecord) (*core.AnalysisReport, error) {
	log := a.logger.WithRun(string(runID))
	log.Info("analyzing execution results", "tests", len(records))

	summary := Aggregate(records)

	var (
		mu       sync.Mutex
		detailed core.DetailedAnalysis
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		view := AnalyzePerformance(records, a.thresholds)
		mu.Lock()
		detailed.Performance = view
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		view := AnalyzeErrors(records, a.thresholds)
		mu.Lock()
		detailed.Errors = view
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		view := AnalyzeArtifacts(records)
		mu.Lock()
		detailed.Artifacts = view
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		view := AnalyzeReliability(records)
		mu.Lock()
		detailed.Reliability = view
		mu.Unlock()
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, core.ErrAnalysis(core.CodeAnalysisFailed, "dimensional analysis failed").WithCause(err)
	}

	report := &core.AnalysisReport{
		TestRunID:       runID,
		Summary:         summary,
		Detailed:        detailed,
		Validation:      Validate(records),
		Recommendations: Recommend(summary, a.thresholds),
		Triage:          Triage(records, a.thresholds),
		Metadata: core.ReportMetadata{
			AnalyzedBy: "webprobe-analyzer",
			Timestamp:  a.now().UTC(),
			Version:    analyzerVersion,
		},
	}

	if a.store != nil {
		if err := a.store.SaveAnalysis(ctx, report); err != nil {
			return nil, core.ErrAnalysis(core.CodePersistenceFailed, "saving analysis report").WithCause(err)
		}
		log.Info("analysis report saved", "report", string(runID)+"_analysis")
	}

	log.Info("analysis complete",
		"success_rate", summary.SuccessRate,
		"validation", report.Validation.OverallStatus,
		"recommendations", len(report.Recommendations))
	return report, nil
}
