// Package service orchestrates the campaign pipeline: phase sequencing,
// per-phase fallbacks, run tracking and final report assembly.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/webprobe-dev/webprobe/internal/analysis"
	"github.com/webprobe-dev/webprobe/internal/core"
	"github.com/webprobe-dev/webprobe/internal/events"
	"github.com/webprobe-dev/webprobe/internal/logging"
)

// workflowVersion stamps final reports.
const workflowVersion = "1.0.0"

// RunRequest describes one campaign run.
type RunRequest struct {
	// RunID is optional; a fresh one is generated when empty.
	RunID core.RunID

	Requirements core.Requirements

	// SelectCount is how many candidates the ranking phase keeps.
	SelectCount int

	// Observer receives advisory progress updates. May be nil.
	Observer core.ProgressObserver
}

// Controller drives a run through the five phases in order. Collaborator
// failures degrade the affected phase via its fallback and the pipeline
// continues; only a defect in the controller itself aborts the run.
type Controller struct {
	generator core.Generator
	ranker    core.Ranker
	executor  core.Executor
	analyzer  *analysis.Analyzer
	store     core.ReportStore
	bus       *events.EventBus
	logger    *logging.Logger
	now       func() time.Time
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithStore makes the controller persist the workflow report at the end of
// each run.
func WithStore(store core.ReportStore) ControllerOption {
	return func(c *Controller) { c.store = store }
}

// WithBus sets the event bus for run lifecycle events.
func WithBus(bus *events.EventBus) ControllerOption {
	return func(c *Controller) { c.bus = bus }
}

// WithLogger sets the controller's logger.
func WithLogger(logger *logging.Logger) ControllerOption {
	return func(c *Controller) { c.logger = logger }
}

// WithClock overrides the controller's time source.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

// NewController creates a controller over the three phase collaborators and
// the analysis engine.
func NewController(generator core.Generator, ranker core.Ranker, executor core.Executor, analyzer *analysis.Analyzer, opts ...ControllerOption) *Controller {
	c := &Controller{
		generator: generator,
		ranker:    ranker,
		executor:  executor,
		analyzer:  analyzer,
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes the full pipeline for one request. The returned report is
// always non-nil; when err is non-nil the report's status is failed and the
// phases recorded so far describe how far the run got.
func (c *Controller) Run(ctx context.Context, req RunRequest) (report *core.WorkflowReport, err error) {
	if missing := c.missingCollaborator(); missing != "" {
		return nil, core.ErrController(core.CodeMissingCollab, "controller has no "+missing)
	}

	runID := req.RunID
	if runID == "" {
		runID = core.NewRunID(c.now())
	}
	if vErr := runID.Validate(); vErr != nil {
		return nil, vErr
	}

	log := c.logger.WithRun(runID.String())
	report = core.NewWorkflowReport(runID, c.now())

	defer func() {
		if r := recover(); r != nil {
			defect := core.ErrController(core.CodeControllerDefect, fmt.Sprintf("panic in pipeline: %v", r))
			report.Fail(defect, c.now())
			c.publishPriority(events.NewRunFailedEvent(runID.String(), defect.Error()))
			log.Error("run aborted on controller defect", "panic", r)
			err = defect
		}
	}()

	log.Info("starting campaign run", "target_url", req.Requirements.TargetURL)
	c.publish(events.NewRunStartedEvent(runID.String(), req.Requirements.TargetURL))

	// Planning
	c.beginPhase(req, runID, core.PhasePlanning)
	planning := c.runPlanning(ctx, req, log)
	if err := report.RecordPhase(planning); err != nil {
		return c.abort(report, runID, err, log)
	}
	c.finishPhase(runID, planning)

	// Ranking
	c.beginPhase(req, runID, core.PhaseRanking)
	ranking := c.runRanking(ctx, req, planning.Planning.TestCases, log)
	if err := report.RecordPhase(ranking); err != nil {
		return c.abort(report, runID, err, log)
	}
	c.finishPhase(runID, ranking)

	// Execution
	c.beginPhase(req, runID, core.PhaseExecution)
	execution := c.runExecution(ctx, runID, ranking.Ranking.Selected, log)
	if err := report.RecordPhase(execution); err != nil {
		return c.abort(report, runID, err, log)
	}
	c.finishPhase(runID, execution)

	// Analysis
	c.beginPhase(req, runID, core.PhaseAnalysis)
	analysisResult := c.runAnalysis(ctx, runID, execution.Execution.Results, log)
	if err := report.RecordPhase(analysisResult); err != nil {
		return c.abort(report, runID, err, log)
	}
	c.finishPhase(runID, analysisResult)

	// Reporting never fails: it works with whatever the earlier phases left.
	c.beginPhase(req, runID, core.PhaseReporting)
	reporting := c.runReporting(report, planning, execution, analysisResult.Analysis.Report)
	if err := report.RecordPhase(reporting); err != nil {
		return c.abort(report, runID, err, log)
	}
	c.finishPhase(runID, reporting)

	report.FinalVerdict = core.VerdictForRate(execution.Execution.Stats.SuccessRate)
	report.Complete(c.now())
	c.observe(req, runID, core.PhaseDone.String(), core.PhaseDone.ProgressPercent(), core.PhaseDone.Description())

	if c.store != nil {
		if saveErr := c.store.SaveWorkflowReport(ctx, report); saveErr != nil {
			log.Error("saving workflow report failed", "error", saveErr)
		}
	}

	c.publishPriority(events.NewRunCompletedEvent(runID.String(), report.FinalVerdict))
	log.Info("campaign run completed",
		"verdict", report.FinalVerdict,
		"phases", len(report.Phases),
		"duration", report.CompletedAt.Sub(report.StartedAt).Seconds())
	return report, nil
}

func (c *Controller) missingCollaborator() string {
	switch {
	case c.generator == nil:
		return "generator"
	case c.ranker == nil:
		return "ranker"
	case c.executor == nil:
		return "executor"
	case c.analyzer == nil:
		return "analyzer"
	default:
		return ""
	}
}

func (c *Controller) abort(report *core.WorkflowReport, runID core.RunID, err error, log *logging.Logger) (*core.WorkflowReport, error) {
	report.Fail(err, c.now())
	c.publishPriority(events.NewRunFailedEvent(runID.String(), err.Error()))
	log.Error("run aborted", "error", err)
	return report, err
}

func (c *Controller) runPlanning(ctx context.Context, req RunRequest, log *logging.Logger) *core.PhaseResult {
	start := c.now()
	result := &core.PhaseResult{Phase: core.PhasePlanning, Status: core.PhaseStatusSuccess}

	cases, err := c.generator.Generate(ctx, req.Requirements)
	if err != nil {
		// Fallback: continue with an empty candidate set.
		log.Warn("planning degraded, continuing with empty candidate set", "error", err)
		result.Status = core.PhaseStatusFailed
		result.Error = err.Error()
		result.Degraded = true
		cases = nil
	}

	result.Planning = &core.PlanningPayload{
		TestCases:    cases,
		Generated:    len(cases),
		Requirements: req.Requirements,
	}
	result.Duration = c.now().Sub(start).Seconds()
	log.Info("planning finished", "generated", len(cases), "degraded", result.Degraded)
	return result
}

func (c *Controller) runRanking(ctx context.Context, req RunRequest, candidates []core.TestCaseDescriptor, log *logging.Logger) *core.PhaseResult {
	start := c.now()
	result := &core.PhaseResult{Phase: core.PhaseRanking, Status: core.PhaseStatusSuccess}

	ranking, err := c.ranker.Rank(ctx, candidates, req.SelectCount)
	if err != nil {
		// Fallback: take the first N candidates in generation order.
		log.Warn("ranking degraded, selecting head of candidate list", "error", err)
		n := req.SelectCount
		if n > len(candidates) {
			n = len(candidates)
		}
		if n < 0 {
			n = 0
		}
		ranking = &core.RankingResult{
			Selected:        candidates[:n],
			TotalCandidates: len(candidates),
		}
		result.Status = core.PhaseStatusFailed
		result.Error = err.Error()
		result.Degraded = true
	}

	result.Ranking = &core.RankingPayload{
		Selected:        ranking.Selected,
		Rejected:        ranking.Rejected,
		TotalCandidates: ranking.TotalCandidates,
	}
	result.Duration = c.now().Sub(start).Seconds()
	log.Info("ranking finished", "selected", len(ranking.Selected), "rejected", len(ranking.Rejected), "degraded", result.Degraded)
	return result
}

func (c *Controller) runExecution(ctx context.Context, runID core.RunID, selected []core.TestCaseDescriptor, log *logging.Logger) *core.PhaseResult {
	start := c.now()
	result := &core.PhaseResult{Phase: core.PhaseExecution, Status: core.PhaseStatusSuccess}

	records, err := c.executor.Execute(ctx, selected, runID)
	if err != nil {
		// Fallback: continue with an empty record batch; analysis still runs.
		log.Warn("execution degraded, continuing with empty record batch", "error", err)
		result.Status = core.PhaseStatusFailed
		result.Error = err.Error()
		result.Degraded = true
		records = nil
	}

	result.Execution = &core.ExecutionPayload{
		Results: records,
		Stats:   executionStats(records),
	}
	result.Duration = c.now().Sub(start).Seconds()
	log.Info("execution finished",
		"executed", result.Execution.Stats.TotalExecuted,
		"passed", result.Execution.Stats.Passed,
		"degraded", result.Degraded)
	return result
}

func (c *Controller) runAnalysis(ctx context.Context, runID core.RunID, records []core.TestExecutionRecord, log *logging.Logger) *core.PhaseResult {
	start := c.now()
	result := &core.PhaseResult{Phase: core.PhaseAnalysis, Status: core.PhaseStatusSuccess}

	analysisReport, err := c.analyzer.Analyze(ctx, runID, records)
	if err != nil {
		// Fallback: continue with an empty analysis payload.
		log.Warn("analysis degraded, continuing without analysis report", "error", err)
		result.Status = core.PhaseStatusFailed
		result.Error = err.Error()
		result.Degraded = true
		analysisReport = nil
	}

	result.Analysis = &core.AnalysisPayload{Report: analysisReport}
	result.Duration = c.now().Sub(start).Seconds()
	log.Info("analysis finished", "degraded", result.Degraded)
	return result
}

func (c *Controller) runReporting(report *core.WorkflowReport, planning, execution *core.PhaseResult, analysisReport *core.AnalysisReport) *core.PhaseResult {
	start := c.now()
	result := &core.PhaseResult{Phase: core.PhaseReporting, Status: core.PhaseStatusSuccess}

	report.FinalReport = c.buildFinalReport(report, planning, execution, analysisReport)

	result.Duration = c.now().Sub(start).Seconds()
	return result
}

func executionStats(records []core.TestExecutionRecord) core.ExecutionStats {
	stats := core.ExecutionStats{TotalExecuted: len(records)}
	for _, rec := range records {
		switch rec.Status {
		case core.TestStatusPassed:
			stats.Passed++
		case core.TestStatusFailed:
			stats.Failed++
		case core.TestStatusError:
			stats.Errors++
		}
	}
	if stats.TotalExecuted > 0 {
		stats.SuccessRate = float64(stats.Passed) / float64(stats.TotalExecuted)
	}
	return stats
}

func (c *Controller) beginPhase(req RunRequest, runID core.RunID, phase core.Phase) {
	c.observe(req, runID, phase.String(), phase.ProgressPercent(), phase.Description())
	c.publish(events.NewPhaseStartedEvent(runID.String(), phase))
}

func (c *Controller) finishPhase(runID core.RunID, result *core.PhaseResult) {
	c.publish(events.NewPhaseCompletedEvent(runID.String(), result.Phase, result.Status, result.Degraded))
}

func (c *Controller) observe(req RunRequest, runID core.RunID, stage string, percent int, message string) {
	if req.Observer != nil {
		req.Observer.OnProgress(stage, percent, message)
	}
	c.publish(events.NewRunProgressEvent(runID.String(), stage, percent, message))
}

func (c *Controller) publish(event events.Event) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}

func (c *Controller) publishPriority(event events.Event) {
	if c.bus != nil {
		c.bus.PublishPriority(event)
	}
}
