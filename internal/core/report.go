package core

import (
	"fmt"
	"time"
)

// RunID uniquely identifies a campaign run. It is the isolation key for all
// per-run state: concurrent runs never share mutable aggregation state.
type RunID string

// runIDFormat is the layout for generated run identifiers.
const runIDFormat = "20060102_150405"

// NewRunID generates a run identifier of the form test_YYYYMMDD_HHMMSS.
func NewRunID(now time.Time) RunID {
	return RunID("test_" + now.Format(runIDFormat))
}

// Validate checks that an externally supplied run ID is usable.
func (id RunID) Validate() error {
	if id == "" {
		return ErrValidation(CodeInvalidRunID, "run ID cannot be empty")
	}
	return nil
}

// String returns the string representation of the run ID.
func (id RunID) String() string {
	return string(id)
}

// PhaseStatus is the outcome of a single pipeline phase.
type PhaseStatus string

const (
	PhaseStatusSuccess PhaseStatus = "success"
	PhaseStatusFailed  PhaseStatus = "failed"
)

// ExecutionStats summarizes the execution phase outcome.
type ExecutionStats struct {
	TotalExecuted int     `json:"total_executed"`
	Passed        int     `json:"passed"`
	Failed        int     `json:"failed"`
	Errors        int     `json:"errors"`
	SuccessRate   float64 `json:"success_rate"`
}

// PlanningPayload is the planning phase's phase-specific result.
type PlanningPayload struct {
	TestCases    []TestCaseDescriptor `json:"test_cases"`
	Generated    int                  `json:"test_cases_generated"`
	Requirements Requirements         `json:"requirements"`
}

// RankingPayload is the ranking phase's phase-specific result.
type RankingPayload struct {
	Selected        []TestCaseDescriptor `json:"selected_test_cases"`
	Rejected        []TestCaseDescriptor `json:"rejected_test_cases"`
	TotalCandidates int                  `json:"total_candidates"`
}

// ExecutionPayload is the execution phase's phase-specific result.
type ExecutionPayload struct {
	Results []TestExecutionRecord `json:"test_results"`
	Stats   ExecutionStats        `json:"execution_statistics"`
}

// AnalysisPayload is the analysis phase's phase-specific result.
type AnalysisPayload struct {
	Report *AnalysisReport `json:"analysis_result,omitempty"`
}

// PhaseResult records the outcome of one pipeline phase. Exactly one payload
// pointer is set, matching the phase; a failed phase carries the fallback
// payload that the pipeline continued with.
type PhaseResult struct {
	Phase     Phase       `json:"phase"`
	Status    PhaseStatus `json:"status"`
	Duration  float64     `json:"phase_duration"`
	Error     string      `json:"error,omitempty"`
	Degraded  bool        `json:"degraded,omitempty"`
	Planning  *PlanningPayload  `json:"planning,omitempty"`
	Ranking   *RankingPayload   `json:"ranking,omitempty"`
	Execution *ExecutionPayload `json:"execution,omitempty"`
	Analysis  *AnalysisPayload  `json:"analysis,omitempty"`
}

// Verdict is the qualitative outcome of a run, derived from the execution
// success rate.
type Verdict string

const (
	VerdictExcellent Verdict = "EXCELLENT"
	VerdictGood      Verdict = "GOOD"
	VerdictFair      Verdict = "FAIR"
	VerdictPoor      Verdict = "POOR"
)

// VerdictForRate maps an execution success rate to a verdict.
func VerdictForRate(rate float64) Verdict {
	switch {
	case rate >= 0.9:
		return VerdictExcellent
	case rate >= 0.8:
		return VerdictGood
	case rate >= 0.6:
		return VerdictFair
	default:
		return VerdictPoor
	}
}

// Reason returns the human-readable explanation attached to a verdict.
func (v Verdict) Reason() string {
	switch v {
	case VerdictExcellent:
		return "Very high success rate with minimal issues"
	case VerdictGood:
		return "Good success rate with some minor issues"
	case VerdictFair:
		return "Moderate success rate with several issues"
	default:
		return "Low success rate indicating significant problems"
	}
}

// RunStatus is the overall state of a workflow run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// ExecutiveSummary condenses the run for the final report.
type ExecutiveSummary struct {
	TestCasesGenerated int     `json:"test_cases_generated"`
	TestCasesExecuted  int     `json:"test_cases_executed"`
	OverallSuccessRate float64 `json:"overall_success_rate"`
	TotalWorkflowTime  float64 `json:"total_workflow_time"`
}

// ReproducibilityStats records whether the run is trustworthy as a baseline.
type ReproducibilityStats struct {
	WorkflowReproducible     bool `json:"workflow_reproducible"`
	TestArtifactsCaptured    int  `json:"test_artifacts_captured"`
	CrossValidationPerformed bool `json:"cross_validation_performed"`
}

// FinalReport is the reporting phase's consolidated output.
type FinalReport struct {
	OverallVerdict   Verdict              `json:"overall_verdict"`
	VerdictReason    string               `json:"verdict_reason"`
	ExecutiveSummary ExecutiveSummary     `json:"executive_summary"`
	KeyFindings      []string             `json:"key_findings"`
	Recommendations  []string             `json:"recommendations"`
	Reproducibility  ReproducibilityStats `json:"reproducibility_stats"`
	NextSteps        []string             `json:"next_steps"`
	GeneratedAt      time.Time            `json:"generated_at"`
	WorkflowVersion  string               `json:"workflow_version"`
}

// WorkflowReport is the root aggregate for one run. It is created once per
// run, owned by the controller, and immutable once Status is set to a
// terminal value.
type WorkflowReport struct {
	RunID        RunID                  `json:"test_run_id"`
	Status       RunStatus              `json:"status"`
	Phases       map[Phase]*PhaseResult `json:"phases"`
	FinalVerdict Verdict                `json:"final_verdict,omitempty"`
	FinalReport  *FinalReport           `json:"final_report,omitempty"`
	Error        string                 `json:"error,omitempty"`
	StartedAt    time.Time              `json:"workflow_start"`
	CompletedAt  time.Time              `json:"workflow_end"`
}

// NewWorkflowReport creates a report for a run in the running state.
func NewWorkflowReport(id RunID, start time.Time) *WorkflowReport {
	return &WorkflowReport{
		RunID:     id,
		Status:    RunStatusRunning,
		Phases:    make(map[Phase]*PhaseResult),
		StartedAt: start,
	}
}

// RecordPhase stores a phase result. Recording the same phase twice is a
// controller defect.
func (r *WorkflowReport) RecordPhase(result *PhaseResult) error {
	if result == nil {
		return ErrController(CodeControllerDefect, "nil phase result")
	}
	if _, exists := r.Phases[result.Phase]; exists {
		return ErrController(CodeControllerDefect,
			fmt.Sprintf("phase %s recorded twice", result.Phase))
	}
	r.Phases[result.Phase] = result
	return nil
}

// PhaseDurationTotal sums the recorded phase durations in seconds.
func (r *WorkflowReport) PhaseDurationTotal() float64 {
	total := 0.0
	for _, p := range r.Phases {
		total += p.Duration
	}
	return total
}

// AllPhasesSucceeded reports whether every recorded phase finished without
// falling back.
func (r *WorkflowReport) AllPhasesSucceeded() bool {
	for _, p := range r.Phases {
		if p.Status != PhaseStatusSuccess {
			return false
		}
	}
	return len(r.Phases) > 0
}

// Complete marks the run finished.
func (r *WorkflowReport) Complete(at time.Time) {
	r.Status = RunStatusCompleted
	r.CompletedAt = at
}

// Fail marks the run failed with a fatal controller error. The error message
// is surfaced verbatim.
func (r *WorkflowReport) Fail(err error, at time.Time) {
	r.Status = RunStatusFailed
	if err != nil {
		r.Error = err.Error()
	}
	r.CompletedAt = at
}
