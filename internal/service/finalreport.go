package service

import (
	"fmt"

	"github.com/webprobe-dev/webprobe/internal/core"
)

// buildFinalReport consolidates the run into the final report. It never
// fails: missing earlier results simply produce a sparser report.
func (c *Controller) buildFinalReport(report *core.WorkflowReport, planning, execution *core.PhaseResult, analysisReport *core.AnalysisReport) *core.FinalReport {
	stats := execution.Execution.Stats
	verdict := core.VerdictForRate(stats.SuccessRate)

	final := &core.FinalReport{
		OverallVerdict: verdict,
		VerdictReason:  verdict.Reason(),
		ExecutiveSummary: core.ExecutiveSummary{
			TestCasesGenerated: planning.Planning.Generated,
			TestCasesExecuted:  stats.TotalExecuted,
			OverallSuccessRate: stats.SuccessRate,
			TotalWorkflowTime:  report.PhaseDurationTotal(),
		},
		KeyFindings:     keyFindings(stats, analysisReport),
		Recommendations: finalRecommendations(analysisReport),
		Reproducibility: core.ReproducibilityStats{
			WorkflowReproducible:     report.AllPhasesSucceeded(),
			TestArtifactsCaptured:    artifactTotal(execution.Execution.Results),
			CrossValidationPerformed: analysisReport != nil,
		},
		NextSteps:       nextSteps(verdict, analysisReport),
		GeneratedAt:     c.now().UTC(),
		WorkflowVersion: workflowVersion,
	}
	return final
}

func keyFindings(stats core.ExecutionStats, analysisReport *core.AnalysisReport) []string {
	findings := []string{
		fmt.Sprintf("%d of %d tests passed (%.1f%% success rate)",
			stats.Passed, stats.TotalExecuted, stats.SuccessRate*100),
	}
	if analysisReport == nil {
		findings = append(findings, "Result analysis unavailable for this run")
		return findings
	}

	perf := analysisReport.Detailed.Performance
	if perf.SlowTestCount > 0 {
		findings = append(findings, fmt.Sprintf("%d tests exceeded the %.0fs execution threshold",
			perf.SlowTestCount, perf.Threshold))
	}
	for _, common := range analysisReport.Detailed.Errors.CommonErrors {
		findings = append(findings, fmt.Sprintf("Recurring error type %q seen %d times",
			common.ErrorType, common.Count))
	}
	if flaky := len(analysisReport.Detailed.Reliability.FlakyTests); flaky > 0 {
		findings = append(findings, fmt.Sprintf("%d tests passed while logging errors and may be flaky", flaky))
	}
	if analysisReport.Validation.OverallStatus != core.CheckStatusPass {
		findings = append(findings, "Cross-validation raised warnings; inspect the validation checks")
	}
	if high := len(analysisReport.Triage.HighPriority); high > 0 {
		findings = append(findings, fmt.Sprintf("%d issues need immediate attention", high))
	}
	return findings
}

func finalRecommendations(analysisReport *core.AnalysisReport) []string {
	if analysisReport == nil {
		return []string{"Re-run the campaign to obtain an analysis report."}
	}
	return analysisReport.Recommendations
}

func nextSteps(verdict core.Verdict, analysisReport *core.AnalysisReport) []string {
	var steps []string
	switch verdict {
	case core.VerdictExcellent, core.VerdictGood:
		steps = append(steps, "Use this run as the baseline for future campaigns")
	case core.VerdictFair:
		steps = append(steps, "Review failing tests before promoting this run as a baseline")
	default:
		steps = append(steps, "Address the failing tests before the next campaign run")
	}
	if analysisReport != nil && len(analysisReport.Triage.HighPriority) > 0 {
		steps = append(steps, "Work through the high-priority triage items first")
	}
	steps = append(steps, "Schedule the next campaign run to track trends")
	return steps
}

func artifactTotal(records []core.TestExecutionRecord) int {
	total := 0
	for _, rec := range records {
		total += rec.ArtifactCount()
	}
	return total
}
