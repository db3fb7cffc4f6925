package core

import "time"

// TimeStats is the execution-time distribution over a record batch.
// All fields are zero for an empty batch.
type TimeStats struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
	Total   float64 `json:"total"`
}

// Summary holds the aggregate statistics for a record batch.
// Invariant: Passed + Failed + Errors == TotalTests, and the three rates sum
// to 1 whenever TotalTests > 0.
type Summary struct {
	TotalTests     int       `json:"total_tests"`
	Passed         int       `json:"passed"`
	Failed         int       `json:"failed"`
	Errors         int       `json:"errors"`
	SuccessRate    float64   `json:"success_rate"`
	FailureRate    float64   `json:"failure_rate"`
	ErrorRate      float64   `json:"error_rate"`
	ExecutionTimes TimeStats `json:"execution_times"`
}

// SlowTest identifies a record that exceeded the performance threshold.
type SlowTest struct {
	TestID            string  `json:"test_id"`
	ExecutionTime     float64 `json:"execution_time"`
	ThresholdExceeded float64 `json:"threshold_exceeded"`
}

// TestTiming is one record's contribution to the performance view.
type TestTiming struct {
	TestID        string     `json:"test_id"`
	ExecutionTime float64    `json:"execution_time"`
	Status        TestStatus `json:"status"`
}

// MetricSample is a flattened step-level performance metric.
type MetricSample struct {
	TestID string  `json:"test_id"`
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
}

// PerformanceAnalysis is the performance analyzer's view of a batch.
type PerformanceAnalysis struct {
	TotalTestsAnalyzed int            `json:"total_tests_analyzed"`
	SlowTestCount      int            `json:"slow_tests_count"`
	Threshold          float64        `json:"performance_threshold"`
	Timings            []TestTiming   `json:"performance_data"`
	SlowTests          []SlowTest     `json:"slow_tests"`
	Metrics            []MetricSample `json:"performance_metrics"`
}

// FailurePattern is one error occurrence flattened out of a record.
type FailurePattern struct {
	TestID    string    `json:"test_id"`
	ErrorType string    `json:"error_type"`
	Message   string    `json:"error_message"`
	Timestamp time.Time `json:"timestamp"`
}

// CommonError is an error type seen in more than one pattern.
type CommonError struct {
	ErrorType string  `json:"error_type"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`
}

// ErrorRateAnalysis compares the failure-pattern rate to the threshold.
type ErrorRateAnalysis struct {
	WithinThreshold bool    `json:"within_threshold"`
	CurrentRate     float64 `json:"current_rate"`
	Threshold       float64 `json:"threshold"`
}

// ErrorAnalysis is the error analyzer's view of a batch.
type ErrorAnalysis struct {
	ErrorSummary    map[string]int    `json:"error_summary"`
	FailurePatterns []FailurePattern  `json:"failure_patterns"`
	CommonErrors    []CommonError     `json:"common_errors"`
	RateAnalysis    ErrorRateAnalysis `json:"error_rate_analysis"`
}

// ArtifactQuality scores one record's artifact capture completeness, 0 to 1.
type ArtifactQuality struct {
	TestID        string  `json:"test_id"`
	QualityScore  float64 `json:"quality_score"`
	ArtifactCount int     `json:"artifact_count"`
}

// ArtifactCoverage summarizes artifact capture over the whole batch.
type ArtifactCoverage struct {
	TestsWithScreenshots int     `json:"tests_with_screenshots"`
	TestsWithConsoleLogs int     `json:"tests_with_console_logs"`
	OverallCoverage      float64 `json:"overall_coverage"`
}

// ArtifactAnalysis is the artifact analyzer's view of a batch.
type ArtifactAnalysis struct {
	ScreenshotCount int               `json:"screenshots"`
	ConsoleLogCount int               `json:"console_logs"`
	Quality         []ArtifactQuality `json:"artifact_quality"`
	Coverage        ArtifactCoverage  `json:"coverage_analysis"`
}

// RepeatabilityAssessment counts categories at the reliability extremes.
type RepeatabilityAssessment struct {
	ConsistentResults   int `json:"consistent_results"`
	InconsistentResults int `json:"inconsistent_results"`
}

// ReliabilityAnalysis is the reliability analyzer's view of a batch.
type ReliabilityAnalysis struct {
	CategoryReliability map[Category]float64    `json:"category_reliability"`
	OverallReliability  float64                 `json:"overall_reliability"`
	FlakyTests          []string                `json:"flaky_tests"`
	Repeatability       RepeatabilityAssessment `json:"repeatability_assessment"`
}

// DetailedAnalysis bundles the four independent dimensional views.
type DetailedAnalysis struct {
	Performance PerformanceAnalysis `json:"performance_analysis"`
	Errors      ErrorAnalysis       `json:"error_analysis"`
	Artifacts   ArtifactAnalysis    `json:"artifact_analysis"`
	Reliability ReliabilityAnalysis `json:"reliability_analysis"`
}

// CheckStatus is the verdict of a single validation check.
type CheckStatus string

const (
	CheckStatusPass    CheckStatus = "pass"
	CheckStatusWarning CheckStatus = "warning"
	CheckStatusFail    CheckStatus = "fail"
)

// TimeOutlier is a record whose execution time deviated from the batch mean.
type TimeOutlier struct {
	TestID string  `json:"test_id"`
	Time   float64 `json:"time"`
}

// ValidationCheck is the outcome of one cross-validation check. Only the
// evidence field matching the check is populated.
type ValidationCheck struct {
	Name            string         `json:"check_name"`
	Status          CheckStatus    `json:"status"`
	Details         string         `json:"details"`
	Outliers        []TimeOutlier  `json:"outliers,omitempty"`
	ErrorPatterns   map[string]int `json:"error_patterns,omitempty"`
	IncompleteTests []string       `json:"incomplete_tests,omitempty"`
}

// ValidationResults is the full cross-validation outcome.
type ValidationResults struct {
	Checks               []ValidationCheck `json:"validation_checks"`
	OverallStatus        CheckStatus       `json:"overall_validation_status"`
	CrossValidationScore float64           `json:"cross_validation_score"`
}

// TriageNotes buckets failing and erroring tests into priority tiers.
// Tier order is fixed: high, medium, low.
type TriageNotes struct {
	HighPriority   []string `json:"high_priority"`
	MediumPriority []string `json:"medium_priority"`
	LowPriority    []string `json:"low_priority"`
}

// ReportMetadata stamps an analysis report.
type ReportMetadata struct {
	AnalyzedBy string    `json:"analyzed_by"`
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
}

// AnalysisReport is the immutable analysis output for one run.
type AnalysisReport struct {
	TestRunID       RunID             `json:"test_run_id"`
	Summary         Summary           `json:"summary"`
	Detailed        DetailedAnalysis  `json:"detailed_analysis"`
	Validation      ValidationResults `json:"validation_results"`
	Recommendations []string          `json:"recommendations"`
	Triage          TriageNotes       `json:"triage_notes"`
	Metadata        ReportMetadata    `json:"metadata"`
}
