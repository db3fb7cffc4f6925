package core

import (
	"fmt"
	"time"
)

// TestStatus is the lifecycle state of a single test execution.
type TestStatus string

const (
	TestStatusRunning TestStatus = "running"
	TestStatusPassed  TestStatus = "passed"
	TestStatusFailed  TestStatus = "failed"
	TestStatusError   TestStatus = "error"
)

// IsTerminal reports whether the status is final. A record never reverts
// from a terminal status.
func (s TestStatus) IsTerminal() bool {
	switch s {
	case TestStatusPassed, TestStatusFailed, TestStatusError:
		return true
	default:
		return false
	}
}

// Well-known error entry types. The type field is an open set — executors
// may record anything — but these two have fixed meaning in triage and
// error analysis.
const (
	ErrorTypePageError   = "page_error"
	ErrorTypeTestFailure = "test_failure"
)

// ErrorEntry is a single error logged during a test execution.
type ErrorEntry struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ConsoleLogEntry is a browser console message captured during execution.
type ConsoleLogEntry struct {
	Type      string    `json:"type"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// StepExecutionRecord is the outcome of one executed step. It is append-only
// during execution and immutable once the step completes.
type StepExecutionRecord struct {
	StepIndex          int                `json:"step_index"`
	Action             Action             `json:"action"`
	Target             string             `json:"target,omitempty"`
	Success            bool               `json:"success"`
	Error              string             `json:"error,omitempty"`
	PerformanceMetrics map[string]float64 `json:"performance_metrics,omitempty"`
	Artifacts          []string           `json:"artifacts,omitempty"`
	Timestamp          time.Time          `json:"timestamp"`
}

// TestExecutionRecord is the full outcome of a single test. It is owned and
// mutated by the executor while the test runs, frozen at completion, and
// only ever read by the analysis phase.
type TestExecutionRecord struct {
	TestID        string                `json:"test_id"`
	Title         string                `json:"title"`
	Category      Category              `json:"category"`
	Status        TestStatus            `json:"status"`
	StartTime     time.Time             `json:"start_time"`
	EndTime       time.Time             `json:"end_time"`
	ExecutionTime float64               `json:"execution_time"`
	Steps         []StepExecutionRecord `json:"steps_executed"`
	Errors        []ErrorEntry          `json:"errors,omitempty"`
	Screenshots   []string              `json:"screenshots,omitempty"`
	Artifacts     []string              `json:"artifacts,omitempty"`
	ConsoleLogs   []ConsoleLogEntry     `json:"console_logs,omitempty"`
	FailureReason string                `json:"failure_reason,omitempty"`
}

// NewTestExecutionRecord creates a record in the running state.
func NewTestExecutionRecord(testID, title string, category Category, start time.Time) *TestExecutionRecord {
	return &TestExecutionRecord{
		TestID:    testID,
		Title:     title,
		Category:  category,
		Status:    TestStatusRunning,
		StartTime: start,
	}
}

// Transition moves the record to a new status. Transitions are monotonic:
// a terminal status is never left.
func (r *TestExecutionRecord) Transition(to TestStatus) error {
	if r.Status.IsTerminal() {
		return fmt.Errorf("record %s: cannot transition from terminal status %s to %s", r.TestID, r.Status, to)
	}
	r.Status = to
	return nil
}

// Finish freezes the record: stamps the end time and derives the execution
// time in seconds. A record still running is marked passed, matching the
// executor contract that failures are set explicitly during the run.
func (r *TestExecutionRecord) Finish(end time.Time) {
	r.EndTime = end
	r.ExecutionTime = end.Sub(r.StartTime).Seconds()
	if r.Status == TestStatusRunning {
		r.Status = TestStatusPassed
	}
}

// AddError appends a logged error entry.
func (r *TestExecutionRecord) AddError(errType, message string, at time.Time) {
	r.Errors = append(r.Errors, ErrorEntry{Type: errType, Message: message, Timestamp: at})
}

// HasErrorType reports whether any logged error carries the given type.
func (r *TestExecutionRecord) HasErrorType(errType string) bool {
	for _, e := range r.Errors {
		if e.Type == errType {
			return true
		}
	}
	return false
}

// ArtifactCount returns the number of captured artifact references,
// screenshots included.
func (r *TestExecutionRecord) ArtifactCount() int {
	return len(r.Artifacts) + len(r.Screenshots)
}
