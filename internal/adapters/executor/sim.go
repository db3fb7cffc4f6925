// Package executor provides execution backends for the execution phase.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/webprobe-dev/webprobe/internal/core"
	"github.com/webprobe-dev/webprobe/internal/logging"
)

// SimExecutor runs test cases against a simulated browser. It produces
// deterministic outcomes for pipeline development and demos: every fourth
// case fails, and execution time grows linearly with the case index.
type SimExecutor struct {
	logger *logging.Logger
	now    func() time.Time
}

// SimOption configures a SimExecutor.
type SimOption func(*SimExecutor)

// WithLogger sets the executor's logger.
func WithLogger(logger *logging.Logger) SimOption {
	return func(e *SimExecutor) { e.logger = logger }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) SimOption {
	return func(e *SimExecutor) { e.now = now }
}

// NewSimExecutor creates a simulated executor.
func NewSimExecutor(opts ...SimOption) *SimExecutor {
	e := &SimExecutor{
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements core.Executor.
func (e *SimExecutor) Name() string { return "sim" }

// Execute implements core.Executor. Per-test failures are expressed on the
// records; only cancellation aborts the batch.
func (e *SimExecutor) Execute(ctx context.Context, cases []core.TestCaseDescriptor, runID core.RunID) ([]core.TestExecutionRecord, error) {
	log := e.logger.WithRun(runID.String())
	records := make([]core.TestExecutionRecord, 0, len(cases))

	for i, tc := range cases {
		if err := ctx.Err(); err != nil {
			return nil, core.ErrExecution(core.CodeExecutorFailed, "execution canceled").WithCause(err)
		}

		log.WithTest(tc.ID).Debug("executing test case", "title", tc.Title)
		records = append(records, e.runCase(i, tc, runID))
	}
	return records, nil
}

func (e *SimExecutor) runCase(index int, tc core.TestCaseDescriptor, runID core.RunID) core.TestExecutionRecord {
	start := e.now()
	rec := core.NewTestExecutionRecord(tc.ID, tc.Title, tc.Category, start)

	duration := 5.0 + 0.5*float64(index)
	failed := index%4 == 0

	for j, step := range tc.Steps {
		stepRec := core.StepExecutionRecord{
			StepIndex: j,
			Action:    step.Action,
			Target:    step.Target,
			Success:   true,
			Timestamp: start.Add(time.Duration(j) * time.Second),
		}
		if step.Action == core.ActionPerformanceEnd {
			stepRec.PerformanceMetrics = map[string]float64{
				"load_time_ms": 800 + 50*float64(index),
				"dom_nodes":    1200 + 10*float64(index),
			}
		}
		if step.Action == core.ActionScreenshot {
			stepRec.Artifacts = []string{artifactRef(runID, tc.ID, "step")}
		}
		rec.Steps = append(rec.Steps, stepRec)
	}

	rec.Screenshots = append(rec.Screenshots, fmt.Sprintf("%s/%s_final.png", runID, tc.ID))
	rec.Artifacts = append(rec.Artifacts, artifactRef(runID, tc.ID, "trace"))
	rec.ConsoleLogs = append(rec.ConsoleLogs, core.ConsoleLogEntry{
		Type:      "info",
		Text:      "Mock console log",
		Timestamp: start,
	})

	if failed {
		rec.Status = core.TestStatusFailed
		rec.FailureReason = "Simulated test failure"
		rec.AddError("mock_error", "Simulated test failure", start.Add(time.Duration(duration * float64(time.Second))))
	} else {
		rec.Status = core.TestStatusPassed
	}

	rec.EndTime = start.Add(time.Duration(duration * float64(time.Second)))
	rec.ExecutionTime = duration
	return *rec
}

func artifactRef(runID core.RunID, testID, kind string) string {
	return fmt.Sprintf("%s/%s_%s_%s", runID, testID, kind, uuid.NewString())
}
