package analysis

import (
	"sort"

	"github.com/webprobe-dev/webprobe/internal/core"
)

// AnalyzePerformance partitions a batch by the execution-time threshold and
// flattens step-level performance metrics into samples.
func AnalyzePerformance(records []core.TestExecutionRecord, limits Thresholds) core.PerformanceAnalysis {
	out := core.PerformanceAnalysis{
		TotalTestsAnalyzed: len(records),
		Threshold:          limits.MaxExecutionTime,
	}

	for _, rec := range records {
		out.Timings = append(out.Timings, core.TestTiming{
			TestID:        rec.TestID,
			ExecutionTime: rec.ExecutionTime,
			Status:        rec.Status,
		})

		if rec.ExecutionTime > limits.MaxExecutionTime {
			out.SlowTests = append(out.SlowTests, core.SlowTest{
				TestID:            rec.TestID,
				ExecutionTime:     rec.ExecutionTime,
				ThresholdExceeded: rec.ExecutionTime - limits.MaxExecutionTime,
			})
		}

		for _, step := range rec.Steps {
			if len(step.PerformanceMetrics) == 0 {
				continue
			}
			names := make([]string, 0, len(step.PerformanceMetrics))
			for name := range step.PerformanceMetrics {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				out.Metrics = append(out.Metrics, core.MetricSample{
					TestID: rec.TestID,
					Name:   name,
					Value:  step.PerformanceMetrics[name],
				})
			}
		}
	}

	out.SlowTestCount = len(out.SlowTests)
	return out
}
