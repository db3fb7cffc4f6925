package analysis

import "github.com/webprobe-dev/webprobe/internal/core"

// artifactSignals is the number of independent capture signals that feed a
// record's quality score.
const artifactSignals = 5

// AnalyzeArtifacts scores artifact capture per record and summarizes
// batch-wide coverage.
func AnalyzeArtifacts(records []core.TestExecutionRecord) core.ArtifactAnalysis {
	var out core.ArtifactAnalysis
	covered := 0

	for _, rec := range records {
		out.ScreenshotCount += len(rec.Screenshots)
		out.ConsoleLogCount += len(rec.ConsoleLogs)
		if len(rec.Screenshots) > 0 {
			out.Coverage.TestsWithScreenshots++
		}
		if len(rec.ConsoleLogs) > 0 {
			out.Coverage.TestsWithConsoleLogs++
		}
		// Coverage counts hard evidence only; console logs and step
		// metrics raise the quality score but not the covered ratio.
		if len(rec.Artifacts) > 0 || len(rec.Screenshots) > 0 {
			covered++
		}

		out.Quality = append(out.Quality, core.ArtifactQuality{
			TestID:        rec.TestID,
			QualityScore:  artifactQualityScore(rec),
			ArtifactCount: rec.ArtifactCount(),
		})
	}

	if len(records) > 0 {
		out.Coverage.OverallCoverage = float64(covered) / float64(len(records))
	}
	return out
}

// artifactQualityScore counts the capture signals present on a record:
// screenshots, console logs, artifact references, step-level artifacts and
// step-level performance metrics.
func artifactQualityScore(rec core.TestExecutionRecord) float64 {
	signals := 0
	if len(rec.Screenshots) > 0 {
		signals++
	}
	if len(rec.ConsoleLogs) > 0 {
		signals++
	}
	if len(rec.Artifacts) > 0 {
		signals++
	}
	stepArtifacts, stepMetrics := false, false
	for _, step := range rec.Steps {
		if len(step.Artifacts) > 0 {
			stepArtifacts = true
		}
		if len(step.PerformanceMetrics) > 0 {
			stepMetrics = true
		}
	}
	if stepArtifacts {
		signals++
	}
	if stepMetrics {
		signals++
	}
	return float64(signals) / artifactSignals
}
