package analysis

import "github.com/webprobe-dev/webprobe/internal/core"

// Triage buckets failing and erroring tests into priority tiers. Failed
// tests with page errors and all erroring tests are high priority; slow
// failures are medium; remaining failures are low. Passed tests are never
// triaged.
func Triage(records []core.TestExecutionRecord, limits Thresholds) core.TriageNotes {
	var notes core.TriageNotes
	for _, rec := range records {
		switch rec.Status {
		case core.TestStatusFailed:
			switch {
			case rec.HasErrorType(core.ErrorTypePageError):
				notes.HighPriority = append(notes.HighPriority, rec.TestID+": Page errors detected - investigate immediately")
			case rec.ExecutionTime > limits.MaxExecutionTime:
				notes.MediumPriority = append(notes.MediumPriority, rec.TestID+": Performance issues - timeout or slow execution")
			default:
				notes.LowPriority = append(notes.LowPriority, rec.TestID+": General test failure - review test logic")
			}
		case core.TestStatusError:
			notes.HighPriority = append(notes.HighPriority, rec.TestID+": Test execution error - fix test infrastructure")
		}
	}
	return notes
}
