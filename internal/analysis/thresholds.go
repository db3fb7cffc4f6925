// Package analysis turns raw execution records into statistics,
// cross-validated findings, triage classifications and recommendations.
package analysis

// Thresholds holds the tunable limits the analyzers and the recommendation
// rules evaluate against.
type Thresholds struct {
	// MaxExecutionTime is the per-test duration limit in seconds.
	MaxExecutionTime float64

	// MinSuccessRate is the minimum acceptable batch success rate.
	MinSuccessRate float64

	// MaxErrorRate is the maximum acceptable failure-pattern rate.
	MaxErrorRate float64

	// MinTestCount is the batch size below which expanding coverage is
	// recommended.
	MinTestCount int
}

// DefaultThresholds returns the standard analysis limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxExecutionTime: 30.0,
		MinSuccessRate:   0.8,
		MaxErrorRate:     0.2,
		MinTestCount:     10,
	}
}
