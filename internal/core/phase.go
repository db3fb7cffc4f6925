package core

import "fmt"

// Phase represents a stage in the campaign pipeline.
type Phase string

const (
	// PhasePlanning is the first phase where candidate test cases are generated.
	PhasePlanning Phase = "planning"

	// PhaseRanking is the second phase where candidates are ranked and the
	// execution subset is selected.
	PhaseRanking Phase = "ranking"

	// PhaseExecution is the third phase where selected cases run against the
	// target and produce execution records.
	PhaseExecution Phase = "execution"

	// PhaseAnalysis is the fourth phase where the record batch is analyzed,
	// validated and triaged.
	PhaseAnalysis Phase = "analysis"

	// PhaseReporting is the final phase where the workflow report is assembled.
	// It never aborts the run.
	PhaseReporting Phase = "reporting"

	// PhaseDone is the terminal state after all phases complete.
	// It is NOT an executable phase — it signals "run fully done".
	PhaseDone Phase = "done"
)

// AllPhases returns the executable phases in pipeline order.
func AllPhases() []Phase {
	return []Phase{PhasePlanning, PhaseRanking, PhaseExecution, PhaseAnalysis, PhaseReporting}
}

// PhaseOrder returns the numeric order of a phase (0-indexed).
func PhaseOrder(p Phase) int {
	switch p {
	case PhasePlanning:
		return 0
	case PhaseRanking:
		return 1
	case PhaseExecution:
		return 2
	case PhaseAnalysis:
		return 3
	case PhaseReporting:
		return 4
	case PhaseDone:
		return 5
	default:
		return -1
	}
}

// NextPhase returns the phase following the given phase.
// Returns empty string after the terminal phase.
func NextPhase(p Phase) Phase {
	switch p {
	case PhasePlanning:
		return PhaseRanking
	case PhaseRanking:
		return PhaseExecution
	case PhaseExecution:
		return PhaseAnalysis
	case PhaseAnalysis:
		return PhaseReporting
	case PhaseReporting:
		return PhaseDone
	default:
		return ""
	}
}

// ValidPhase checks if a phase string is valid.
func ValidPhase(p Phase) bool {
	switch p {
	case PhasePlanning, PhaseRanking, PhaseExecution, PhaseAnalysis, PhaseReporting, PhaseDone:
		return true
	default:
		return false
	}
}

// ParsePhase converts a string to a Phase with validation.
func ParsePhase(s string) (Phase, error) {
	p := Phase(s)
	if !ValidPhase(p) {
		return "", fmt.Errorf("invalid phase: %s", s)
	}
	return p, nil
}

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// ProgressPercent returns the advisory progress value reported when the
// phase begins. PhaseDone maps to 100.
func (p Phase) ProgressPercent() int {
	switch p {
	case PhasePlanning:
		return 10
	case PhaseRanking:
		return 30
	case PhaseExecution:
		return 50
	case PhaseAnalysis:
		return 80
	case PhaseReporting:
		return 95
	case PhaseDone:
		return 100
	default:
		return 0
	}
}

// Description returns a human-readable description of the phase.
func (p Phase) Description() string {
	switch p {
	case PhasePlanning:
		return "Generating candidate test cases"
	case PhaseRanking:
		return "Ranking and selecting test cases for execution"
	case PhaseExecution:
		return "Executing selected test cases"
	case PhaseAnalysis:
		return "Analyzing results and performing validation"
	case PhaseReporting:
		return "Generating final report"
	case PhaseDone:
		return "Run completed"
	default:
		return "Unknown phase"
	}
}
