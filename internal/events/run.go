package events

import "github.com/webprobe-dev/webprobe/internal/core"

// Event type constants for the run lifecycle.
const (
	TypeRunStarted     = "run_started"
	TypeRunProgress    = "run_progress"
	TypePhaseStarted   = "phase_started"
	TypePhaseCompleted = "phase_completed"
	TypeRunCompleted   = "run_completed"
	TypeRunFailed      = "run_failed"
)

// RunStartedEvent signals that a pipeline run has begun.
type RunStartedEvent struct {
	BaseEvent
	TargetURL string `json:"target_url"`
}

// NewRunStartedEvent creates a run started event.
func NewRunStartedEvent(runID, targetURL string) RunStartedEvent {
	return RunStartedEvent{
		BaseEvent: NewBaseEvent(TypeRunStarted, runID),
		TargetURL: targetURL,
	}
}

// RunProgressEvent carries an advisory progress update.
type RunProgressEvent struct {
	BaseEvent
	Stage   string `json:"stage"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// NewRunProgressEvent creates a progress event.
func NewRunProgressEvent(runID, stage string, percent int, message string) RunProgressEvent {
	return RunProgressEvent{
		BaseEvent: NewBaseEvent(TypeRunProgress, runID),
		Stage:     stage,
		Percent:   percent,
		Message:   message,
	}
}

// PhaseStartedEvent signals that a pipeline phase has begun.
type PhaseStartedEvent struct {
	BaseEvent
	Phase core.Phase `json:"phase"`
}

// NewPhaseStartedEvent creates a phase started event.
func NewPhaseStartedEvent(runID string, phase core.Phase) PhaseStartedEvent {
	return PhaseStartedEvent{
		BaseEvent: NewBaseEvent(TypePhaseStarted, runID),
		Phase:     phase,
	}
}

// PhaseCompletedEvent signals that a pipeline phase has finished.
type PhaseCompletedEvent struct {
	BaseEvent
	Phase    core.Phase       `json:"phase"`
	Status   core.PhaseStatus `json:"status"`
	Degraded bool             `json:"degraded"`
}

// NewPhaseCompletedEvent creates a phase completed event.
func NewPhaseCompletedEvent(runID string, phase core.Phase, status core.PhaseStatus, degraded bool) PhaseCompletedEvent {
	return PhaseCompletedEvent{
		BaseEvent: NewBaseEvent(TypePhaseCompleted, runID),
		Phase:     phase,
		Status:    status,
		Degraded:  degraded,
	}
}

// RunCompletedEvent signals that a run finished with a verdict.
type RunCompletedEvent struct {
	BaseEvent
	Verdict core.Verdict `json:"verdict"`
}

// NewRunCompletedEvent creates a run completed event.
func NewRunCompletedEvent(runID string, verdict core.Verdict) RunCompletedEvent {
	return RunCompletedEvent{
		BaseEvent: NewBaseEvent(TypeRunCompleted, runID),
		Verdict:   verdict,
	}
}

// RunFailedEvent signals that a run aborted on a controller defect.
type RunFailedEvent struct {
	BaseEvent
	Error string `json:"error"`
}

// NewRunFailedEvent creates a run failed event.
func NewRunFailedEvent(runID, errMsg string) RunFailedEvent {
	return RunFailedEvent{
		BaseEvent: NewBaseEvent(TypeRunFailed, runID),
		Error:     errMsg,
	}
}
