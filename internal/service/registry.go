package service

import (
	"sort"
	"sync"
	"time"

	"github.com/webprobe-dev/webprobe/internal/core"
)

// RunState is a point-in-time snapshot of one run's progress. Snapshots are
// values; callers never share mutable state with the registry.
type RunState struct {
	RunID     core.RunID     `json:"run_id"`
	Status    core.RunStatus `json:"status"`
	Stage     string         `json:"stage,omitempty"`
	Percent   int            `json:"percent"`
	Message   string         `json:"message,omitempty"`
	Verdict   core.Verdict   `json:"verdict,omitempty"`
	Error     string         `json:"error,omitempty"`
	StartedAt time.Time      `json:"started_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Registry tracks run state keyed by run ID so concurrent runs never share
// mutable progress state. Terminal entries are kept for status queries.
type Registry struct {
	mu   sync.RWMutex
	runs map[core.RunID]RunState
	now  func() time.Time
}

// NewRegistry creates an empty run registry.
func NewRegistry() *Registry {
	return &Registry{
		runs: make(map[core.RunID]RunState),
		now:  time.Now,
	}
}

// Begin registers a run as active. Registering an ID that is already running
// is a conflict.
func (r *Registry) Begin(id core.RunID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.runs[id]; ok && existing.Status == core.RunStatusRunning {
		return core.ErrConflict(core.CodeRunAlreadyActive, "run already active: "+id.String())
	}
	now := r.now()
	r.runs[id] = RunState{
		RunID:     id,
		Status:    core.RunStatusRunning,
		StartedAt: now,
		UpdatedAt: now,
	}
	return nil
}

// Progress updates a running run's advisory progress. Updates for unknown or
// finished runs are dropped.
func (r *Registry) Progress(id core.RunID, stage string, percent int, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.runs[id]
	if !ok || state.Status != core.RunStatusRunning {
		return
	}
	state.Stage = stage
	state.Percent = percent
	state.Message = message
	state.UpdatedAt = r.now()
	r.runs[id] = state
}

// Complete marks a run finished with its verdict.
func (r *Registry) Complete(id core.RunID, verdict core.Verdict) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.runs[id]
	if !ok {
		return
	}
	state.Status = core.RunStatusCompleted
	state.Percent = core.PhaseDone.ProgressPercent()
	state.Stage = core.PhaseDone.String()
	state.Verdict = verdict
	state.UpdatedAt = r.now()
	r.runs[id] = state
}

// Fail marks a run failed. A failed run reports zero progress.
func (r *Registry) Fail(id core.RunID, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.runs[id]
	if !ok {
		return
	}
	state.Status = core.RunStatusFailed
	state.Percent = 0
	if err != nil {
		state.Error = err.Error()
	}
	state.UpdatedAt = r.now()
	r.runs[id] = state
}

// Get returns a run's state snapshot.
func (r *Registry) Get(id core.RunID) (RunState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.runs[id]
	return state, ok
}

// List returns all known runs, newest first.
func (r *Registry) List() []RunState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	states := make([]RunState, 0, len(r.runs))
	for _, state := range r.runs {
		states = append(states, state)
	}
	sort.Slice(states, func(i, j int) bool {
		if !states[i].StartedAt.Equal(states[j].StartedAt) {
			return states[i].StartedAt.After(states[j].StartedAt)
		}
		return states[i].RunID < states[j].RunID
	})
	return states
}
