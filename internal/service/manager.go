package service

import (
	"context"
	"time"

	"github.com/webprobe-dev/webprobe/internal/core"
	"github.com/webprobe-dev/webprobe/internal/logging"
)

// Manager couples the controller with the run registry. It is the surface
// the CLI and the HTTP API drive runs through.
type Manager struct {
	controller *Controller
	registry   *Registry
	logger     *logging.Logger
	now        func() time.Time
}

// NewManager creates a run manager.
func NewManager(controller *Controller, registry *Registry, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		controller: controller,
		registry:   registry,
		logger:     logger,
		now:        time.Now,
	}
}

// Registry exposes run state snapshots.
func (m *Manager) Registry() *Registry { return m.registry }

// Run executes a campaign synchronously and tracks it in the registry.
func (m *Manager) Run(ctx context.Context, req RunRequest) (*core.WorkflowReport, error) {
	if req.RunID == "" {
		req.RunID = core.NewRunID(m.now())
	}
	if err := m.registry.Begin(req.RunID); err != nil {
		return nil, err
	}

	// Chain registry tracking onto any caller-supplied observer.
	caller := req.Observer
	req.Observer = core.ProgressFunc(func(stage string, percent int, message string) {
		m.registry.Progress(req.RunID, stage, percent, message)
		if caller != nil {
			caller.OnProgress(stage, percent, message)
		}
	})

	report, err := m.controller.Run(ctx, req)
	if err != nil {
		m.registry.Fail(req.RunID, err)
		return report, err
	}
	m.registry.Complete(req.RunID, report.FinalVerdict)
	return report, nil
}

// Start launches a campaign in the background and returns its run ID
// immediately. The run is detached from the caller's request context.
func (m *Manager) Start(req RunRequest) (core.RunID, error) {
	if req.RunID == "" {
		req.RunID = core.NewRunID(m.now())
	}
	if existing, ok := m.registry.Get(req.RunID); ok && existing.Status == core.RunStatusRunning {
		return "", core.ErrConflict(core.CodeRunAlreadyActive, "run already active: "+req.RunID.String())
	}

	id := req.RunID
	go func() {
		if _, err := m.Run(context.Background(), req); err != nil {
			m.logger.WithRun(id.String()).Error("background run failed", "error", err)
		}
	}()
	return id, nil
}
