package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webprobe-dev/webprobe/internal/core"
)

func TestRegistryLifecycle(t *testing.T) {
	registry := NewRegistry()
	id := core.RunID("test_20260831_120000")

	require.NoError(t, registry.Begin(id))

	registry.Progress(id, "execution", 50, "Executing selected test cases")
	state, ok := registry.Get(id)
	require.True(t, ok)
	assert.Equal(t, core.RunStatusRunning, state.Status)
	assert.Equal(t, "execution", state.Stage)
	assert.Equal(t, 50, state.Percent)

	registry.Complete(id, core.VerdictGood)
	state, _ = registry.Get(id)
	assert.Equal(t, core.RunStatusCompleted, state.Status)
	assert.Equal(t, 100, state.Percent)
	assert.Equal(t, core.VerdictGood, state.Verdict)
}

func TestRegistryConflictWhileRunning(t *testing.T) {
	registry := NewRegistry()
	id := core.RunID("test_20260831_120000")

	require.NoError(t, registry.Begin(id))
	err := registry.Begin(id)
	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatConflict))

	// A finished run can be restarted under the same ID.
	registry.Complete(id, core.VerdictGood)
	assert.NoError(t, registry.Begin(id))
}

func TestRegistryFailZeroesProgress(t *testing.T) {
	registry := NewRegistry()
	id := core.RunID("test_20260831_120000")

	require.NoError(t, registry.Begin(id))
	registry.Progress(id, "analysis", 80, "Analyzing results")
	registry.Fail(id, errors.New("controller defect"))

	state, _ := registry.Get(id)
	assert.Equal(t, core.RunStatusFailed, state.Status)
	assert.Zero(t, state.Percent)
	assert.Equal(t, "controller defect", state.Error)
}

func TestRegistryDropsUpdatesAfterTerminal(t *testing.T) {
	registry := NewRegistry()
	id := core.RunID("test_20260831_120000")

	require.NoError(t, registry.Begin(id))
	registry.Complete(id, core.VerdictFair)
	registry.Progress(id, "planning", 10, "late update")

	state, _ := registry.Get(id)
	assert.Equal(t, "done", state.Stage)
	assert.Equal(t, 100, state.Percent)
}

func TestRegistryConcurrentRunsIsolated(t *testing.T) {
	registry := NewRegistry()
	ids := []core.RunID{"test_20260831_120000", "test_20260831_120001", "test_20260831_120002"}

	var wg sync.WaitGroup
	for i, id := range ids {
		require.NoError(t, registry.Begin(id))
		wg.Add(1)
		go func(id core.RunID, percent int) {
			defer wg.Done()
			registry.Progress(id, "execution", percent, "running")
		}(id, (i+1)*10)
	}
	wg.Wait()

	for i, id := range ids {
		state, ok := registry.Get(id)
		require.True(t, ok)
		assert.Equal(t, (i+1)*10, state.Percent)
	}
	assert.Len(t, registry.List(), 3)
}

func TestManagerRunTracksRegistry(t *testing.T) {
	registry := NewRegistry()
	manager := NewManager(newTestController(
		&mockGenerator{cases: descriptors(4)},
		&mockRanker{},
		&mockExecutor{records: records(4, 0)},
	), registry, nil)

	report, err := manager.Run(context.Background(), RunRequest{
		RunID:        core.RunID("test_20260831_120000"),
		Requirements: core.Requirements{TargetURL: "https://example.com"},
		SelectCount:  4,
	})
	require.NoError(t, err)
	assert.Equal(t, core.VerdictExcellent, report.FinalVerdict)

	state, ok := registry.Get(core.RunID("test_20260831_120000"))
	require.True(t, ok)
	assert.Equal(t, core.RunStatusCompleted, state.Status)
	assert.Equal(t, core.VerdictExcellent, state.Verdict)
}

func TestManagerRejectsDuplicateActiveRun(t *testing.T) {
	registry := NewRegistry()
	manager := NewManager(newTestController(
		&mockGenerator{cases: descriptors(1)},
		&mockRanker{},
		&mockExecutor{records: records(1, 0)},
	), registry, nil)

	id := core.RunID("test_20260831_120000")
	require.NoError(t, registry.Begin(id))

	_, err := manager.Run(context.Background(), RunRequest{
		RunID:        id,
		Requirements: core.Requirements{TargetURL: "https://example.com"},
	})
	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatConflict))
}

func TestManagerFailureReflectedInRegistry(t *testing.T) {
	registry := NewRegistry()
	manager := NewManager(newTestController(
		&mockGenerator{cases: descriptors(2)},
		&mockRanker{},
		&mockExecutor{panicWith: "boom"},
	), registry, nil)

	id := core.RunID("test_20260831_120000")
	_, err := manager.Run(context.Background(), RunRequest{
		RunID:        id,
		Requirements: core.Requirements{TargetURL: "https://example.com"},
		SelectCount:  2,
	})
	require.Error(t, err)

	state, _ := registry.Get(id)
	assert.Equal(t, core.RunStatusFailed, state.Status)
	assert.Zero(t, state.Percent)
	assert.NotEmpty(t, state.Error)
}
