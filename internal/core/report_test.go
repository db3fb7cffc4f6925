package core

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerdictForRate(t *testing.T) {
	tests := []struct {
		rate float64
		want Verdict
	}{
		{1.0, VerdictExcellent},
		{0.9, VerdictExcellent},
		{0.89, VerdictGood},
		{0.8, VerdictGood},
		{0.79, VerdictFair},
		{0.6, VerdictFair},
		{0.59, VerdictPoor},
		{0.0, VerdictPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerdictForRate(tt.rate), "rate %v", tt.rate)
	}
}

func TestNewRunID(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 5, 9, 0, time.UTC)
	id := NewRunID(now)
	assert.Equal(t, RunID("test_20260831_140509"), id)
	assert.Regexp(t, regexp.MustCompile(`^test_\d{8}_\d{6}$`), id.String())
	require.NoError(t, id.Validate())

	err := RunID("").Validate()
	require.Error(t, err)
	assert.Equal(t, ErrCatValidation, GetCategory(err))
}

func TestWorkflowReportRecordPhase(t *testing.T) {
	r := NewWorkflowReport("test_20260831_140509", time.Now())

	require.NoError(t, r.RecordPhase(&PhaseResult{Phase: PhasePlanning, Status: PhaseStatusSuccess, Duration: 1.5}))
	require.NoError(t, r.RecordPhase(&PhaseResult{Phase: PhaseRanking, Status: PhaseStatusFailed, Duration: 0.5}))

	err := r.RecordPhase(&PhaseResult{Phase: PhasePlanning})
	require.Error(t, err)
	assert.Equal(t, ErrCatController, GetCategory(err))

	assert.InDelta(t, 2.0, r.PhaseDurationTotal(), 1e-9)
	assert.False(t, r.AllPhasesSucceeded())
}

func TestWorkflowReportTerminal(t *testing.T) {
	r := NewWorkflowReport("test_x", time.Now())
	r.Complete(time.Now())
	assert.Equal(t, RunStatusCompleted, r.Status)

	r2 := NewWorkflowReport("test_y", time.Now())
	r2.Fail(ErrController(CodeControllerDefect, "boom"), time.Now())
	assert.Equal(t, RunStatusFailed, r2.Status)
	assert.Contains(t, r2.Error, "boom")
}

func TestPhaseOrdering(t *testing.T) {
	phases := AllPhases()
	require.Len(t, phases, 5)
	for i, p := range phases {
		assert.Equal(t, i, PhaseOrder(p))
	}
	assert.Equal(t, PhaseRanking, NextPhase(PhasePlanning))
	assert.Equal(t, PhaseDone, NextPhase(PhaseReporting))
	assert.Equal(t, Phase(""), NextPhase(PhaseDone))

	// Progress is strictly increasing along the pipeline.
	last := 0
	for _, p := range append(phases, PhaseDone) {
		assert.Greater(t, p.ProgressPercent(), last)
		last = p.ProgressPercent()
	}
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, PriorityHigh, ParsePriority("high"))
	assert.Equal(t, PriorityUnknown, ParsePriority("urgent"))
	assert.Equal(t, ActionDrag, ParseAction("drag"))
	assert.Equal(t, ActionUnknown, ParseAction("hover"))
	assert.Equal(t, CategoryEdgeCase, ParseCategory("edge_case"))
	assert.Equal(t, CategoryUnknown, ParseCategory("smoke"))

	_, err := ParsePhase("deploy")
	require.Error(t, err)
	p, err := ParsePhase("execution")
	require.NoError(t, err)
	assert.Equal(t, PhaseExecution, p)
}

func TestDomainErrorPredicates(t *testing.T) {
	genErr := ErrGeneration(CodeGeneratorFailed, "llm unavailable")
	assert.True(t, IsPhaseError(genErr))
	assert.True(t, IsCategory(genErr, ErrCatGeneration))

	ctrlErr := ErrController(CodeControllerDefect, "nil executor")
	assert.False(t, IsPhaseError(ctrlErr))

	wrapped := ErrExecution(CodeExecutorFailed, "browser crashed").WithCause(assert.AnError)
	assert.ErrorIs(t, wrapped, assert.AnError)
	assert.Equal(t, ErrCatExecution, GetCategory(wrapped))
}
