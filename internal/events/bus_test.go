package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webprobe-dev/webprobe/internal/core"
)

func TestPublishSubscribe(t *testing.T) {
	bus := New(10)
	defer bus.Close()

	ch := bus.Subscribe()
	bus.Publish(NewRunStartedEvent("test_20260831_120000", "https://example.com"))

	select {
	case ev := <-ch:
		assert.Equal(t, TypeRunStarted, ev.EventType())
		assert.Equal(t, "test_20260831_120000", ev.RunID())
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestSubscribeFiltersByType(t *testing.T) {
	bus := New(10)
	defer bus.Close()

	ch := bus.Subscribe(TypePhaseCompleted)
	bus.Publish(NewRunProgressEvent("test_x", "planning", 10, "generating"))
	bus.Publish(NewPhaseCompletedEvent("test_x", core.PhasePlanning, core.PhaseStatusSuccess, false))

	ev := <-ch
	assert.Equal(t, TypePhaseCompleted, ev.EventType())
	select {
	case extra := <-ch:
		t.Fatalf("unexpected event %s", extra.EventType())
	default:
	}
}

func TestRingBufferDropsOldest(t *testing.T) {
	bus := New(2)
	defer bus.Close()

	ch := bus.Subscribe()
	for i := 0; i < 5; i++ {
		bus.Publish(NewRunProgressEvent("test_x", "execution", 50, "case"))
	}

	assert.Positive(t, bus.DroppedCount())
	// The buffer still holds the most recent events.
	assert.Len(t, ch, 2)
}

func TestPriorityNeverDrops(t *testing.T) {
	bus := New(1)
	defer bus.Close()

	ch := bus.SubscribePriority()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 3; i++ {
			bus.PublishPriority(NewRunFailedEvent("test_x", "defect"))
		}
	}()

	for i := 0; i < 3; i++ {
		select {
		case ev := <-ch:
			assert.Equal(t, TypeRunFailed, ev.EventType())
		case <-time.After(time.Second):
			t.Fatal("priority event not delivered")
		}
	}
	<-done
	assert.Zero(t, bus.DroppedCount())
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := New(10)
	defer bus.Close()

	ch := bus.Subscribe()
	bus.Unsubscribe(ch)

	_, open := <-ch
	assert.False(t, open)
}

func TestPublishAfterCloseIsNoop(t *testing.T) {
	bus := New(10)
	bus.Close()

	assert.NotPanics(t, func() {
		bus.Publish(NewRunStartedEvent("test_x", "https://example.com"))
	})
}

func TestEventConstructors(t *testing.T) {
	started := NewRunStartedEvent("test_x", "https://example.com")
	require.Equal(t, "https://example.com", started.TargetURL)
	assert.WithinDuration(t, time.Now(), started.Timestamp(), time.Second)

	completed := NewRunCompletedEvent("test_x", core.VerdictGood)
	assert.Equal(t, TypeRunCompleted, completed.EventType())
	assert.Equal(t, core.VerdictGood, completed.Verdict)

	phase := NewPhaseCompletedEvent("test_x", core.PhaseAnalysis, core.PhaseStatusFailed, true)
	assert.True(t, phase.Degraded)
	assert.Equal(t, core.PhaseAnalysis, phase.Phase)
}
