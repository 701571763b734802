package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxmetric/call-timeline/internal/core/event"
)

func TestSynchronize_ActiveBoundariesInclusive(t *testing.T) {
	events := []event.TemporalEvent{
		{Id: "a", StartTime: 10, EndTime: event.End(20)},
	}

	for _, tc := range []struct {
		at     float64
		active bool
	}{
		{9.999, false},
		{10, true},
		{15, true},
		{20, true},
		{20.001, false},
	} {
		snap := Synchronize(events, tc.at)
		if tc.active {
			require.Len(t, snap.ActiveEvents, 1, "at=%v", tc.at)
			assert.Equal(t, "a", snap.ActiveEvents[0].Id)
		} else {
			assert.Empty(t, snap.ActiveEvents, "at=%v", tc.at)
		}
	}
}

func TestSynchronize_PointEventWindow(t *testing.T) {
	events := []event.TemporalEvent{{Id: "p", StartTime: 10}}

	assert.Len(t, Synchronize(events, 10).ActiveEvents, 1)
	assert.Len(t, Synchronize(events, 10.5).ActiveEvents, 1)
	assert.Len(t, Synchronize(events, 11).ActiveEvents, 1)
	assert.Empty(t, Synchronize(events, 11.5).ActiveEvents)
	assert.Empty(t, Synchronize(events, 9.9).ActiveEvents)
}

func TestSynchronize_PreviousAndNext(t *testing.T) {
	events := []event.TemporalEvent{
		{Id: "a", StartTime: 10},
		{Id: "b", StartTime: 20},
		{Id: "c", StartTime: 30},
	}

	snap := Synchronize(events, 22)

	require.NotNil(t, snap.PreviousEvent)
	assert.Equal(t, "b", snap.PreviousEvent.Id)
	require.NotNil(t, snap.NextEvent)
	assert.Equal(t, "c", snap.NextEvent.Id)

	require.NotNil(t, snap.TimeSincePrevious)
	assert.InDelta(t, 2.0, *snap.TimeSincePrevious, 1e-9)
	require.NotNil(t, snap.TimeUntilNext)
	assert.InDelta(t, 8.0, *snap.TimeUntilNext, 1e-9)
}

func TestSynchronize_EventStartingAtTIsPrevious(t *testing.T) {
	events := []event.TemporalEvent{
		{Id: "a", StartTime: 10},
		{Id: "b", StartTime: 20},
	}

	snap := Synchronize(events, 10)

	require.NotNil(t, snap.PreviousEvent)
	assert.Equal(t, "a", snap.PreviousEvent.Id)
	require.NotNil(t, snap.NextEvent)
	assert.Equal(t, "b", snap.NextEvent.Id)
}

func TestSynchronize_BeforeFirstEvent(t *testing.T) {
	events := []event.TemporalEvent{{Id: "a", StartTime: 10}}

	snap := Synchronize(events, 5)

	assert.Nil(t, snap.PreviousEvent)
	assert.Nil(t, snap.TimeSincePrevious)
	require.NotNil(t, snap.NextEvent)
	assert.Equal(t, "a", snap.NextEvent.Id)
	assert.Zero(t, snap.Progress)
}

func TestSynchronize_AfterLastEvent(t *testing.T) {
	events := []event.TemporalEvent{{Id: "a", StartTime: 10}}

	snap := Synchronize(events, 50)

	require.NotNil(t, snap.PreviousEvent)
	assert.Nil(t, snap.NextEvent)
	assert.Nil(t, snap.TimeUntilNext)
	assert.Zero(t, snap.Progress)
}

func TestSynchronize_ProgressBetweenNeighbors(t *testing.T) {
	events := []event.TemporalEvent{
		{Id: "a", StartTime: 10},
		{Id: "b", StartTime: 20},
	}

	assert.InDelta(t, 0.0, Synchronize(events, 10).Progress, 1e-9)
	assert.InDelta(t, 0.5, Synchronize(events, 15).Progress, 1e-9)
	assert.InDelta(t, 0.9, Synchronize(events, 19).Progress, 1e-9)
}

func TestSynchronize_SimultaneousStartsAllActive(t *testing.T) {
	events := []event.TemporalEvent{
		{Id: "a", StartTime: 10, EndTime: event.End(30)},
		{Id: "b", StartTime: 10, EndTime: event.End(25)},
	}

	snap := Synchronize(events, 12)

	assert.Len(t, snap.ActiveEvents, 2)
	require.NotNil(t, snap.PreviousEvent)
	assert.Equal(t, "b", snap.PreviousEvent.Id)
}

func TestSynchronize_Empty(t *testing.T) {
	snap := Synchronize(nil, 10)

	assert.Empty(t, snap.ActiveEvents)
	assert.Nil(t, snap.PreviousEvent)
	assert.Nil(t, snap.NextEvent)
	assert.Zero(t, snap.Progress)
}
