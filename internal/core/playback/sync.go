package playback

import (
	"github.com/voxmetric/call-timeline/internal/core/event"
)

// Snapshot is the state of the timeline relative to one playback position.
// Every field is derived; nothing is retained between calls.
type Snapshot struct {
	ActiveEvents      []event.TemporalEvent `json:"activeEvents"`
	NextEvent         *event.TemporalEvent  `json:"nextEvent,omitempty"`
	PreviousEvent     *event.TemporalEvent  `json:"previousEvent,omitempty"`
	Progress          float64               `json:"progress"`
	TimeUntilNext     *float64              `json:"timeUntilNext,omitempty"`
	TimeSincePrevious *float64              `json:"timeSincePrevious,omitempty"`
}

// Synchronize computes the playback snapshot for the given sorted event
// collection and current time t. The input slice must already be sorted
// ascending by start time, which the aggregator guarantees.
func Synchronize(events []event.TemporalEvent, t float64) Snapshot {
	var snap Snapshot

	for i := range events {
		e := events[i]

		if e.StartTime <= t && t <= e.EffectiveEnd() {
			snap.ActiveEvents = append(snap.ActiveEvents, e)
		}

		if e.StartTime <= t {
			// Last such event in sorted order wins
			prev := e
			snap.PreviousEvent = &prev
		} else if snap.NextEvent == nil {
			next := e
			snap.NextEvent = &next
		}
	}

	if snap.PreviousEvent != nil {
		delta := t - snap.PreviousEvent.StartTime
		snap.TimeSincePrevious = &delta
	}
	if snap.NextEvent != nil {
		delta := snap.NextEvent.StartTime - t
		snap.TimeUntilNext = &delta
	}

	if snap.PreviousEvent != nil && snap.NextEvent != nil {
		span := snap.NextEvent.StartTime - snap.PreviousEvent.StartTime
		if span > 0 {
			snap.Progress = clamp01((t - snap.PreviousEvent.StartTime) / span)
		}
	}

	return snap
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
