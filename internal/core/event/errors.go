package event

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderMissing is returned when a mutation targets an event type
	// with no registered provider.
	ErrProviderMissing = errors.New("no provider registered for event type")

	// ErrEventNotFound is returned when an update or delete targets an id
	// that is not present in the collection.
	ErrEventNotFound = errors.New("event not found")
)

// InvalidEventError reports an event rejected at ingestion.
type InvalidEventError struct {
	Id     string
	Reason string
}

func (e *InvalidEventError) Error() string {
	return fmt.Sprintf("invalid event %q: %s", e.Id, e.Reason)
}

// Validate checks the structural invariants required before an event may
// enter the collection: a non-negative start time and, when present, an end
// time not before the start.
func Validate(e TemporalEvent) error {
	if e.StartTime < 0 {
		return &InvalidEventError{Id: e.Id, Reason: "startTime must be >= 0"}
	}
	if e.EndTime != nil && *e.EndTime < e.StartTime {
		return &InvalidEventError{Id: e.Id, Reason: "endTime before startTime"}
	}
	return nil
}
