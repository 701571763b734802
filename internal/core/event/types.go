package event

// DefaultPointDuration is the presence window, in seconds, assumed for events
// without an explicit end time. Point events occupy one second of the timeline
// for range queries and playback activation.
const DefaultPointDuration = 1.0

// Metadata carries rendering and classification hints attached to an event.
// The engine only interprets Category and Priority; everything else is passed
// through to the consumer.
type Metadata struct {
	Color       string `json:"color,omitempty"`
	Priority    int    `json:"priority"`
	Category    string `json:"category,omitempty"`
	Speaker     string `json:"speaker,omitempty"`
	Interactive bool   `json:"interactive"`
}

// TemporalEvent is the universal unit of the timeline: a time-stamped record
// from any source (tag, annotation, note) with an opaque payload.
type TemporalEvent struct {
	Id        string                 `json:"id"`
	Type      string                 `json:"type"`
	StartTime float64                `json:"startTime"`
	EndTime   *float64               `json:"endTime,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Metadata  Metadata               `json:"metadata"`
}

// EffectiveEnd returns the end time of the event, applying the default point
// duration when no explicit end time is set.
func (e *TemporalEvent) EffectiveEnd() float64 {
	if e.EndTime != nil {
		return *e.EndTime
	}
	return e.StartTime + DefaultPointDuration
}

// IsPoint reports whether the event has no explicit end time.
func (e *TemporalEvent) IsPoint() bool {
	return e.EndTime == nil
}

// Label extracts the classification tag label from the event payload.
// The tagging subsystem stores it under "label"; older exports used "tag".
func (e *TemporalEvent) Label() string {
	if e.Data == nil {
		return ""
	}
	if v, ok := e.Data["label"].(string); ok {
		return v
	}
	if v, ok := e.Data["tag"].(string); ok {
		return v
	}
	return ""
}

// End returns a pointer to v, for building events with an explicit end time.
func End(v float64) *float64 {
	return &v
}
