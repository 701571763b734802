package provider

import (
	"context"

	"github.com/voxmetric/call-timeline/internal/core/event"
)

// TimelineConfig declares how a provider's events prefer to be displayed.
// Color may be a concrete value or "dynamic" when the renderer picks per
// event.
type TimelineConfig struct {
	Layer       string  `json:"layer"`
	Height      float64 `json:"height"`
	Color       string  `json:"color"`
	Shape       string  `json:"shape"`
	ShowLabel   bool    `json:"showLabel"`
	Interactive bool    `json:"interactive"`
}

// Provider is a single source of timeline events. Each provider owns exactly
// one event type; the aggregator routes mutations by that type.
type Provider interface {
	// Type returns the event type this provider owns.
	Type() string

	// FetchEvents returns all events currently held by the source.
	FetchEvents(ctx context.Context) ([]event.TemporalEvent, error)

	// CreateEvent persists a new event and returns it with any
	// source-assigned fields (id) filled in.
	CreateEvent(ctx context.Context, e event.TemporalEvent) (event.TemporalEvent, error)

	// UpdateEvent applies a partial update to an existing event.
	UpdateEvent(ctx context.Context, id string, patch event.Patch) error

	// DeleteEvent removes an event from the source.
	DeleteEvent(ctx context.Context, id string) error

	// TimelineConfig returns the provider's display preferences.
	TimelineConfig() TimelineConfig
}
