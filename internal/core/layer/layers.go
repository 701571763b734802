package layer

import (
	"sort"

	"github.com/voxmetric/call-timeline/internal/core/event"
)

// Layer is a named, colored partition of events by category. Layers are
// derived from the event collection and regenerated on every change, never
// persisted.
type Layer struct {
	Id          string                `json:"id"`
	Name        string                `json:"name"`
	Events      []event.TemporalEvent `json:"events"`
	Height      float64               `json:"height"`
	Color       string                `json:"color"`
	Visible     bool                  `json:"visible"`
	Interactive bool                  `json:"interactive"`
}

// CategoryConfig declares one configured event category.
type CategoryConfig struct {
	Type        string  `yaml:"type" json:"type"`
	Name        string  `yaml:"name" json:"name"`
	Enabled     bool    `yaml:"enabled" json:"enabled"`
	Visible     bool    `yaml:"visible" json:"visible"`
	Color       string  `yaml:"color" json:"color"`
	Height      float64 `yaml:"height" json:"height"`
	Priority    int     `yaml:"priority" json:"priority"`
	Interactive bool    `yaml:"interactive" json:"interactive"`
}

const (
	defaultMarkerHeight     = 24.0
	defaultAnnotationHeight = 40.0
	fallbackColor           = "#607d8b"
)

// defaultColors assigns colors per event type when no configuration says
// otherwise.
var defaultColors = map[string]string{
	"tag":        "#4285f4",
	"annotation": "#f4b400",
	"note":       "#0f9d58",
	"postit":     "#0f9d58",
}

// annotationTypes are the richer event types that get a taller default
// layer than simple markers.
var annotationTypes = map[string]bool{
	"annotation": true,
	"note":       true,
	"postit":     true,
}

// BuildLayers partitions events into one layer per enabled configured type.
// When no configuration is given, or the configured grouping produces zero
// non-empty layers despite non-empty input, it falls back to automatic
// grouping by the event types actually present.
func BuildLayers(events []event.TemporalEvent, configs []CategoryConfig) []Layer {
	if len(configs) > 0 {
		layers := buildConfigured(events, configs)
		if len(events) == 0 || hasNonEmpty(layers) {
			return layers
		}
	}
	return buildAutomatic(events)
}

func buildConfigured(events []event.TemporalEvent, configs []CategoryConfig) []Layer {
	layers := make([]Layer, 0, len(configs))
	seen := make(map[string]bool, len(configs))

	for _, cfg := range configs {
		// Disabled or hidden categories produce no layer at all
		if !cfg.Enabled || !cfg.Visible {
			continue
		}
		if seen[cfg.Type] {
			continue
		}
		seen[cfg.Type] = true

		name := cfg.Name
		if name == "" {
			name = cfg.Type
		}
		color := cfg.Color
		if color == "" {
			color = colorFor(cfg.Type)
		}
		height := cfg.Height
		if height <= 0 {
			height = heightFor(cfg.Type)
		}

		layers = append(layers, Layer{
			Id:          cfg.Type,
			Name:        name,
			Events:      eventsOfType(events, cfg.Type),
			Height:      height,
			Color:       color,
			Visible:     true,
			Interactive: cfg.Interactive,
		})
	}
	return layers
}

func buildAutomatic(events []event.TemporalEvent) []Layer {
	byType := make(map[string][]event.TemporalEvent)
	var order []string
	for _, e := range events {
		if _, ok := byType[e.Type]; !ok {
			order = append(order, e.Type)
		}
		byType[e.Type] = append(byType[e.Type], e)
	}

	layers := make([]Layer, 0, len(order))
	for _, t := range order {
		layers = append(layers, Layer{
			Id:          t,
			Name:        t,
			Events:      byType[t],
			Height:      heightFor(t),
			Color:       colorFor(t),
			Visible:     true,
			Interactive: true,
		})
	}
	return layers
}

// SortByPriority orders layers for display using the configured priorities;
// unconfigured layers keep their relative order after configured ones.
func SortByPriority(layers []Layer, configs []CategoryConfig) {
	priority := make(map[string]int, len(configs))
	for _, cfg := range configs {
		priority[cfg.Type] = cfg.Priority
	}
	sort.SliceStable(layers, func(i, j int) bool {
		return priority[layers[i].Id] < priority[layers[j].Id]
	})
}

func eventsOfType(events []event.TemporalEvent, eventType string) []event.TemporalEvent {
	var out []event.TemporalEvent
	for _, e := range events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func hasNonEmpty(layers []Layer) bool {
	for _, l := range layers {
		if len(l.Events) > 0 {
			return true
		}
	}
	return false
}

func colorFor(eventType string) string {
	if c, ok := defaultColors[eventType]; ok {
		return c
	}
	return fallbackColor
}

func heightFor(eventType string) float64 {
	if annotationTypes[eventType] {
		return defaultAnnotationHeight
	}
	return defaultMarkerHeight
}
