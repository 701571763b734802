package formatter

import (
	"fmt"

	"github.com/voxmetric/call-timeline/internal/core/impact"
	"github.com/voxmetric/call-timeline/internal/core/layer"
	"github.com/voxmetric/call-timeline/internal/core/layout"
	"github.com/voxmetric/call-timeline/internal/core/playback"
	"github.com/voxmetric/call-timeline/internal/core/timeline"
)

// LayerReport pairs one layer with its packing result.
type LayerReport struct {
	Layer  layer.Layer   `json:"layer"`
	Layout layout.Result `json:"layout"`
}

// Report is the full derived output for one timeline run.
type Report struct {
	Duration    float64               `json:"duration"`
	Width       float64               `json:"width"`
	PlaybackAt  float64               `json:"playbackAt"`
	Graduations []timeline.Graduation `json:"graduations"`
	Layers      []LayerReport         `json:"layers"`
	Snapshot    playback.Snapshot     `json:"snapshot"`
	Pairs       []impact.Pair         `json:"pairs"`
	Metrics     impact.Metrics        `json:"metrics"`
}

// Formatter renders a report to stdout.
type Formatter interface {
	Format(report *Report) error
}

// GetFormatter returns the formatter for the given output name.
func GetFormatter(output string) (Formatter, error) {
	switch output {
	case "table", "":
		return NewTableFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "summary":
		return NewSummaryFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", output)
	}
}
