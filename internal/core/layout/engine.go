package layout

import (
	"sort"

	"github.com/voxmetric/call-timeline/internal/core/event"
	"github.com/voxmetric/call-timeline/internal/core/timeline"
)

// Profile tunes the row-packing pass for one layer.
type Profile struct {
	MaxRows    int     `yaml:"maxRows" json:"maxRows"`
	MinGap     float64 `yaml:"minGap" json:"minGap"`
	PointWidth float64 `yaml:"pointWidth" json:"pointWidth"`
}

// DefaultProfile returns the packing parameters used when the caller does
// not supply any.
func DefaultProfile() Profile {
	return Profile{
		MaxRows:    4,
		MinGap:     2,
		PointWidth: 8,
	}
}

// Item is one event's placement: the row it packs into and its pixel span.
type Item struct {
	Event event.TemporalEvent `json:"event"`
	Row   int                 `json:"row"`
	X     float64             `json:"x"`
	Width float64             `json:"width"`
}

// Result is the layout of one layer.
type Result struct {
	Items     []Item `json:"items"`
	RowsCount int    `json:"rowsCount"`
}

// Pack assigns each event a row and pixel span so that events sharing a row
// never overlap within the profile's minimum gap. Rows beyond MaxRows
// collapse onto the last row rather than growing unboundedly. The result is
// a pure function of the inputs: row state is rebuilt from scratch on every
// call.
func Pack(events []event.TemporalEvent, width, duration float64, profile Profile) Result {
	if len(events) == 0 || width <= 0 || duration <= 0 {
		return Result{Items: []Item{}, RowsCount: 1}
	}
	if profile.MaxRows <= 0 {
		profile.MaxRows = 1
	}

	sorted := make([]event.TemporalEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	// Rightmost occupied pixel per row
	rowEnd := make([]float64, 0, profile.MaxRows)
	items := make([]Item, 0, len(sorted))

	for _, e := range sorted {
		startX := timeline.TimeToPosition(e.StartTime, duration, width)
		endX := startX + profile.PointWidth
		if e.EndTime != nil {
			endX = timeline.TimeToPosition(*e.EndTime, duration, width)
		}
		w := endX - startX
		if w < profile.PointWidth {
			w = profile.PointWidth
		}

		row := -1
		for r := range rowEnd {
			if startX > rowEnd[r]+profile.MinGap {
				row = r
				break
			}
		}
		if row < 0 {
			if len(rowEnd) < profile.MaxRows {
				rowEnd = append(rowEnd, 0)
				row = len(rowEnd) - 1
			} else {
				// Overflow collapses onto the last row
				row = profile.MaxRows - 1
			}
		}

		end := startX + w
		if end > rowEnd[row] {
			rowEnd[row] = end
		}

		items = append(items, Item{Event: e, Row: row, X: startX, Width: w})
	}

	rows := len(rowEnd)
	if rows > profile.MaxRows {
		rows = profile.MaxRows
	}
	if rows < 1 {
		rows = 1
	}

	return Result{Items: items, RowsCount: rows}
}
