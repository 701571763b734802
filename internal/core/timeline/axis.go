package timeline

import (
	"math"

	"github.com/voxmetric/call-timeline/internal/util"
)

// MinGraduationInterval is the smallest spacing between axis ticks, in
// simulated seconds.
const MinGraduationInterval = 30.0

// graduationIntervals are the candidate tick spacings, in seconds, tried in
// order until the tick count fits the requested maximum.
var graduationIntervals = []float64{30, 60, 120, 300, 600, 900, 1800, 3600, 7200}

// Graduation is a single axis tick.
type Graduation struct {
	Time            float64 `json:"time"`
	PositionPercent float64 `json:"positionPercent"`
	Label           string  `json:"label"`
}

// TimeToPosition converts an elapsed time to a pixel position on an axis of
// the given width. The result is clamped to [0, width]; degenerate axes
// (non-positive duration or width) map everything to 0.
func TimeToPosition(t, duration, width float64) float64 {
	if duration <= 0 || width <= 0 {
		return 0
	}
	pos := t / duration * width
	return clamp(pos, 0, width)
}

// PositionToTime converts a pixel position back to an elapsed time, clamped
// to [0, duration]. A non-positive width maps everything to 0.
func PositionToTime(pos, width, duration float64) float64 {
	if width <= 0 {
		return 0
	}
	if duration <= 0 {
		return 0
	}
	t := pos / width * duration
	return clamp(t, 0, duration)
}

// GenerateGraduations produces up to maxCount evenly spaced ticks for the
// given duration. Spacing never drops below MinGraduationInterval.
func GenerateGraduations(duration float64, maxCount int) []Graduation {
	if duration <= 0 || maxCount <= 0 {
		return nil
	}

	interval := pickInterval(duration, maxCount)
	count := int(math.Floor(duration/interval)) + 1
	if count > maxCount {
		count = maxCount
	}

	grads := make([]Graduation, 0, count)
	for i := 0; i < count; i++ {
		t := float64(i) * interval
		if t > duration {
			break
		}
		grads = append(grads, Graduation{
			Time:            t,
			PositionPercent: t / duration * 100,
			Label:           util.FormatTimecode(t),
		})
	}
	return grads
}

// pickInterval returns the smallest candidate spacing whose tick count fits
// maxCount, falling back to an even division for very long durations.
func pickInterval(duration float64, maxCount int) float64 {
	if maxCount <= 1 {
		return duration
	}
	for _, candidate := range graduationIntervals {
		if duration/candidate < float64(maxCount) {
			return candidate
		}
	}
	interval := duration / float64(maxCount-1)
	if interval < MinGraduationInterval {
		interval = MinGraduationInterval
	}
	return interval
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
