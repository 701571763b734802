package util

import (
	"fmt"
	"math"
)

// FormatTimecode renders elapsed seconds as m:ss, or h:mm:ss past one hour.
func FormatTimecode(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(math.Round(seconds))
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FormatSeconds renders a duration in seconds with sub-second precision
// when it matters, e.g. "2.5s" or "90s".
func FormatSeconds(seconds float64) string {
	if seconds == math.Trunc(seconds) {
		return fmt.Sprintf("%ds", int(seconds))
	}
	return fmt.Sprintf("%.1fs", seconds)
}

// FormatPercent renders a 0-100 rate as "NN%".
func FormatPercent(rate int) string {
	return fmt.Sprintf("%d%%", rate)
}
