package display

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

var sharedSizer = &Sizer{}

// Sizer measures strings by rendered terminal columns rather than bytes, so
// wide runes in layer names and labels align correctly.
type Sizer struct{}

// Shared returns the process-wide sizer.
func Shared() *Sizer {
	return sharedSizer
}

func (s Sizer) displayWidth(str string) int {
	return runewidth.StringWidth(str)
}

// PadString pads str with spaces up to the given column width. Strings
// already at or past the width come back unchanged.
func (s Sizer) PadString(str string, width int, leftAlign bool) string {
	current := s.displayWidth(str)
	if current >= width {
		return str
	}

	padding := strings.Repeat(" ", width-current)
	if leftAlign {
		return str + padding
	}
	return padding + str
}

// Truncate shortens a string to the given display width, appending an
// ellipsis when anything was cut.
func (s Sizer) Truncate(str string, width int) string {
	if s.displayWidth(str) <= width {
		return str
	}
	return runewidth.Truncate(str, width, "…")
}

// GetMaxWidth returns the usable terminal width for track rendering.
func (s Sizer) GetMaxWidth() int {
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth < 60 {
		termWidth = 100 // Default fallback
	}

	maxWidth := termWidth - 8 // Leave some margin
	if maxWidth > 160 {
		maxWidth = 160
	}
	return maxWidth
}
