package formatter

import (
	"fmt"
	"strings"

	"github.com/voxmetric/call-timeline/internal/presentation/display"
	"github.com/voxmetric/call-timeline/internal/util"
)

// TableFormatter renders each layer as an ASCII track: one line per packed
// row, event spans drawn to scale against the terminal width.
type TableFormatter struct {
	sizer *display.Sizer
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{sizer: display.Shared()}
}

func (f *TableFormatter) Format(report *Report) error {
	trackWidth := f.sizer.GetMaxWidth() - 2
	if trackWidth < 20 {
		trackWidth = 20
	}

	eventCount := 0
	for _, lr := range report.Layers {
		eventCount += len(lr.Layer.Events)
	}

	fmt.Printf("Timeline %s  (%d layers, %d events)\n",
		util.FormatTimecode(report.Duration), len(report.Layers), eventCount)
	fmt.Println(strings.Repeat("=", trackWidth+2))

	f.printGraduations(report, trackWidth)

	for _, lr := range report.Layers {
		f.printLayer(lr, report, trackWidth)
	}

	f.printCursor(report, trackWidth)

	fmt.Println(strings.Repeat("=", trackWidth+2))
	fmt.Printf("Impact: %d pairs, %d coherent, efficiency %s\n",
		report.Metrics.TotalPairs, report.Metrics.CoherentImpacts,
		util.FormatPercent(report.Metrics.EfficiencyRate))

	return nil
}

func (f *TableFormatter) printGraduations(report *Report, trackWidth int) {
	if len(report.Graduations) == 0 {
		return
	}

	line := make([]rune, trackWidth)
	for i := range line {
		line[i] = ' '
	}
	for _, g := range report.Graduations {
		col := int(g.PositionPercent / 100 * float64(trackWidth-1))
		label := []rune(g.Label)
		for i, r := range label {
			if col+i < trackWidth {
				line[col+i] = r
			}
		}
	}
	fmt.Printf("  %s\n", string(line))
}

func (f *TableFormatter) printLayer(lr LayerReport, report *Report, trackWidth int) {
	fmt.Printf("%s (%d events, %d rows)\n",
		f.sizer.Truncate(lr.Layer.Name, trackWidth), len(lr.Layer.Events), lr.Layout.RowsCount)

	if report.Width <= 0 {
		return
	}
	scale := float64(trackWidth) / report.Width

	for row := 0; row < lr.Layout.RowsCount; row++ {
		line := make([]rune, trackWidth)
		for i := range line {
			line[i] = '·'
		}
		for _, item := range lr.Layout.Items {
			if item.Row != row {
				continue
			}
			start := int(item.X * scale)
			span := int(item.Width * scale)
			if span < 1 {
				span = 1
			}
			for i := 0; i < span && start+i < trackWidth; i++ {
				line[start+i] = '█'
			}
		}
		fmt.Printf("  %s\n", string(line))
	}
}

func (f *TableFormatter) printCursor(report *Report, trackWidth int) {
	if report.Duration <= 0 {
		return
	}

	col := int(report.PlaybackAt / report.Duration * float64(trackWidth-1))
	if col < 0 {
		col = 0
	}
	if col >= trackWidth {
		col = trackWidth - 1
	}
	fmt.Printf("  %s▲ %s (%d active)\n",
		strings.Repeat(" ", col), util.FormatTimecode(report.PlaybackAt),
		len(report.Snapshot.ActiveEvents))
}
