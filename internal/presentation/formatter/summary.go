package formatter

import (
	"fmt"
	"strings"

	"github.com/voxmetric/call-timeline/internal/presentation/display"
	"github.com/voxmetric/call-timeline/internal/util"
)

// SummaryFormatter is responsible for formatting and outputting the impact
// summary report.
type SummaryFormatter struct{}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

// Format formats and outputs the impact summary of a timeline report.
func (f *SummaryFormatter) Format(report *Report) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Call Timeline Impact Summary")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	fmt.Printf("Duration: %s\n", util.FormatTimecode(report.Duration))
	fmt.Printf("Layers: %d\n", len(report.Layers))
	sizer := display.Shared()
	for _, lr := range report.Layers {
		fmt.Printf("  %s %d events on %d rows\n",
			sizer.PadString(lr.Layer.Name+":", 16, true), len(lr.Layer.Events), lr.Layout.RowsCount)
	}
	fmt.Println()

	if report.Metrics.TotalPairs == 0 {
		fmt.Println("No conseiller/client adjacent pairs found")
		fmt.Println()
		fmt.Println(strings.Repeat("=", 60))
		return nil
	}

	fmt.Println("Adjacent Pairs:")
	for _, p := range report.Pairs {
		marker := " "
		if p.IsCoherent {
			marker = "✓"
		}
		fmt.Printf("  %s %s  %s → %s (Δ %s)\n",
			marker, util.FormatTimecode(p.ConseillerEvent.StartTime),
			p.ConseillerStrategy, p.ClientReaction,
			util.FormatSeconds(p.TimeDelta))
	}
	fmt.Println()

	fmt.Println("Reaction Breakdown:")
	fmt.Printf("  Positive: %d\n", report.Metrics.PositiveReactions)
	fmt.Printf("  Negative: %d\n", report.Metrics.NegativeReactions)
	fmt.Printf("  Neutral:  %d\n", report.Metrics.NeutralReactions)
	fmt.Println()

	fmt.Printf("Coherent Impacts: %d of %d\n",
		report.Metrics.CoherentImpacts, report.Metrics.TotalPairs)
	fmt.Printf("Efficiency Rate:  %s\n", util.FormatPercent(report.Metrics.EfficiencyRate))
	fmt.Printf("Avg Reaction Delay: %s\n", util.FormatSeconds(report.Metrics.AvgTimeDelta))

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))

	return nil
}
