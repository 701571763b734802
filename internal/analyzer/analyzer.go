package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/voxmetric/call-timeline/internal/config"
	"github.com/voxmetric/call-timeline/internal/core/cache"
	"github.com/voxmetric/call-timeline/internal/core/event"
	"github.com/voxmetric/call-timeline/internal/core/impact"
	"github.com/voxmetric/call-timeline/internal/core/layer"
	"github.com/voxmetric/call-timeline/internal/core/playback"
	"github.com/voxmetric/call-timeline/internal/core/timeline"
	"github.com/voxmetric/call-timeline/internal/data/aggregator"
	"github.com/voxmetric/call-timeline/internal/data/provider"
	"github.com/voxmetric/call-timeline/internal/presentation/formatter"
	"github.com/voxmetric/call-timeline/internal/util"
)

// Config carries one analysis run's parameters.
type Config struct {
	DataDir      string
	ConfigPath   string
	OutputFormat string
	PlaybackAt   float64
	Duration     float64
	Width        float64
}

// Analyzer wires providers, the aggregator and the derivation passes into
// one run over a directory of event files.
type Analyzer struct {
	config      *Config
	timelineCfg config.Config
	aggregator  *aggregator.Aggregator
	layoutCache *cache.LayoutCache
}

// New builds an analyzer: loads the timeline configuration, discovers the
// event files under DataDir (one JSONL file per event type) and registers a
// file provider for each.
func New(cfg *Config) (*Analyzer, error) {
	timelineCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	agg := aggregator.New()

	files, err := discoverEventFiles(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no JSONL event files found in %s", cfg.DataDir)
	}

	for _, file := range files {
		eventType := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		agg.RegisterProvider(provider.NewFileProvider(file, eventType, provider.TimelineConfig{
			Layer:     eventType,
			ShowLabel: true,
		}))
		util.LogDebugf("Registered file provider for type %s: %s", eventType, file)
	}

	return &Analyzer{
		config:      cfg,
		timelineCfg: timelineCfg,
		aggregator:  agg,
		layoutCache: cache.NewLayoutCache(),
	}, nil
}

// Run executes one full derivation and prints the configured report format.
func (a *Analyzer) Run(ctx context.Context) error {
	report, err := a.BuildReport(ctx)
	if err != nil {
		return err
	}

	f, err := formatter.GetFormatter(a.config.OutputFormat)
	if err != nil {
		return err
	}
	return f.Format(report)
}

// BuildReport loads the events and recomputes every derived structure.
func (a *Analyzer) BuildReport(ctx context.Context) (*formatter.Report, error) {
	start := time.Now()

	events, err := a.aggregator.LoadEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	util.LogInfof("Loaded %d events in %v", len(events), time.Since(start))

	duration := a.resolveDuration(events)
	width := a.config.Width
	if width <= 0 {
		width = a.timelineCfg.Axis.Width
	}

	layers := layer.BuildLayers(events, a.timelineCfg.Categories)
	layer.SortByPriority(layers, a.timelineCfg.Categories)

	layerReports := make([]formatter.LayerReport, 0, len(layers))
	for _, l := range layers {
		layerReports = append(layerReports, formatter.LayerReport{
			Layer:  l,
			Layout: a.layoutCache.Pack(l.Events, width, duration, a.timelineCfg.Layout),
		})
	}

	snapshot := playback.Synchronize(events, a.config.PlaybackAt)

	pairs, metrics := impact.NewAnalyzer(a.timelineCfg.Tags).Analyze(events)

	util.LogDebugf("Derived %d layers, %d pairs in %v", len(layers), len(pairs), time.Since(start))

	return &formatter.Report{
		Duration:    duration,
		Width:       width,
		PlaybackAt:  a.config.PlaybackAt,
		Graduations: timeline.GenerateGraduations(duration, a.timelineCfg.Axis.MaxGraduations),
		Layers:      layerReports,
		Snapshot:    snapshot,
		Pairs:       pairs,
		Metrics:     metrics,
	}, nil
}

// resolveDuration prefers the explicit flag, then the configured axis, then
// the end of the last event.
func (a *Analyzer) resolveDuration(events []event.TemporalEvent) float64 {
	if a.config.Duration > 0 {
		return a.config.Duration
	}
	if a.timelineCfg.Axis.Duration > 0 {
		return a.timelineCfg.Axis.Duration
	}
	var max float64
	for i := range events {
		if end := events[i].EffectiveEnd(); end > max {
			max = end
		}
	}
	return max
}

func discoverEventFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".jsonl" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
