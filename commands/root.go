package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voxmetric/call-timeline/internal/analyzer"
	"github.com/voxmetric/call-timeline/internal/data/provider"
	"github.com/voxmetric/call-timeline/internal/util"
)

var (
	// Logging related
	debug bool

	// Data path
	dataDir    string
	configPath string

	// Output related
	outputFormat string

	// Timeline parameters
	playbackAt float64
	duration   float64
	axisWidth  float64
	watch      bool

	rootCmd = &cobra.Command{
		Use:   "call-timeline [flags]",
		Short: "Call evaluation timeline engine",
		Long: `call-timeline aggregates time-stamped call events (tags, annotations,
notes) from JSONL files, packs them into collision-free layout rows, tracks a
playback cursor against them and derives conseiller/client impact metrics.

Examples:
  call-timeline --dir ./events                         # Table view with defaults
  call-timeline --dir ./events --output json           # Full report as JSON
  call-timeline --dir ./events --output summary        # Impact summary only
  call-timeline --dir ./events --at 95.5               # Snapshot at 1:35.5
  call-timeline --dir ./events --config timeline.yaml  # Layers and tags from config
  call-timeline --dir ./events --watch                 # Re-derive on file change`,
		RunE: runTimeline,
	}
)

const defaultLogFile = "~/.call-timeline/logs/app.log"

func init() {
	// Input data configuration
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "./events",
		"Directory of JSONL event files, one per event type")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "",
		"YAML timeline configuration (categories, layout profile, tag table)")

	// Timeline parameters
	rootCmd.Flags().Float64Var(&playbackAt, "at", 0,
		"Playback position in seconds for the synchronization snapshot")
	rootCmd.Flags().Float64VarP(&duration, "duration", "d", 0,
		"Timeline duration in seconds (0 = derive from events)")
	rootCmd.Flags().Float64VarP(&axisWidth, "width", "w", 0,
		"Axis width in pixels (0 = use configuration)")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, summary)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.Flags().BoolVar(&watch, "watch", false,
		"Watch the data directory and re-derive on changes")
}

func runTimeline(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	util.InitLogger(logLevel, logFile, debug)

	dataDir = expandPath(dataDir)

	cfg := &analyzer.Config{
		DataDir:      dataDir,
		ConfigPath:   configPath,
		OutputFormat: outputFormat,
		PlaybackAt:   playbackAt,
		Duration:     duration,
		Width:        axisWidth,
	}

	a, err := analyzer.New(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := a.Run(ctx); err != nil {
		return err
	}

	if watch {
		return watchAndRerun(ctx, a)
	}
	return nil
}

// watchAndRerun re-derives the full report every time an event file changes.
func watchAndRerun(ctx context.Context, a *analyzer.Analyzer) error {
	w, err := provider.NewWatcher(dataDir)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dataDir, err)
	}
	defer w.Close()

	util.LogInfof("Watching %s for changes", dataDir)
	for ev := range w.Events() {
		util.LogDebugf("Event file changed: %s (%s)", ev.Path, ev.Operation)
		if err := a.Run(ctx); err != nil {
			util.LogErrorf("Re-derivation failed: %v", err)
		}
	}
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
