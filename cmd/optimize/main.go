// Package main runs the memetic strike placement search and writes the results.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	flag "github.com/spf13/pflag"

	"github.com/pthm-cable/strike/config"
	"github.com/pthm-cable/strike/memetic"
	"github.com/pthm-cable/strike/telemetry"
)

// formatDuration formats a duration as 1h02m03.456s, or 2m03.456s under an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Millisecond)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d.Seconds()

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%06.3fs", h, m, s)
	}
	return fmt.Sprintf("%dm%06.3fs", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	targetsPath := flag.String("targets", "", "Targets CSV (id,weight,x,y); overrides the config target list")
	generations := flag.Int("generations", 0, "Generation budget (0 = use config)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = use config, or random if unset)")
	outputDir := flag.String("output", "", "Output directory for results (empty = no files)")
	logGenerations := flag.Bool("log-generations", false, "Log the best individual of every generation")
	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *targetsPath != "" {
		cfg.Field.TargetsCSV = *targetsPath
		cfg.Derived.BaseDir = ""
	}
	if *generations > 0 {
		cfg.GA.NumGenerations = *generations
	}
	if *seed != 0 {
		cfg.GA.Seed = seed
	}

	f, err := cfg.BuildField()
	if err != nil {
		slog.Error("failed to load targets", "error", err)
		os.Exit(1)
	}

	opts := cfg.RunOptions()
	opt, err := memetic.NewOptimizer(opts, f)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	runID := uuid.NewString()
	slog.Info("starting optimization",
		"run_id", runID,
		"targets", f.Len(),
		"strike_points", cfg.Derived.StrikePoints,
		"population", opts.PopulationSize,
		"generations", opts.NumGenerations,
		"evaluations", humanize.Comma(int64(opts.Evaluations())),
	)

	start := time.Now()
	res, err := opt.Run()
	if err != nil {
		slog.Error("optimization failed", "error", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	if *logGenerations {
		for _, e := range res.History {
			slog.Info("generation", "best", e)
		}
	}

	bookmarks := telemetry.NewBookmarkDetector(cfg.Telemetry).Scan(res.History)
	for _, b := range bookmarks {
		b.LogBookmark()
	}

	summary := telemetry.NewSummary(runID, res, opt.Model(), f)
	slog.Info("optimization complete",
		"run_id", runID,
		"seed", res.Seed,
		"evaluations", humanize.Comma(int64(res.Evaluations)),
		"refinements", summary.Refinements,
		"elapsed", formatDuration(elapsed),
		"best_fitness", summary.BestFitness,
		"raw_score", summary.RawScore,
		"penalty", summary.Penalty,
		"total_weight", f.TotalWeight(),
		"population", summary.Population,
	)
	for i, p := range summary.BestPoints {
		slog.Info("strike point", "index", i, "x", p.X, "y", p.Y)
	}

	if err := writeOutputs(*outputDir, cfg, res, bookmarks, summary); err != nil {
		slog.Error("failed to write output", "error", err)
		os.Exit(1)
	}
}

func writeOutputs(dir string, cfg *config.Config, res *memetic.Result, bookmarks []telemetry.Bookmark, summary telemetry.Summary) error {
	om, err := telemetry.NewOutputManager(dir)
	if err != nil || om == nil {
		return err
	}

	if err := om.WriteConfig(cfg); err != nil {
		return err
	}
	if err := om.WriteHistory(res.History); err != nil {
		return err
	}
	if err := om.WritePopulation(res.Population); err != nil {
		return err
	}
	if err := om.WriteBookmarks(bookmarks); err != nil {
		return err
	}
	if err := om.WriteSummary(summary); err != nil {
		return err
	}

	best, _ := res.Best()
	slog.Info("results saved", "dir", om.Dir(), "best_genome", telemetry.FormatGenome(best))
	return nil
}
