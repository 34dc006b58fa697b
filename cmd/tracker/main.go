package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/brace-tracker/internal/adapter/render"
	"github.com/seu-repo/brace-tracker/internal/domain"
	"github.com/seu-repo/brace-tracker/internal/service/ingest"
	"github.com/seu-repo/brace-tracker/internal/service/usage"
	"github.com/seu-repo/brace-tracker/pkg/config"
)

const version = "1.0.0"

var (
	dataDir     = flag.String("data-dir", "", "Directory containing device CSV logs (overrides config)")
	configPath  = flag.String("config", "", "Path to TOML config file (defaults to brace-tracker.toml)")
	jsonOutput  = flag.Bool("json", false, "Emit structured JSON instead of text")
	days        = flag.Int("days", 0, "Override the trailing window length in days")
	colorMode   = flag.String("color", "", "Colorize output: auto, always or never")
	verbose     = flag.Bool("verbose", false, "Verbose logging and below-threshold hour listing")
	showVersion = flag.Bool("version", false, "Print version and exit")

	devices deviceList
)

// deviceList lets -device repeat and accept comma-separated ids.
type deviceList []string

func (d *deviceList) String() string { return strings.Join(*d, ",") }

func (d *deviceList) Set(value string) error {
	for _, id := range strings.Split(value, ",") {
		if id = strings.TrimSpace(id); id != "" {
			*d = append(*d, id)
		}
	}
	return nil
}

func main() {
	flag.Var(&devices, "device", "Limit analysis to one or more device ids (repeatable)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("brace-tracker %s\n", version)
		return
	}

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalUsage(err)
	}
	applyOverrides(cfg)

	ctx := context.Background()

	ingestService := ingest.NewService(logger)
	result, err := ingestService.IngestDirectory(ctx, cfg.DataDir)
	if err != nil {
		fatalUsage(err)
	}

	for _, warning := range result.Warnings {
		logger.Warn("ingest warning",
			zap.String("kind", string(warning.Kind)),
			zap.String("detail", warning.String()),
		)
	}

	if len(result.Records) == 0 {
		fmt.Fprintln(os.Stderr, domain.ErrNoRecords)
		os.Exit(1)
	}

	usageService, err := usage.NewService(cfg.Analysis, logger)
	if err != nil {
		fatalUsage(err)
	}

	now := time.Now()
	reports, err := usageService.EvaluateAll(ctx, result.Records, now)
	if err != nil {
		fatalUsage(err)
	}

	if len(devices) > 0 {
		// A requested device with no data still reports a zero window
		// rather than failing the run.
		requested := uniqueSorted(devices)
		filtered := make([]domain.WeeklyReport, 0, len(requested))
		for _, id := range requested {
			report, err := usageService.EvaluateDevice(ctx, result.Records, id, now)
			if err != nil {
				fatalUsage(err)
			}
			filtered = append(filtered, *report)
		}
		reports = filtered
	}

	for i := range reports {
		reports[i].RunID = result.RunID
	}

	if *jsonOutput {
		out, err := render.JSON(reports)
		if err != nil {
			fatalUsage(err)
		}
		fmt.Println(out)
		return
	}

	fmt.Println(render.Text(reports, render.TextOptions{
		Verbose:              *verbose,
		UseColor:             render.ShouldColor(cfg.Report.Color, os.Stdout),
		UsageThreshold:       cfg.Analysis.UsageThresholdHoursPerDay,
		TemperatureThreshold: cfg.Analysis.TemperatureThresholdFahrenheit,
	}))
}

func applyOverrides(cfg *config.Config) {
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if isFlagSet("days") {
		cfg.Analysis.WindowDays = *days
	}
	if *colorMode != "" {
		cfg.Report.Color = *colorMode
	}
	if err := cfg.Validate(); err != nil {
		fatalUsage(err)
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func fatalUsage(err error) {
	fmt.Fprintf(os.Stderr, "brace-tracker: %v\n", err)
	os.Exit(2)
}
