package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/pfrederiksen/sportify/internal/calendar"
	"github.com/pfrederiksen/sportify/internal/clock"
	"github.com/pfrederiksen/sportify/internal/config"
	"github.com/pfrederiksen/sportify/internal/extract"
	"github.com/pfrederiksen/sportify/internal/logger"
	"github.com/pfrederiksen/sportify/internal/metrics"
	"github.com/pfrederiksen/sportify/internal/render"
	"github.com/pfrederiksen/sportify/internal/scraper"
	"github.com/pfrederiksen/sportify/internal/sport"
	"github.com/pfrederiksen/sportify/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig      string
	flagURL         string
	flagOutput      string
	flagOffset      time.Duration
	flagTimeout     time.Duration
	flagCalendar    string
	flagMetricsFile string
	flagLogLevel    string
	flagFormat      string
	flagSort        string
	flagVerbose     bool
)

// options are the presentation settings that never come from the config file
type options struct {
	Order   SortOrder
	Format  OutputFormat
	Verbose bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sportify",
		Short: "Generate a static page of today's televised sports events",
		Long: `A CLI tool that scrapes a TV schedule page, extracts sports events,
converts their times to the destination timezone and writes a static HTML page
that can be filtered by sport.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	// Define flags
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&flagURL, "url", scraper.ScheduleURL, "Schedule page to scrape")
	cmd.Flags().StringVar(&flagOutput, "output", "index.html", "Path of the generated page")
	cmd.Flags().DurationVar(&flagOffset, "offset", clock.DefaultOffset, "Shift applied to schedule times")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", scraper.Timeout, "HTTP timeout for the schedule fetch")
	cmd.Flags().StringVar(&flagCalendar, "calendar", "", "Also write an iCalendar file to this path")
	cmd.Flags().StringVar(&flagMetricsFile, "metrics-file", "", "Also write Prometheus metrics to this textfile")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Console output format: text, json or yaml")
	cmd.Flags().StringVar(&flagSort, "sort", "document", "Card order: document, time, sport or league")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runGenerate is the main command logic
func runGenerate(cmd *cobra.Command, args []string) error {
	// Validate format
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'yaml')", flagFormat)
	}

	order, err := ParseSortOrder(flagSort)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig, cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, zapcore.AddSync(cmd.ErrOrStderr()))
	previous := logger.Default()
	logger.SetDefault(log)
	defer logger.SetDefault(previous)
	defer log.Sync() // nolint:errcheck

	return generate(cmd.Context(), afero.NewOsFs(), cfg, options{
		Order:   order,
		Format:  format,
		Verbose: flagVerbose,
	}, cmd.OutOrStdout())
}

// generate runs the pipeline once: fetch, extract, render, write
func generate(ctx context.Context, fs afero.Fs, cfg *config.Config, opts options, out io.Writer) error {
	now := time.Now()
	rec := metrics.New()

	fetcher := scraper.NewFetcher(cfg.SourceURL, cfg.UserAgent, cfg.Timeout)
	classifier := sport.NewClassifier(cfg.Sports)
	sc := scraper.New(fetcher, extract.New(classifier, clock.NewConverter(cfg.Offset)))

	logger.Info("Fetching schedule", logger.Fields{"url": fetcher.URL()})
	logger.Debug("Supported sports", logger.Fields{"sports": classifier.Sports().Names()})

	start := time.Now()
	events, report, err := sc.FetchEvents(ctx)
	rec.ObserveFetch(time.Since(start))
	if err != nil {
		return fmt.Errorf("fetching schedule: %w", err)
	}

	rec.AddCandidates(report.Candidates)
	for reason, n := range report.Dropped {
		rec.Dropped(string(reason), n)
	}
	for _, evt := range events {
		rec.Extracted(evt.Sport)
	}

	logger.Info("Extracted events", logger.Fields{
		"candidates": report.Candidates,
		"events":     report.Extracted,
		"dropped":    report.Dropped,
	})

	sortEvents(events, opts.Order)

	renderer, err := render.New(cfg.Layout(now.Year()))
	if err != nil {
		return err
	}
	page, err := renderer.Render(events)
	if err != nil {
		return err
	}
	rec.ObservePage(len(page))

	outputPath, err := writeFile(fs, cfg.Output, page)
	if err != nil {
		return fmt.Errorf("writing page: %w", err)
	}
	logger.Debug("Wrote page", logger.Fields{"path": outputPath, "bytes": len(page)})

	calendarPath := ""
	if cfg.Calendar != "" {
		ics := calendar.GenerateICS(events, now, cfg.Offset, cfg.Brand)
		calendarPath, err = writeFile(fs, cfg.Calendar, []byte(ics))
		if err != nil {
			return fmt.Errorf("writing calendar: %w", err)
		}
		logger.Debug("Wrote calendar", logger.Fields{"path": calendarPath, "events": len(events)})
	}

	rec.MarkSuccess(time.Now())
	if cfg.MetricsFile != "" {
		metricsPath, err := storage.ExpandHome(cfg.MetricsFile)
		if err != nil {
			return err
		}
		if err := rec.WriteTextfile(metricsPath); err != nil {
			return err
		}
	}

	result := &OutputResult{
		GeneratedAt: now.UTC(),
		SourceURL:   cfg.SourceURL,
		Output:      outputPath,
		Calendar:    calendarPath,
		Candidates:  report.Candidates,
		EventCount:  len(events),
		Dropped:     report.Dropped,
		Events:      events,
	}

	if err := WriteOutput(out, result, opts.Format, opts.Verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// writeFile replaces the file at path, creating its directory
func writeFile(fs afero.Fs, path string, data []byte) (string, error) {
	path, err := storage.ExpandHome(path)
	if err != nil {
		return "", err
	}

	store, err := storage.New(fs, filepath.Dir(path))
	if err != nil {
		return "", err
	}

	name := filepath.Base(path)
	if err := store.Write(name, data); err != nil {
		return "", err
	}
	return store.Path(name), nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}

	stop()
	os.Exit(ExitSuccess)
}
