package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/event-extractor/internal/calendar"
	"github.com/pfrederiksen/event-extractor/internal/config"
	"github.com/pfrederiksen/event-extractor/internal/event"
	"github.com/pfrederiksen/event-extractor/internal/eventbrite"
	"github.com/pfrederiksen/event-extractor/internal/export"
	"github.com/pfrederiksen/event-extractor/internal/logger"
	"github.com/pfrederiksen/event-extractor/internal/metrics"
	"github.com/pfrederiksen/event-extractor/internal/render"
	"github.com/pfrederiksen/event-extractor/internal/transform"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Output file names inside the output directory
const (
	jsonFile       = "events.json"
	csvFile        = "events.csv"
	rawJSONFile    = "raw_events.json"
	rawCSVFile     = "raw_events.csv"
	newsletterFile = "newsletter.html"
	icsFile        = "events.ics"
)

// envFile is read from the working directory on every run
const envFile = ".env"

var (
	flagConfig      string
	flagLogLevel    string
	flagVerbose     bool
	flagMetricsFile string

	flagQuery            string
	flagPages            int
	flagPageSize         int
	flagPlaceID          string
	flagOnlineOnly       bool
	flagSortBy           string
	flagFreeFirst        bool
	flagFormat           string
	flagOutputDir        string
	flagHTML             bool
	flagICS              bool
	flagRaw              bool
	flagIncludePast      bool
	flagIncludeCancelled bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event-extractor",
		Short: "Extract upcoming events from Eventbrite",
		Long: `A CLI tool to search Eventbrite, clean up the results and export them
as JSON, CSV, an HTML newsletter or an iCalendar feed.

Requires EVENTBRITE_API_KEY in the environment or in a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runExtract,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging (same as --log-level debug)")
	pf.StringVar(&flagMetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after the run")

	f := cmd.Flags()
	f.StringVarP(&flagQuery, "query", "q", "AI", "Search keyword")
	f.IntVar(&flagPages, "pages", 3, "Maximum pages to fetch")
	f.IntVar(&flagPageSize, "page-size", eventbrite.DefaultPageSize, "Results per page (max 50)")
	f.StringVar(&flagPlaceID, "place-id", eventbrite.NYCPlaceID, "Who's On First place ID, or 'none' for worldwide")
	f.BoolVar(&flagOnlineOnly, "online-only", false, "Only include online events")
	f.StringVar(&flagSortBy, "sort-by", "date", "Sort events by 'date' or 'title'")
	f.BoolVar(&flagFreeFirst, "free-first", false, "Show free events before paid events")
	f.StringVar(&flagFormat, "format", config.FormatBoth, "Output format: json, csv or both")
	f.StringVarP(&flagOutputDir, "output-dir", "o", "output", "Output directory")
	f.BoolVar(&flagHTML, "html", false, "Also render "+newsletterFile)
	f.BoolVar(&flagICS, "ics", false, "Also write "+icsFile)
	f.BoolVar(&flagRaw, "raw", false, "Also write the unfiltered records as "+rawJSONFile+" and "+rawCSVFile)
	f.BoolVar(&flagIncludePast, "include-past", false, "Keep events that started before today")
	f.BoolVar(&flagIncludeCancelled, "include-cancelled", false, "Keep cancelled events")

	cmd.AddCommand(newGetCmd(), newRenderCmd())
	return cmd
}

// loadConfig merges the config file and environment with any flags the user set
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig, envFile)
	if err != nil {
		return config.Config{}, err
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flagVerbose {
		cfg.LogLevel = "debug"
	}
	if changed("metrics-file") {
		cfg.MetricsFile = flagMetricsFile
	}
	if changed("query") {
		cfg.Search.Query = flagQuery
	}
	if changed("pages") {
		cfg.Search.Pages = flagPages
	}
	if changed("page-size") {
		cfg.Search.PageSize = flagPageSize
	}
	if changed("place-id") {
		cfg.Search.PlaceID = flagPlaceID
	}
	if changed("online-only") {
		cfg.Search.OnlineOnly = flagOnlineOnly
	}
	if changed("sort-by") {
		cfg.Transform.SortBy = flagSortBy
	}
	if changed("free-first") {
		cfg.Transform.FreeFirst = flagFreeFirst
	}
	if changed("include-past") {
		cfg.Transform.IncludePast = flagIncludePast
	}
	if changed("include-cancelled") {
		cfg.Transform.IncludeCancelled = flagIncludeCancelled
	}
	if changed("format") {
		cfg.Output.Format = flagFormat
	}
	if changed("output-dir") {
		cfg.Output.Dir = flagOutputDir
	}
	if changed("html") {
		cfg.Output.HTML = flagHTML
	}
	if changed("ics") {
		cfg.Output.ICS = flagICS
	}
	if changed("raw") {
		cfg.Output.Raw = flagRaw
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newRunLogger installs a default logger tagged with a fresh run ID
func newRunLogger(cmd *cobra.Command, cfg config.Config) (*logger.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log := logger.New(level, cmd.ErrOrStderr()).With(logger.Fields{"run_id": uuid.NewString()})
	logger.SetDefault(log)
	return log, nil
}

func newClient(cfg config.Config, log *logger.Logger, m *metrics.Metrics) (*eventbrite.Client, error) {
	return eventbrite.NewClient(cfg.APIKey,
		eventbrite.WithBaseURL(cfg.BaseURL),
		eventbrite.WithTimeout(cfg.Timeout),
		eventbrite.WithLogger(log),
		eventbrite.WithMetrics(m),
	)
}

func transformOptions(cfg config.Config) transform.Options {
	sortBy, _ := transform.ParseSortKey(cfg.Transform.SortBy) // checked by Validate
	return transform.Options{
		RemoveCancelled: !cfg.Transform.IncludeCancelled,
		RemovePast:      !cfg.Transform.IncludePast,
		SortBy:          sortBy,
		FreeFirst:       cfg.Transform.FreeFirst,
	}
}

func newsletterOptions(cfg config.Config) render.Options {
	opts := render.Options{
		Title:    cfg.Newsletter.Title,
		Subtitle: cfg.Newsletter.Subtitle,
		Intro:    cfg.Newsletter.Intro,
		Topic:    cfg.Newsletter.Topic,
		Place:    cfg.Newsletter.Place,
	}
	if opts.Topic == "" {
		opts.Topic = cfg.Search.Query
	}
	if opts.Place == "" && cfg.Search.Place() != eventbrite.NYCPlaceID {
		opts.Place = "-"
	}
	return opts
}

// locationLabel names the searched place for humans
func locationLabel(placeID string) string {
	switch placeID {
	case eventbrite.NYCPlaceID:
		return "NYC"
	case "":
		return "worldwide"
	default:
		return placeID
	}
}

// runExtract is the main command logic
func runExtract(cmd *cobra.Command, args []string) error {
	started := time.Now()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newRunLogger(cmd, cfg)
	if err != nil {
		return err
	}

	m := metrics.New()
	defer flushMetrics(cfg.MetricsFile, m, log)

	client, err := newClient(cfg, log, m)
	if err != nil {
		return err
	}

	place := cfg.Search.Place()
	label := locationLabel(place)
	log.Info("Searching Eventbrite", logger.Fields{
		"query":     cfg.Search.Query,
		"location":  label,
		"max_pages": cfg.Search.Pages,
	})

	events, err := client.Search(cmd.Context(), eventbrite.SearchParams{
		Keyword:    cfg.Search.Query,
		PlaceID:    place,
		OnlineOnly: cfg.Search.OnlineOnly,
		MaxPages:   cfg.Search.Pages,
		PageSize:   cfg.Search.PageSize,
	})
	if err != nil {
		return fmt.Errorf("searching events: %w", err)
	}

	if len(events) == 0 {
		log.Warn("No events found", logger.Fields{"query": cfg.Search.Query})
		m.RunFinished(time.Since(started))
		return nil
	}

	if cfg.Output.Raw {
		if err := writeRaw(cfg.Output.Dir, events, m); err != nil {
			return err
		}
	}

	rows := transform.Run(events, transformOptions(cfg))
	m.Filtered(len(events) - len(rows))

	if len(rows) == 0 {
		log.Warn("No events remaining after filtering", logger.Fields{"raw": len(events)})
		m.RunFinished(time.Since(started))
		return nil
	}

	if err := writeOutputs(cfg, rows, m); err != nil {
		return err
	}

	if err := writeSummary(cmd.OutOrStdout(), rows, len(events), cfg.Search.Query, label); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	m.RunFinished(time.Since(started))
	return nil
}

func writeOutputs(cfg config.Config, rows []transform.Enriched, m *metrics.Metrics) error {
	dir := cfg.Output.Dir

	if cfg.Output.WantsJSON() {
		if _, err := export.WriteJSON(filepath.Join(dir, jsonFile), rows); err != nil {
			return fmt.Errorf("exporting JSON: %w", err)
		}
		m.Exported(config.FormatJSON, len(rows))
	}
	if cfg.Output.WantsCSV() {
		if _, err := export.WriteCSV(filepath.Join(dir, csvFile), rows); err != nil {
			return fmt.Errorf("exporting CSV: %w", err)
		}
		m.Exported(config.FormatCSV, len(rows))
	}
	if cfg.Output.HTML {
		if _, err := render.WriteFile(filepath.Join(dir, newsletterFile), rows, newsletterOptions(cfg)); err != nil {
			return fmt.Errorf("rendering newsletter: %w", err)
		}
		m.Exported("html", len(rows))
	}
	if cfg.Output.ICS {
		name := fmt.Sprintf("%s events (%s)", cfg.Search.Query, locationLabel(cfg.Search.Place()))
		if _, err := calendar.WriteFile(filepath.Join(dir, icsFile), rows, name); err != nil {
			return fmt.Errorf("exporting calendar: %w", err)
		}
		m.Exported("ics", len(rows))
	}
	return nil
}

func writeRaw(dir string, events []*event.Event, m *metrics.Metrics) error {
	if _, err := export.WriteJSON(filepath.Join(dir, rawJSONFile), events); err != nil {
		return fmt.Errorf("exporting raw JSON: %w", err)
	}
	if _, err := export.WriteEventsCSV(filepath.Join(dir, rawCSVFile), events); err != nil {
		return fmt.Errorf("exporting raw CSV: %w", err)
	}
	m.Exported("raw", len(events))
	return nil
}

// flushMetrics writes the textfile if one was requested; failures are only logged
func flushMetrics(path string, m *metrics.Metrics, log *logger.Logger) {
	if path == "" {
		return
	}
	if err := m.WriteTextfile(path); err != nil {
		log.Error("Failed to write metrics", logger.Fields{"path": path}, err)
	}
}

// Execute runs the CLI and exits non-zero on error
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, eventbrite.ErrMissingAPIKey) {
			fmt.Fprintln(os.Stderr, "Copy .env.example to .env and add your Eventbrite private token.")
		}
		stop()
		os.Exit(ExitError)
	}
}
