package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/event-extractor/internal/logger"
	"github.com/pfrederiksen/event-extractor/internal/metrics"
	"github.com/pfrederiksen/event-extractor/internal/transform"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <event-id>",
		Short: "Print a single event as enriched JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runGet,
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])

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

	evt, err := client.GetByID(cmd.Context(), id)
	if err != nil {
		return err
	}
	log.Debug("Fetched event", logger.Fields{"event_id": evt.ID, "title": evt.Title})

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(transform.Enrich(evt)); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}
