package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/event-extractor/internal/export"
	"github.com/pfrederiksen/event-extractor/internal/logger"
	"github.com/pfrederiksen/event-extractor/internal/render"
)

var (
	flagRenderOut      string
	flagRenderTitle    string
	flagRenderSubtitle string
	flagRenderIntro    string
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <events.json>",
		Short: "Render the HTML newsletter from an exported events.json",
		Long: `Render the HTML newsletter from a JSON file previously written by
event-extractor. No API key is needed.`,
		Args: cobra.ExactArgs(1),
		RunE: runRender,
	}

	f := cmd.Flags()
	f.StringVarP(&flagRenderOut, "out", "o", "", "Output file (default: "+newsletterFile+" next to the input)")
	f.StringVar(&flagRenderTitle, "title", "", "Newsletter title")
	f.StringVar(&flagRenderSubtitle, "subtitle", "", "Newsletter subtitle (default: current month)")
	f.StringVar(&flagRenderIntro, "intro", "", "Intro paragraph (default: generated)")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newRunLogger(cmd, cfg)
	if err != nil {
		return err
	}

	rows, err := export.ReadEnriched(args[0])
	if err != nil {
		return err
	}

	opts := newsletterOptions(cfg)
	if flagRenderTitle != "" {
		opts.Title = flagRenderTitle
	}
	if flagRenderSubtitle != "" {
		opts.Subtitle = flagRenderSubtitle
	}
	if flagRenderIntro != "" {
		opts.Intro = flagRenderIntro
	}

	out := flagRenderOut
	if out == "" {
		out = filepath.Join(filepath.Dir(args[0]), newsletterFile)
	}

	path, err := render.WriteFile(out, rows, opts)
	if err != nil {
		return err
	}
	log.Info("Rendered newsletter", logger.Fields{"events": len(rows), "path": path})

	fmt.Fprintf(cmd.OutOrStdout(), "Newsletter with %d events saved to %s\n", len(rows), path)
	return nil
}
