package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kosirm/mindmap-writer-sub008/pkg/layout"
	"github.com/kosirm/mindmap-writer-sub008/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		orientation string
		configPath  string
		formats     string
		output      string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "layout [map.json]",
		Short: "Compute node positions for a mindmap document",
		Long: `Compute node positions for a mindmap document.

The layout command reads a mindmap JSON document, assigns every node to a
side of the root according to the orientation mode, places nodes radially
(clockwise, anticlockwise) or in stacked columns (ltr, rtl), and writes the
resulting position map. Overflowing rings grow automatically and report a
warning instead of failing.

Output formats: json (position map), dot, svg, png. Results are cached
locally keyed by document content, orientation and spacing settings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], orientation, configPath, parseFormats(formats), output, noCache)
		},
	}

	cmd.Flags().StringVarP(&orientation, "orientation", "O", "clockwise", "layout mode: clockwise, anticlockwise, ltr, rtl")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML file with spacing settings")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "comma-separated output formats: json (default), dot, svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input path without extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout executes the pipeline and writes one file per format.
func (c *CLI) runLayout(ctx context.Context, input, orientation, configPath string, formats []string, output string, noCache bool) error {
	o, err := layout.ParseOrientation(orientation)
	if err != nil {
		return err
	}
	cfg, err := loadLayoutConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", configPath, err)
	}

	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Execute(ctx, pipeline.Options{
		Input:       input,
		Orientation: o,
		Config:      cfg,
		Formats:     formats,
		NoCache:     noCache,
	})
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done(fmt.Sprintf("Placed %d nodes", res.Stats.NodeCount))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	printSuccess("Layout complete")
	for _, format := range formats {
		path := base + "." + format
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(res.Stats.NodeCount, len(res.Layout.Warnings), res.CacheHit)
	for _, w := range res.Layout.Warnings {
		printWarning("%s: %s", w.Code, w.Message)
	}
	printNewline()
	printNextStep("Browse", "mindmap tui "+input)

	return nil
}
