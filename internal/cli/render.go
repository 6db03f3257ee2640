package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cverad/connectome/pkg/bgraph"
	"github.com/cverad/connectome/pkg/errors"
	"github.com/cverad/connectome/pkg/pipeline"
	"github.com/cverad/connectome/pkg/render"
)

// renderCommand creates the render command for visualizing analyzed graphs.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format    string
		output    string
		partition string
		labels    bool
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render an analyzed graph as DOT or SVG",
		Long: `Render an analyzed graph as DOT or SVG.

The render command takes a graph JSON file (produced by 'analyze') and
draws it with Graphviz. Vertices are colored by the chosen partition
attribute and pinned to atlas coordinates when the graph carries them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], format, output, partition, labels)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatSVG, "output format: svg (default), dot")
	cmd.Flags().StringVar(&partition, "partition", pipeline.DefaultPartition, "vertex grouping used for colors")
	cmd.Flags().BoolVar(&labels, "labels", false, "show region names")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")

	return cmd
}

// runRender loads the graph and renders it.
func (c *CLI) runRender(ctx context.Context, input, format, output, partition string, labels bool) error {
	if format != pipeline.FormatDOT && format != pipeline.FormatSVG {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown render format %q", format)
	}

	g, err := bgraph.Import(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	dot := render.ToDOT(g, render.Options{
		Partition:     partition,
		Labels:        labels,
		WeightedEdges: true,
	})

	var data []byte
	if format == pipeline.FormatDOT {
		data = []byte(dot)
	} else {
		spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
		spinner.Start()
		data, err = render.RenderSVG(ctx, dot)
		if err != nil {
			spinner.StopWithError("Rendering failed")
			return fmt.Errorf("render: %w", err)
		}
		spinner.Stop()
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Rendered %s", filepath.Base(input))
	printFile(output)
	return nil
}
