package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cverad/connectome/pkg/augment"
	"github.com/cverad/connectome/pkg/bgraph/transform"
	"github.com/cverad/connectome/pkg/pipeline"
)

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}
	var transformStr string

	cmd := &cobra.Command{
		Use:   "analyze [matrix-file]",
		Short: "Compute graph metrics for a connectivity matrix",
		Long: `Compute graph metrics for a connectivity matrix.

The analyze command reads a whitespace-separated connectivity matrix (or a
previously exported graph JSON file), runs the full metric battery, and
writes the annotated graph. Strength-like edge weights are transformed to
costs for the distance-based metrics and restored afterwards.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			if strings.HasSuffix(strings.ToLower(opts.Input), ".json") {
				opts.InputFormat = pipeline.InputJSON
			}
			opts.Transform = transform.Kind(transformStr)
			opts.Formats = parseFormats(formatsStr)
			c.applyAnalysisDefaults(cmd, &opts)
			return c.runAnalyze(cmd.Context(), opts, output, noCache)
		},
	}

	// Load flags
	cmd.Flags().StringVarP(&opts.Atlas, "atlas", "a", "", "atlas name (dk, dosenbach160) or JSON file")
	cmd.Flags().BoolVar(&opts.Directed, "directed", false, "treat the matrix as directed")
	cmd.Flags().BoolVar(&opts.Binarize, "binarize", false, "drop edge weights")
	cmd.Flags().BoolVar(&opts.Random, "random", false, "analyze as a randomized null network (reduced metric set)")

	// Analysis flags
	cmd.Flags().StringVarP(&opts.CommunityMethod, "method", "m", "", "community detection method (default louvain)")
	cmd.Flags().StringVarP(&transformStr, "transform", "t", "", "weight transform: reciprocal (default), neg_log, complement, ...")
	cmd.Flags().Int64Var(&opts.Seed, "seed", augment.DefaultSeed, "random seed for stochastic methods")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel workers (0 = all CPUs)")

	// Export flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg (comma-separated)")
	cmd.Flags().StringVar(&opts.Partition, "partition", "", "vertex grouping used for colors: comm (default), comm.wt, comp, lobe")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "show region names in rendered output")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")

	// Cache flags
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached analysis exists")

	return cmd
}

// applyAnalysisDefaults fills options from the config file for flags the
// user did not set.
func (c *CLI) applyAnalysisDefaults(cmd *cobra.Command, opts *pipeline.Options) {
	if !cmd.Flags().Changed("atlas") && c.cfg.Atlas != "" {
		opts.Atlas = c.cfg.Atlas
	}
	if !cmd.Flags().Changed("method") && c.cfg.Method != "" {
		opts.CommunityMethod = c.cfg.Method
	}
	if !cmd.Flags().Changed("transform") && c.cfg.Transform != "" {
		opts.Transform = transform.Kind(c.cfg.Transform)
	}
	if !cmd.Flags().Changed("workers") && c.cfg.Workers > 0 {
		opts.Workers = c.cfg.Workers
	}
}

// runAnalyze executes the pipeline and reports the outcome.
func (c *CLI) runAnalyze(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	p := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Analyzing %s...", filepath.Base(opts.Input)))
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Analysis failed")
		return fmt.Errorf("analyze: %w", err)
	}
	spinner.Stop()
	p.done(fmt.Sprintf("Computed metrics for %d regions", res.Stats.VertexCount))

	printSuccess("Analyzed %s", filepath.Base(opts.Input))
	printStats(res.Stats.VertexCount, res.Stats.EdgeCount, res.CacheInfo.AnalysisHit)
	for _, w := range res.Warnings {
		printWarning("%s", w.Message)
	}

	printNewline()
	printMetricSummary(res)
	printNewline()

	return writeArtifacts(res.Artifacts, opts.Formats, opts.Input, output)
}

// printMetricSummary prints the headline graph-level metrics.
func printMetricSummary(res *pipeline.Result) {
	g := res.Graph

	if m, ok := g.GraphAttr("comm.method"); ok {
		if s, ok := m.(string); ok {
			printKeyValue("communities", s)
		}
	}
	floats := []struct {
		label string
		attr  string
	}{
		{"density", "density"},
		{"clustering", "Cp"},
		{"path length", "Lp"},
		{"efficiency", "E.global"},
		{"modularity", "mod"},
		{"assortativity", "assort"},
	}
	for _, f := range floats {
		if v, ok := g.GraphAttrFloat(f.attr); ok {
			printKeyValue(f.label, StyleNumber.Render(fmt.Sprintf("%.4f", v)))
		}
	}
	if v, ok := g.GraphAttrFloat("num.hubs"); ok {
		printKeyValue("hubs", StyleNumber.Render(fmt.Sprintf("%.0f", v)))
	}
}

// writeArtifacts writes each exported format to disk. With a single format
// the output flag names the file directly; otherwise it is a base path that
// gets the format extension appended.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
