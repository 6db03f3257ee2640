package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cverad/connectome/pkg/atlas"
)

// atlasCommand creates the atlas inspection command.
func (c *CLI) atlasCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "atlas",
		Short: "Inspect brain atlases",
	}

	cmd.AddCommand(c.atlasListCommand())
	cmd.AddCommand(c.atlasShowCommand())

	return cmd
}

// atlasListCommand creates the "atlas list" subcommand.
func (c *CLI) atlasListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bundled atlases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range atlas.Builtins() {
				a, err := atlas.Builtin(name)
				if err != nil {
					return err
				}
				printKeyValue(name, fmt.Sprintf("%d regions", a.Len()))
			}
			return nil
		},
	}
}

// atlasShowCommand creates the "atlas show" subcommand.
func (c *CLI) atlasShowCommand() *cobra.Command {
	var regions bool

	cmd := &cobra.Command{
		Use:   "show [name-or-file]",
		Short: "Show atlas columns and regions",
		Long: `Show atlas columns and regions.

Accepts a bundled atlas name (see 'atlas list') or a path to an atlas
JSON file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := resolveAtlasRef(args[0])
			if err != nil {
				return err
			}

			printKeyValue("name", a.Name())
			printKeyValue("regions", fmt.Sprintf("%d", a.Len()))
			printKeyValue("columns", strings.Join(a.Columns(), ", "))

			if regions {
				printNewline()
				for _, name := range a.RegionNames() {
					r, _ := a.Lookup(name)
					printDetail("%-12s %-12s %-2s (%6.1f, %6.1f, %6.1f)", r.Name, r.Lobe, r.Hemi, r.X, r.Y, r.Z)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&regions, "regions", false, "list every region with its coordinates")

	return cmd
}

// resolveAtlasRef resolves a bundled name first, then a file path.
func resolveAtlasRef(ref string) (*atlas.Atlas, error) {
	if a, err := atlas.Builtin(ref); err == nil {
		return a, nil
	}
	return atlas.Load(ref)
}
