package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cverad/connectome/pkg/errors"
	"github.com/cverad/connectome/pkg/store"
)

// resultsCommand creates the results command for browsing the server's store.
func (c *CLI) resultsCommand() *cobra.Command {
	var (
		mongoURI string
		limit    int
		plain    bool
	)

	cmd := &cobra.Command{
		Use:   "results",
		Short: "Browse analysis results stored by the server",
		Long: `Browse analysis results stored by the server.

The results command connects to the MongoDB store used by 'serve' and
lists stored analyses, newest first. Without --plain it opens an
interactive picker; selecting an entry prints its details.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("mongo") && c.cfg.Mongo.URI != "" {
				mongoURI = c.cfg.Mongo.URI
			}
			if mongoURI == "" {
				return errors.New(errors.ErrCodeInvalidArgument,
					"results needs a MongoDB store, set --mongo or the config file")
			}
			return c.runResults(cmd.Context(), mongoURI, limit, plain)
		},
	}

	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI of the result store")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum results to list (0 = all)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print a plain listing instead of the interactive picker")

	return cmd
}

// runResults lists stored results and optionally opens the picker.
func (c *CLI) runResults(ctx context.Context, mongoURI string, limit int, plain bool) error {
	st, err := store.NewMongoStore(ctx, store.MongoConfig{
		URI:        mongoURI,
		Database:   c.cfg.Mongo.Database,
		Collection: c.cfg.Mongo.Collection,
	})
	if err != nil {
		return fmt.Errorf("connect mongodb: %w", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	summaries, err := st.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("list results: %w", err)
	}

	if plain {
		if len(summaries) == 0 {
			printInfo("No results stored")
			return nil
		}
		for _, s := range summaries {
			name := s.Name
			if name == "" {
				name = "-"
			}
			fmt.Printf("%s  %-24s %-18s %s\n", s.ID, name, s.Method, s.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	}

	p := tea.NewProgram(NewResultListModel(summaries))
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}
	model, ok := m.(ResultListModel)
	if !ok || model.Selected == nil {
		return nil
	}

	res, err := st.Get(ctx, model.Selected.ID)
	if err != nil {
		return fmt.Errorf("fetch result: %w", err)
	}
	printResult(res)
	return nil
}

// printResult prints one stored result in detail.
func printResult(r *store.Result) {
	printKeyValue("id", r.ID)
	if r.Name != "" {
		printKeyValue("name", r.Name)
	}
	printKeyValue("graph hash", r.GraphHash)
	if r.Atlas != "" {
		printKeyValue("atlas", r.Atlas)
	}
	printKeyValue("method", r.Method)
	if r.Transform != "" {
		printKeyValue("transform", r.Transform)
	}
	printKeyValue("created", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	for _, w := range r.Warnings {
		printWarning("%s", w.Message)
	}
}
