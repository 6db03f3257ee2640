package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cverad/connectome/internal/api"
	"github.com/cverad/connectome/pkg/store"
)

const (
	defaultServeAddr      = ":8080"
	defaultServeDrainTime = 10 * time.Second
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		mongoURI string
		redis    string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP analysis API",
		Long: `Run the HTTP analysis API.

The server accepts connectivity matrices over POST /v1/analyze, persists
annotated results, and renders stored graphs on demand. Results are kept
in MongoDB when --mongo (or the config file) provides a URI, in memory
otherwise. Analyses are cached in Redis when configured, on disk otherwise.

The server drains in-flight requests on SIGINT/SIGTERM before exiting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("redis") {
				c.cfg.Redis.Addr = redis
			}
			if !cmd.Flags().Changed("addr") && c.cfg.Server.Addr != "" {
				addr = c.cfg.Server.Addr
			}
			if !cmd.Flags().Changed("mongo") && c.cfg.Mongo.URI != "" {
				mongoURI = c.cfg.Mongo.URI
			}
			return c.runServe(cmd.Context(), addr, mongoURI, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for the result store (default in-memory)")
	cmd.Flags().StringVar(&redis, "redis", "", "Redis address for the analysis cache (default file cache)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable analysis caching")

	return cmd
}

// runServe starts the server and blocks until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, mongoURI string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := c.newStore(ctx, mongoURI)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), defaultServeDrainTime)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			c.Logger.Error("close store", "err", err)
		}
	}()

	srv := api.NewServer(api.Config{
		Addr:   addr,
		Runner: runner,
		Store:  st,
		Logger: c.Logger,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if err := srv.Shutdown(defaultServeDrainTime); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// newStore selects the result store backend.
func (c *CLI) newStore(ctx context.Context, mongoURI string) (store.Store, error) {
	if mongoURI == "" {
		c.Logger.Warn("no MongoDB URI configured, results are kept in memory")
		return store.NewMemoryStore(), nil
	}
	st, err := store.NewMongoStore(ctx, store.MongoConfig{
		URI:        mongoURI,
		Database:   c.cfg.Mongo.Database,
		Collection: c.cfg.Mongo.Collection,
	})
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	return st, nil
}
