package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nishad/dsquery/internal/api"
	"github.com/nishad/dsquery/internal/dataset"
	dserrors "github.com/nishad/dsquery/internal/errors"
	"github.com/nishad/dsquery/internal/query"
	"github.com/nishad/dsquery/internal/ui"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	host  string
	port  int
	cors  bool
	quiet bool
}

func (c *cli) newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve DATASET_FILE",
		Short: "Serve the dataset queries over HTTP",
		Long: `Load the dataset once and answer the same queries read-only over HTTP.

Endpoints:
  GET /api/v1/groups
  GET /api/v1/groups/{id}/samples
  GET /api/v1/groups/{id}/sampledirs
  GET /api/v1/samples[?group=ID]
  GET /api/v1/sampledirs[?group=ID]
  GET /api/v1/samples/{id}/group
  GET /api/v1/samples/{id}/dir
  GET /api/v1/samples/{id}/siblings
  GET /api/v1/health`,
		Example: `  dsquery serve dataset.xml
  dsquery serve --port 9000 --cors gs://bucket/dataset.xml.gz`,
		Args: positionalArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "", "Host to bind to (default from config)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().BoolVar(&opts.cors, "cors", false, "Enable CORS for web access")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not log requests")

	return cmd
}

func (c *cli) runServe(cmd *cobra.Command, path string, opts *serveOptions) error {
	const op dserrors.Op = "cli.serve"

	if opts.host == "" {
		opts.host = c.cfg.Server.Host
	}
	if opts.port == 0 {
		opts.port = c.cfg.Server.Port
	}

	var ds *dataset.Dataset
	err := ui.ShowSpinner(c.stderr, "Loading "+path, func() error {
		var err error
		ds, err = c.loadDataset(cmd.Context(), path)
		return err
	})
	if err != nil {
		return err
	}
	c.printInfo("%d groups, %d samples", len(ds.Groups), ds.SampleCount())

	server := api.NewServer(query.NewEngine(ds), &api.Config{
		Host:       opts.host,
		Port:       opts.port,
		EnableCORS: opts.cors,
		Quiet:      opts.quiet,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	c.printSuccess("Server ready at http://%s", server.Addr())

	select {
	case <-sigChan:
		c.printInfo("Shutting down server...")
	case err := <-serverErr:
		return dserrors.E(op, dserrors.KindIO, err, "server failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return dserrors.E(op, dserrors.KindIO, err, "server shutdown failed")
	}
	c.printSuccess("Server stopped gracefully")
	return nil
}
