package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formgen-ssi/internal/server"
	"github.com/goliatone/go-formgen-ssi/pkg/publish"
	"github.com/goliatone/go-formgen-ssi/pkg/schema"
	"github.com/goliatone/go-formgen-ssi/pkg/store"
)

var serveListen string

func init() {
	cmd := newServeCmd()
	cmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (overrides server.listen)")
	rootCmd.AddCommand(cmd)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the configured forms over HTTP",
		Long: `The serve command exposes every configured form under /forms/{id}.
GET renders the stored register values, POST decodes the submission, stores
it and publishes it to the controllers when MQTT is enabled.

Example:
  ssiform serve --config ssiform.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	if len(cfg.Forms) == 0 {
		return errors.New("no forms configured, pass --config with a forms list")
	}

	forms := make([]server.Form, 0, len(cfg.Forms))
	for _, form := range cfg.Forms {
		src, err := schema.ParseSource(form.Source)
		if err != nil {
			return fmt.Errorf("form %s: %w", form.ID, err)
		}
		forms = append(forms, server.Form{ID: form.ID, Source: src, Format: form.Format})
	}

	values, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer values.Close()

	options := []server.Option{
		server.WithStore(values),
		server.WithLogger(logger),
		server.WithRenderer(cfg.Renderer),
		server.WithTheme(cfg.Theme.Name, cfg.Theme.Variant),
	}
	if cfg.MQTT.Enabled {
		publisher, err := publish.Connect(cfg.MQTT.Config, publish.WithLogger(logger))
		if err != nil {
			return err
		}
		defer publisher.Close()
		options = append(options, server.WithPublisher(publisher))
	}

	srv, err := server.New(newOrchestrator(), forms, options...)
	if err != nil {
		return err
	}

	addr := cfg.Server.Listen
	if serveListen != "" {
		addr = serveListen
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx, srv, addr, cfg.Server.ShutdownTimeout)
}
