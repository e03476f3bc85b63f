package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formgen-ssi/internal/config"
	"github.com/goliatone/go-formgen-ssi/pkg/orchestrator"
	"github.com/goliatone/go-formgen-ssi/pkg/schema"
)

var (
	// Global flags
	configPath string
	logLevel   string
	uiSchema   string
	formID     string
	format     string

	cfg    *config.Config
	logger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ssiform",
	Short: "Render and decode SSi controller forms",
	Long: `ssiform turns json-editor style schemas and OpenAPI operations that
describe SSi controller registers into HTML forms or terminal prompts, and
decodes submitted forms back into raw register values.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setup(cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	rootCmd.PersistentFlags().StringVar(&uiSchema, "ui-schema", "", "Directory of UI schema overlays")
	rootCmd.PersistentFlags().StringVarP(&formID, "form", "f", "", "Form ID to select from the document")
	rootCmd.PersistentFlags().StringVar(&format, "format", "", "Schema format (jsonschema, openapi); detected when empty")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setup(stderr io.Writer) error {
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if uiSchema == "" {
		uiSchema = cfg.UISchema
	}
	logger = cfg.NewLogger(stderr)
	return nil
}

// newOrchestrator wires the configured logger and UI schema overlays.
func newOrchestrator(extra ...orchestrator.Option) *orchestrator.Orchestrator {
	options := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithThemeDefaults(cfg.Theme.Name, cfg.Theme.Variant),
	}
	if uiSchema != "" {
		options = append(options, orchestrator.WithUISchemaFS(os.DirFS(uiSchema)))
	}
	return orchestrator.New(append(options, extra...)...)
}

// sourceRequest builds a request for the schema location in args[0].
func sourceRequest(location string) (orchestrator.Request, error) {
	src, err := schema.ParseSource(strings.TrimSpace(location))
	if err != nil {
		return orchestrator.Request{}, err
	}
	return orchestrator.Request{
		Source: src,
		Format: format,
		FormID: formID,
	}, nil
}

// readValues loads a JSON object of stored register values.
func readValues(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var values map[string]any
	if err := decoder.Decode(&values); err != nil {
		return nil, fmt.Errorf("parse values %s: %w", path, err)
	}
	return values, nil
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.WithField("path", path).Info("output written")
	return nil
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
