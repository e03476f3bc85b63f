package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formgen-ssi/pkg/render"
)

var (
	renderValues   string
	renderOutput   string
	renderRenderer string
	renderEndpoint string
)

func init() {
	cmd := newRenderCmd()
	cmd.Flags().StringVar(&renderValues, "values", "", "JSON file with stored register values")
	cmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().StringVar(&renderRenderer, "renderer", "", "Renderer to use (defaults to the configured renderer)")
	cmd.Flags().StringVar(&renderEndpoint, "endpoint", "", "Form action override")
	rootCmd.AddCommand(cmd)
}

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <schema>",
		Short: "Render a schema as an HTML form",
		Long: `The render command loads a schema from a file path or URL and renders
the selected form, prefilled from a JSON file of register values.

Example:
  ssiform render zone.schema.json
  ssiform render controller.openapi.yaml --form updateZone --values zone.json -o zone.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0])
		},
	}
}

func runRender(cmd *cobra.Command, location string) error {
	req, err := sourceRequest(location)
	if err != nil {
		return err
	}
	values, err := readValues(renderValues)
	if err != nil {
		return err
	}
	req.Endpoint = renderEndpoint
	req.Renderer = renderRenderer
	if req.Renderer == "" {
		req.Renderer = cfg.Renderer
	}
	req.RenderOptions = render.RenderOptions{Values: values}

	output, err := newOrchestrator().Generate(cmd.Context(), req)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), renderOutput, output)
}
