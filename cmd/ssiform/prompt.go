package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formgen-ssi/pkg/orchestrator"
	"github.com/goliatone/go-formgen-ssi/pkg/render"
	"github.com/goliatone/go-formgen-ssi/pkg/renderers/tui"
)

var (
	promptValues string
	promptOutput string
	promptFormat string
)

func init() {
	cmd := newPromptCmd()
	cmd.Flags().StringVar(&promptValues, "values", "", "JSON file with stored register values")
	cmd.Flags().StringVarP(&promptOutput, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().StringVar(&promptFormat, "output-format", string(tui.OutputFormatJSON), "Output format (json, form, pretty)")
	rootCmd.AddCommand(cmd)
}

func newPromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt <schema>",
		Short: "Edit register values interactively in the terminal",
		Long: `The prompt command walks the form fields as terminal prompts, starting
from the stored values, and prints the edited register values.

Output formats:
  json   - nested raw register values
  form   - URL-encoded inputs, accepted by the decode command
  pretty - one "path = value" line per register`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrompt(cmd, args[0])
		},
	}
}

func runPrompt(cmd *cobra.Command, location string) error {
	req, err := sourceRequest(location)
	if err != nil {
		return err
	}
	values, err := readValues(promptValues)
	if err != nil {
		return err
	}

	registry := render.NewRegistry()
	registry.MustRegister(tui.New(
		tui.WithOutputFormat(tui.OutputFormat(promptFormat)),
		tui.WithOutput(cmd.ErrOrStderr()),
	))
	orch := newOrchestrator(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(tui.Name),
	)

	req.RenderOptions = render.RenderOptions{Values: values}
	output, err := orch.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), promptOutput, output)
}
