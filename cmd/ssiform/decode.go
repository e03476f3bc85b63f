package main

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formgen-ssi/pkg/orchestrator"
)

var decodeData string

func init() {
	cmd := newDecodeCmd()
	cmd.Flags().StringVarP(&decodeData, "data", "d", "", "URL-encoded form body (read from stdin if empty)")
	rootCmd.AddCommand(cmd)
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <schema>",
		Short: "Decode a submitted form into register values",
		Long: `The decode command reads a URL-encoded form body, as posted by a
rendered form, and prints the raw register values with any range errors.
It exits non-zero when the submission is invalid.

Example:
  ssiform decode zone.schema.json -d 'root.heatDelay.hours=1&root.heatDelay.minutes=30'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, args[0])
		},
	}
}

func runDecode(cmd *cobra.Command, location string) error {
	req, err := sourceRequest(location)
	if err != nil {
		return err
	}
	body := decodeData
	if body == "" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		body = string(raw)
	}
	form, err := url.ParseQuery(strings.TrimSpace(body))
	if err != nil {
		return fmt.Errorf("parse form body: %w", err)
	}

	submission, err := newOrchestrator().Decode(cmd.Context(), orchestrator.DecodeRequest{Request: req, Form: form})
	if err != nil {
		return err
	}
	if err := printJSON(cmd.OutOrStdout(), submission); err != nil {
		return err
	}
	if !submission.Valid() {
		return fmt.Errorf("submission has %d invalid field(s)", len(submission.Errors))
	}
	return nil
}
