package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formgen-ssi/pkg/validation"
)

var lintJSON bool

type lintReport struct {
	File   string                   `json:"file"`
	Valid  bool                     `json:"valid"`
	Issues []validation.SchemaIssue `json:"issues,omitempty"`
}

func init() {
	cmd := newLintCmd()
	cmd.Flags().BoolVar(&lintJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(cmd)
}

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <schema>...",
		Short: "Check controller options in schemas",
		Long: `The lint command normalises each schema and checks the controller
options of every field: implied decimal points, disabled sentinels, steps,
bit-flag members and defaults that collide with the disabled value.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args)
		},
	}
}

func runLint(cmd *cobra.Command, paths []string) error {
	orch := newOrchestrator()
	reports := make([]lintReport, 0, len(paths))
	failed := 0
	for _, path := range paths {
		req, err := sourceRequest(path)
		if err != nil {
			return err
		}
		result, err := orch.Lint(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("lint %s: %w", path, err)
		}
		if !result.Valid {
			failed++
		}
		reports = append(reports, lintReport{File: path, Valid: result.Valid, Issues: result.Issues})
	}

	if lintJSON {
		if err := printJSON(cmd.OutOrStdout(), reports); err != nil {
			return err
		}
	} else {
		for _, report := range reports {
			issues := append([]validation.SchemaIssue(nil), report.Issues...)
			sort.SliceStable(issues, func(i, j int) bool {
				if issues[i].Form == issues[j].Form {
					return issues[i].Field < issues[j].Field
				}
				return issues[i].Form < issues[j].Form
			})
			for _, issue := range issues {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s -> %s\n", report.File, issueLocation(issue), issue.Message)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d schema(s) failed lint", failed, len(paths))
	}
	return nil
}

func issueLocation(issue validation.SchemaIssue) string {
	var parts []string
	for _, part := range []string{issue.Form, issue.Field, issue.Path} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return "document"
	}
	return strings.Join(parts, " > ")
}
