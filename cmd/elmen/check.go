package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vango-dev/elmen"
	"github.com/vango-dev/elmen/internal/errors"
	"github.com/vango-dev/elmen/pkg/markup"
	"github.com/vango-dev/elmen/pkg/vdom"
)

// Error output formats of the check command.
const (
	formatText    = "text"
	formatCompact = "compact"
	formatJSON    = "json"
)

func checkCmd(g *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate an element description",
		Long: `Build the element described by a JSON file at high verbosity and
report the first problem found. Nothing is rendered.

Examples:
  elmen check page.json
  elmen check --format=json page.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case formatText, formatCompact, formatJSON:
			default:
				return fmt.Errorf("unknown format %q (want text, compact or json)", format)
			}
			return runCheck(cmd, g, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Error format: text, compact or json")

	return cmd
}

func runCheck(cmd *cobra.Command, g *globalFlags, path, format string) error {
	logger := g.logger(cmd)

	desc, err := readDescription(cmd, path)
	if err == nil {
		_, err = markup.Build(vdom.NewDocument(), desc, builtinRegistry(logger),
			elmen.WithVerbosity(elmen.High),
			elmen.WithLogger(logger),
			elmen.WithContext(cmd.Context()),
		)
	}
	if err == nil {
		success(cmd.OutOrStdout(), "%s is valid", path)
		return nil
	}

	e := errors.FromBuild(err, errors.CodeMarkupInvalid)
	switch format {
	case formatCompact:
		fmt.Fprintln(cmd.OutOrStdout(), e.FormatCompact())
	case formatJSON:
		fmt.Fprintln(cmd.OutOrStdout(), e.FormatJSON())
	default:
		fmt.Fprint(cmd.ErrOrStderr(), e.Format())
		if e.Code == errors.CodeMissingField {
			listeners, actions := builtinRegistry(logger).Names()
			info(cmd.ErrOrStderr(), "Known listeners: %v, actions: %v", listeners, actions)
		}
	}
	return errReported
}
