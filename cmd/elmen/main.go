package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/elmen/internal/config"
	"github.com/vango-dev/elmen/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errReported is returned by commands that already printed their error.
var errReported = stderrors.New("error already reported")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !stderrors.Is(err, errReported) {
			errors.PrintError(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	verbose    bool
	noColor    bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "elmen",
		Short: "Build elements from JSON descriptions",
		Long: `elmen builds UI elements from JSON element descriptions with the
fluent element builder and prints them as HTML.

  render   builds a description and prints the HTML
  check    validates a description at high verbosity`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Path to elmen.json (default: nearest elmen.json)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log builder diagnostics to stderr")
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		renderCmd(g),
		checkCmd(g),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig loads --config, or the nearest elmen.json, or the defaults.
func (g *globalFlags) loadConfig() (*config.Config, error) {
	if g.configPath != "" {
		return config.LoadFile(g.configPath)
	}
	return config.Discover(".")
}

// logger returns the builder logger. With --verbose it writes debug text
// to the command's stderr.
func (g *globalFlags) logger(cmd *cobra.Command) *slog.Logger {
	if !g.verbose {
		return slog.Default()
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
