package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/vango-dev/elmen"
	"github.com/vango-dev/elmen/internal/config"
	"github.com/vango-dev/elmen/internal/errors"
	"github.com/vango-dev/elmen/pkg/dom"
	"github.com/vango-dev/elmen/pkg/htmlhost"
	"github.com/vango-dev/elmen/pkg/markup"
	"github.com/vango-dev/elmen/pkg/observe"
	"github.com/vango-dev/elmen/pkg/render"
	"github.com/vango-dev/elmen/pkg/vdom"
)

// renderFlags are the render command line overrides.
type renderFlags struct {
	host          string
	verbosity     string
	indent        string
	output        string
	pretty        bool
	markListeners bool
	metrics       bool
	trace         bool
	dispatch      []string
}

func renderCmd(g *globalFlags) *cobra.Command {
	f := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render an element description to HTML",
		Long: `Build the element described by a JSON file and print it as HTML.
Use "-" to read the description from standard input.

Settings come from elmen.json; flags override them.

Examples:
  elmen render page.json
  elmen render --host=html page.json
  elmen render --pretty --mark-listeners --dispatch=click page.json
  elmen render --metrics page.json 2> metrics.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if g.verbose && !cmd.Flags().Changed("verbosity") {
				cfg.Verbosity = elmen.High.String()
			}
			return runRender(cmd, g, cfg, f, args[0])
		},
	}

	cmd.Flags().StringVar(&f.host, "host", "", "Document to build in: vdom or html (default from elmen.json)")
	cmd.Flags().StringVar(&f.verbosity, "verbosity", "", "Builder verbosity: none, default or high")
	cmd.Flags().StringVar(&f.indent, "indent", "", "Indentation for --pretty")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write HTML to a file instead of stdout")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "Indent the output (vdom host)")
	cmd.Flags().BoolVar(&f.markListeners, "mark-listeners", false, "Add data-on-<event> attributes (vdom host)")
	cmd.Flags().BoolVar(&f.metrics, "metrics", false, "Print builder metrics to stderr in Prometheus text format")
	cmd.Flags().BoolVar(&f.trace, "trace", false, "Record an OpenTelemetry span per builder")
	cmd.Flags().StringSliceVar(&f.dispatch, "dispatch", nil, "Dispatch events at the root element before rendering (vdom host)")

	return cmd
}

// apply overrides cfg with the flags set on the command line.
func (f *renderFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Render.Host = f.host
	}
	if flags.Changed("verbosity") {
		cfg.Verbosity = f.verbosity
	}
	if flags.Changed("indent") {
		cfg.Render.Indent = f.indent
	}
	if flags.Changed("pretty") {
		cfg.Render.Pretty = f.pretty
	}
	if flags.Changed("mark-listeners") {
		cfg.Render.MarkListeners = f.markListeners
	}
	if flags.Changed("metrics") {
		cfg.Metrics = f.metrics
	}
	if flags.Changed("trace") {
		cfg.Trace = f.trace
	}
}

func runRender(cmd *cobra.Command, g *globalFlags, cfg *config.Config, f *renderFlags, path string) error {
	if len(f.dispatch) > 0 && cfg.Render.Host != config.HostVDOM {
		return errors.New(errors.CodeConfigValue).
			WithDetail("--dispatch needs the vdom host")
	}

	desc, err := readDescription(cmd, path)
	if err != nil {
		return err
	}

	logger := g.logger(cmd)
	opts := []elmen.Option{
		elmen.WithVerbosity(cfg.BuilderVerbosity()),
		elmen.WithLogger(logger),
		elmen.WithContext(cmd.Context()),
	}

	registry := prometheus.NewRegistry()
	var observers []elmen.Observer
	if cfg.Metrics {
		observers = append(observers, observe.NewMetrics(
			observe.WithRegistry(registry),
			observe.WithNamespace(cfg.Namespace),
		))
	}
	if cfg.Trace {
		observers = append(observers, observe.NewTracing())
	}
	if len(observers) > 0 {
		opts = append(opts, elmen.WithObserver(elmen.Observers(observers...)))
	}

	var doc dom.Document = vdom.NewDocument()
	if cfg.Render.Host == config.HostHTML {
		doc = htmlhost.NewDocument()
	}

	el, err := markup.Build(doc, desc, builtinRegistry(logger), opts...)
	if err != nil {
		return errors.FromBuild(err, errors.CodeRenderFailed)
	}

	html, err := renderElement(cfg, el, f.dispatch)
	if err != nil {
		return errors.New(errors.CodeRenderFailed).Wrap(err)
	}

	if err := writeOutput(cmd.OutOrStdout(), f.output, html); err != nil {
		return err
	}

	if cfg.Metrics {
		if err := observe.WriteText(cmd.ErrOrStderr(), registry); err != nil {
			return errors.New(errors.CodeMetricsFailed).Wrap(err)
		}
	}
	return nil
}

// renderElement serializes el with the renderer of its host.
func renderElement(cfg *config.Config, el dom.Element, dispatch []string) (string, error) {
	node, ok := el.(*vdom.VNode)
	if !ok {
		return htmlhost.RenderToString(el)
	}
	for _, eventType := range dispatch {
		vdom.Dispatch(node, vdom.NewEvent(strings.TrimSpace(eventType)))
	}
	return render.NewRenderer(cfg.RendererConfig()).RenderToString(node)
}

func writeOutput(stdout io.Writer, output, html string) error {
	if output == "" {
		if _, err := fmt.Fprintln(stdout, html); err != nil {
			return errors.New(errors.CodeOutputFailed).Wrap(err)
		}
		return nil
	}
	if err := os.WriteFile(output, []byte(html+"\n"), 0644); err != nil {
		return errors.New(errors.CodeOutputFailed).
			WithDetail("Cannot write " + output).
			Wrap(err)
	}
	return nil
}
