package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-chartload"
	"github.com/goliatone/go-chartload/pkg/chart"
	"github.com/goliatone/go-chartload/pkg/chartloader"
	"github.com/goliatone/go-chartload/pkg/config"
	"github.com/goliatone/go-chartload/pkg/notify"
	"github.com/goliatone/go-chartload/pkg/renderers/canvasjs"
)

type renderFlags struct {
	url              string
	params           string
	container        string
	renderer         string
	output           string
	configPath       string
	chartName        string
	timeout          time.Duration
	interactiveAlert bool
	verbose          bool

	containerSet bool
}

func newRenderCmd() *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Load one chart and write the rendered output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.containerSet = cmd.Flags().Changed("container")
			return runRender(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.url, "url", "", "Chart endpoint URL")
	cmd.Flags().StringVar(&flags.params, "params", "", "Pre-encoded query string appended to the URL")
	cmd.Flags().StringVar(&flags.container, "container", config.DefaultContainer, "Container element id")
	cmd.Flags().StringVar(&flags.renderer, "renderer", "", "Renderer: canvasjs or yaml (default: config or canvasjs)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "YAML configuration file")
	cmd.Flags().StringVar(&flags.chartName, "chart", "", "Named chart from the configuration")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "Request timeout (default: config or 30s)")
	cmd.Flags().BoolVar(&flags.interactiveAlert, "interactive-alert", false, "Report failures with a blocking terminal prompt")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log every load step to stderr")
	return cmd
}

func runRender(cmd *cobra.Command, flags *renderFlags) error {
	cfg := &config.Config{Timeout: config.DefaultTimeout}
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	req, rendererName, err := resolveRequest(cfg, flags)
	if err != nil {
		return err
	}

	registry, err := chartload.DefaultRegistry(
		canvasjs.WithTheme(cfg.ThemeConfig()),
		canvasjs.WithScriptURL(cfg.ScriptURL),
	)
	if err != nil {
		return err
	}
	renderer, err := registry.Resolve(rendererName)
	if err != nil {
		return err
	}

	// Output is written only once the chart rendered completely.
	var rendered bytes.Buffer
	req.Container.Writer = &rendered

	timeout := flags.timeout
	if timeout <= 0 {
		timeout = cfg.Timeout
	}

	loader := chartloader.New(
		chartloader.WithRenderer(renderer),
		chartloader.WithNotifier(newNotifier(cmd.ErrOrStderr(), flags.interactiveAlert)),
		chartloader.WithMessages(notify.Messages{
			Failure:   cfg.Messages.Failure,
			Exception: cfg.Messages.Exception,
		}),
		chartloader.WithLogger(newLogger(cmd.ErrOrStderr(), flags.verbose)),
		chartloader.WithFetcherOptions(chart.WithRequestTimeout(timeout)),
	)

	result := loader.Load(cmd.Context(), req)
	switch {
	case result.OK():
		if flags.output == "" {
			_, err := cmd.OutOrStdout().Write(rendered.Bytes())
			return err
		}
		if err := os.WriteFile(flags.output, rendered.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Chart written to %s\n", flags.output)
		return nil
	case errors.Is(result.Err, chart.ErrUnsuccessful):
		return fmt.Errorf("server reported the chart as not successful")
	default:
		return fmt.Errorf("load failed: %w", result.Err)
	}
}

// resolveRequest picks the chart from --url, --chart or an interactive
// selection, in that order.
func resolveRequest(cfg *config.Config, flags *renderFlags) (chart.Request, string, error) {
	container := chart.Container{ID: flags.container}
	if flags.url != "" {
		return chart.Request{URL: flags.url, Params: flags.params, Container: container}, pickRenderer(flags.renderer, "", cfg.Renderer), nil
	}

	name := flags.chartName
	if name == "" {
		names := cfg.Names()
		if len(names) == 0 {
			return chart.Request{}, "", fmt.Errorf("either --url or --config with at least one chart is required")
		}
		if err := survey.AskOne(&survey.Select{
			Message: "Chart:",
			Options: names,
		}, &name); err != nil {
			return chart.Request{}, "", fmt.Errorf("select chart: %w", err)
		}
	}

	ch, ok := cfg.Chart(name)
	if !ok {
		return chart.Request{}, "", fmt.Errorf("unknown chart %q (available: %v)", name, cfg.Names())
	}
	if !flags.containerSet {
		container.ID = ""
	}
	req := ch.Request(container)
	if flags.params != "" {
		req.Params = flags.params
	}
	return req, pickRenderer(flags.renderer, ch.Renderer, cfg.Renderer), nil
}

func pickRenderer(candidates ...string) string {
	for _, name := range candidates {
		if name != "" {
			return name
		}
	}
	return ""
}

func newNotifier(w io.Writer, interactive bool) notify.Notifier {
	if interactive {
		return notify.NewAlert()
	}
	return notify.NewWriter(w, "chartload: ")
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
