package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/conductor/pkg/errors"
	"github.com/matzehuels/conductor/pkg/scenario"
	"github.com/matzehuels/conductor/pkg/trace"
)

// graphCommand creates the graph command for rendering scenario timelines.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph <scenario.toml>",
		Short: "Render a scenario timeline as a Graphviz diagram",
		Long: `Render a scenario timeline as a Graphviz diagram.

The graph command replays a scenario and converts the recorded event
timeline to DOT. Applied transitions render as plain nodes; degraded
requests (drops, exhausted retries, no-ops) render dashed and grey.

With --format svg or png the DOT is rendered via Graphviz; the default
output file is the scenario name plus the format extension. DOT output
goes to stdout unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], format, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to <scenario>.<format>)")

	return cmd
}

// runGraph replays a scenario and writes the rendered timeline.
func (c *CLI) runGraph(ctx context.Context, input, format, output string) error {
	s, err := scenario.Load(input)
	if err != nil {
		return err
	}

	result, err := scenario.Run(s, scenario.RunOptions{Hooks: newLogHooks(c.Logger)})
	if err != nil {
		return err
	}

	dot := trace.ToDOT(result.Events)
	format = strings.ToLower(format)

	var data []byte
	switch format {
	case "dot":
		if output == "" {
			fmt.Print(dot)
			return nil
		}
		data = []byte(dot)
	case "svg", "png":
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
		spinner.Start()
		if format == "svg" {
			data, err = trace.RenderSVG(dot)
		} else {
			data, err = trace.RenderPNG(dot)
		}
		if err != nil {
			spinner.StopWithError("Rendering failed")
			return err
		}
		spinner.Stop()
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want dot, svg, or png)", format)
	}

	if output == "" {
		output = fmt.Sprintf("%s.%s", s.Name, format)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Rendered %d events", len(result.Events))
	printFile(output)
	return nil
}
