package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/conductor/pkg/scenario"
	"github.com/matzehuels/conductor/pkg/trace"
)

// replayCommand creates the replay command for running scenario files.
func (c *CLI) replayCommand() *cobra.Command {
	var (
		output string
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "replay <scenario.toml>",
		Short: "Replay a navigation scenario and print its timeline",
		Long: `Replay a navigation scenario and print its timeline.

The replay command runs a scripted scenario against a fresh navigator on a
virtual clock, so the same file always produces the same event sequence.
Every coordinator event is printed in order, followed by the final
navigation state.

Use --output to additionally write the timeline as a JSON trace file, which
'graph' and 'serve' can visualize.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReplay(args[0], output, quiet)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the timeline as a JSON trace file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the per-event timeline")

	return cmd
}

// runReplay loads, replays, and reports a scenario.
func (c *CLI) runReplay(input, output string, quiet bool) error {
	s, err := scenario.Load(input)
	if err != nil {
		return err
	}

	result, err := scenario.Run(s, scenario.RunOptions{Hooks: newLogHooks(c.Logger)})
	if err != nil {
		return err
	}

	if !quiet {
		printInfo("%s", StyleTitle.Render(fmt.Sprintf("Timeline for %q", result.Scenario)))
		for _, e := range result.Events {
			printDetail("%3d  %s", e.Seq, e.Label())
		}
		printNewline()
	}

	printSuccess("Replayed %d steps in %dms virtual time", len(s.Steps), result.VirtualMS)
	printKeyValue("Path", formatStack(result.Path))
	printKeyValue("Modals", formatStack(result.Modals))
	if s.Tabs > 0 {
		printKeyValue("Selected tab", fmt.Sprintf("%d", result.SelectedTab))
	}

	if output != "" {
		if err := trace.WriteFile(result.Events, output); err != nil {
			return err
		}
		printFile(output)
	}
	return nil
}

// formatStack renders a stack bottom-to-top, or a placeholder when empty.
func formatStack(keys []string) string {
	if len(keys) == 0 {
		return StyleDim.Render("(empty)")
	}
	return strings.Join(keys, " → ")
}
