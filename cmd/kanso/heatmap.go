package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/cli"
	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/core/metrics"
)

func newHeatmapCommand(opts *options) *cobra.Command {
	var habitID int64

	command := &cobra.Command{
		Use:   "heatmap",
		Short: "Print the completion heatmap of one habit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := opts.resolve()
			if err != nil {
				return err
			}

			habits, err := cli.LoadExportFile(opts.file)
			if err != nil {
				return err
			}
			habit, err := cli.FindHabit(habits, habitID)
			if err != nil {
				return err
			}

			iv := metrics.ResolvePeriod(ev.period, ev.mode, ev.today)
			weeks := metrics.Heatmap(habit.Logs, metrics.RuleFor(habit), iv)
			title := fmt.Sprintf("%s, %s %s (%s .. %s)", habit.Name, ev.period, ev.mode, iv.Start, iv.End)
			return cli.RenderHeatmap(cmd.OutOrStdout(), title, weeks)
		},
	}

	command.Flags().Int64Var(&habitID, "habit", 0, "habit id")
	_ = command.MarkFlagRequired("habit")

	return command
}
