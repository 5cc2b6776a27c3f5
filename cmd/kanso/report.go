package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-mindful-tracker/internal/cli"
)

func newReportCommand(opts *options) *cobra.Command {
	var asJSON bool

	command := &cobra.Command{
		Use:   "report",
		Short: "Print the metrics report of every exported habit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := opts.resolve()
			if err != nil {
				return err
			}

			habits, err := cli.LoadExportFile(opts.file)
			if err != nil {
				return err
			}

			reports := cli.EvaluateAll(habits, ev.period, ev.mode, ev.today)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(reports)
			}
			return cli.RenderReports(cmd.OutOrStdout(), reports)
		},
	}

	command.Flags().BoolVar(&asJSON, "json", false, "print the reports as JSON")

	return command
}
