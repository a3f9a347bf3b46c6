package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/pitchlens/internal/report"
)

func newWorkTimeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "worktime [match-id]...",
		Short: "Report data-entry active and break time",
		Long: `Split each match's ingestion timeline into active time and breaks. A gap
longer than break_threshold_ms counts as a break. Without arguments every
stored match is reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.svc.WorkTime(cmd.Context(), args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return c.output(out, r, func() { report.PrintWorkTime(out, r) })
		},
	}
}
