package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/pitchlens/internal/report"
)

func newCompareCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <match-1> <match-2>",
		Short: "Compare per-player stats of two matches",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.svc.CompareMatches(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return c.output(out, r, func() { report.PrintComparison(out, r) })
		},
	}
}

func newPlayersCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "players <match-id>...",
		Short: "Sum per-player stats across matches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := c.svc.AggregatePlayers(cmd.Context(), args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return c.output(out, players, func() { report.PrintPlayers(out, players) })
		},
	}
}
