package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/pitchlens/internal/domain/model"
	"github.com/okian/pitchlens/internal/report"
)

func newReportCmd(c *cli) *cobra.Command {
	var (
		scope   string
		shots   bool
		players bool
	)
	cmd := &cobra.Command{
		Use:   "report <match-id>",
		Short: "Print the analytics of one match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := model.ParseScope(scope)
			if err != nil {
				return err
			}
			a, err := c.svc.AggregateMatch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return c.output(out, a, func() {
				report.PrintAnalytics(out, a, sc)
				if shots {
					report.PrintShots(out, a.Shots.Shots)
				}
				if players {
					report.PrintPlayers(out, *a.Players.At(sc))
				}
			})
		},
	}
	cmd.Flags().StringVar(&scope, "scope", "all", "all, first_half or second_half")
	cmd.Flags().BoolVar(&shots, "shots", false, "also print every shot with its xG")
	cmd.Flags().BoolVar(&players, "players", false, "also print per-player stats")
	return cmd
}
