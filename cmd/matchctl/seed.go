package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/pitchlens/internal/testevents"
)

func newSeedCmd(c *cli) *cobra.Command {
	gen := testevents.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate synthetic matches into the event store",
		Long: `Generate synthetic matches with rosters, possession phases and ingestion
timestamps. The first --legacy matches also get stored per-half player rows,
so comparisons exercise both the stored and the recomputed path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			ds, err := testevents.Generate(ctx, gen)
			if err != nil {
				return err
			}
			stats, err := testevents.Seed(ctx, c.svc.Store(), ds, gen.LegacyMatches)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Seeded %d matches, %d players, %d events (%d phases, %d half rows) in %s\n",
				stats.Matches, stats.Players, stats.Events, stats.Phases, stats.HalfStats, stats.Duration.Round(time.Millisecond))
			for _, m := range ds.Matches {
				fmt.Fprintf(out, "  %s  %s vs %s\n", m.MatchID, m.HomeTeamName, m.AwayTeamName)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&gen.Matches, "matches", gen.Matches, "number of matches")
	f.IntVar(&gen.EventsPerMatch, "events", gen.EventsPerMatch, "events per match")
	f.IntVar(&gen.PlayersPerTeam, "players", gen.PlayersPerTeam, "players per team")
	f.Uint64Var(&gen.Seed, "seed", gen.Seed, "random seed; equal seeds give equal matches")
	f.IntVar(&gen.LegacyMatches, "legacy", gen.LegacyMatches, "matches that also get stored per-half rows")
	f.DurationVar(&gen.HalfTimeBreak, "half-time-break", gen.HalfTimeBreak, "pause in data entry between halves")
	return cmd
}
