package main

import (
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := c.svc.ListMatches(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return c.output(out, list, func() {
				table := tablewriter.NewTable(out, tablewriter.WithConfig(tablewriter.Config{
					Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
					Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
				}))
				table.Header("MATCH", "HOME", "AWAY", "EVENTS", "FIRST_EVENT")
				for _, m := range list {
					first := ""
					if !m.FirstEventAt.IsZero() {
						first = m.FirstEventAt.UTC().Format(time.RFC3339)
					}
					table.Append(m.MatchID, m.HomeTeamName, m.AwayTeamName, strconv.Itoa(m.Events), first)
				}
				table.Render()
			})
		},
	}
}
