// Package report renders analytics as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/okian/pitchlens/internal/domain/accumulate"
	"github.com/okian/pitchlens/internal/domain/aggregate"
	"github.com/okian/pitchlens/internal/domain/compare"
	"github.com/okian/pitchlens/internal/domain/model"
)

var sides = [2]model.Side{model.SideHome, model.SideAway}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func pct(v float64) string { return fmt.Sprintf("%.1f%%", v) }

func f2(v float64) string { return fmt.Sprintf("%.2f", v) }

func teamName(m model.MatchMetadata, side model.Side) string {
	if side == model.SideAway {
		return m.AwayTeamName
	}
	return m.HomeTeamName
}

// PrintMatchSummary prints a one-line header for the match.
func PrintMatchSummary(w io.Writer, a aggregate.MatchAnalytics, scope model.Scope) {
	home := a.Shots.Summary.Home.At(scope)
	away := a.Shots.Summary.Away.At(scope)
	fmt.Fprintf(w, "\nMatch: %s  |  %s %d - %d %s  |  xG %.2f - %.2f  |  Scope: %s\n\n",
		a.Match.MatchID, a.Match.HomeTeamName, home.Goals, away.Goals, a.Match.AwayTeamName,
		home.XG, away.XG, scope)
}

// PrintAnalytics prints every team-level view of a match for one scope.
func PrintAnalytics(w io.Writer, a aggregate.MatchAnalytics, scope model.Scope) {
	PrintMatchSummary(w, a, scope)
	PrintPassByThird(w, a, scope)
	PrintLaneThreat(w, a, scope)
	PrintShotSummary(w, a, scope)
	PrintSetPieces(w, a, scope)
	PrintEventTypes(w, a, scope)
	PrintDiagnostics(w, a.Diagnostics)
}

// PrintPassByThird prints completed passes per third of the pitch.
func PrintPassByThird(w io.Writer, a aggregate.MatchAnalytics, scope model.Scope) {
	table := newTable(w)
	table.Header("TEAM", "DEF", "DEF%", "MID", "MID%", "FINAL", "FINAL%", "TOTAL")
	for _, side := range sides {
		z := a.PassByThird.At(side).At(scope)
		table.Append(
			teamName(a.Match, side),
			strconv.Itoa(z.Defensive), pct(z.DefensivePercent),
			strconv.Itoa(z.Middle), pct(z.MiddlePercent),
			strconv.Itoa(z.Final), pct(z.FinalPercent),
			strconv.Itoa(z.Total),
		)
	}
	table.Render()
}

// PrintLaneThreat prints completed passes and threat per lane.
func PrintLaneThreat(w io.Writer, a aggregate.MatchAnalytics, scope model.Scope) {
	table := newTable(w)
	table.Header("TEAM", "LEFT", "LEFT%", "CENTER", "CENTER%", "RIGHT", "RIGHT%", "THREAT")
	for _, side := range sides {
		l := a.LaneThreat.At(side).At(scope)
		table.Append(
			teamName(a.Match, side),
			strconv.Itoa(l.Left.Passes), pct(l.Left.ThreatPercent),
			strconv.Itoa(l.Center.Passes), pct(l.Center.ThreatPercent),
			strconv.Itoa(l.Right.Passes), pct(l.Right.ThreatPercent),
			f2(l.Left.Threat+l.Center.Threat+l.Right.Threat),
		)
	}
	table.Render()
}

// PrintShotSummary prints shots, goals and xG per team.
func PrintShotSummary(w io.Writer, a aggregate.MatchAnalytics, scope model.Scope) {
	table := newTable(w)
	table.Header("TEAM", "SHOTS", "ON_TGT", "GOALS", "XG", "G-XG", "XG/SHOT")
	for _, side := range sides {
		s := a.Shots.Summary.At(side).At(scope)
		table.Append(
			teamName(a.Match, side),
			strconv.Itoa(s.Shots), strconv.Itoa(s.OnTarget), strconv.Itoa(s.Goals),
			f2(s.XG), fmt.Sprintf("%+.2f", s.Overperformance), f2(s.Quality),
		)
	}
	table.Render()
}

// PrintShots prints every shot with its xG.
func PrintShots(w io.Writer, shots []accumulate.ShotRecord) {
	table := newTable(w)
	table.Header("MIN", "SIDE", "X", "Y", "ZONE", "DIST", "ANGLE", "HEAD", "OUTCOME", "XG")
	for _, s := range shots {
		head := ""
		if s.Header {
			head = "yes"
		}
		table.Append(
			strconv.Itoa(s.Minute), s.Side,
			fmt.Sprintf("%.1f", s.X), fmt.Sprintf("%.1f", s.Y),
			string(s.Zone), fmt.Sprintf("%.1fm", s.Distance), fmt.Sprintf("%.1f°", s.Angle),
			head, string(s.Outcome), f2(s.XG),
		)
	}
	table.Render()
}

// PrintSetPieces prints set-piece takers of both teams.
func PrintSetPieces(w io.Writer, a aggregate.MatchAnalytics, scope model.Scope) {
	table := newTable(w)
	table.Header("TEAM", "TAKER", "CORNERS", "FREE_KICKS", "SHOTS_EST", "GOALS_EST", "SHOTS", "GOALS")
	for _, side := range sides {
		for _, t := range *a.SetPieces.At(side).At(scope) {
			table.Append(
				teamName(a.Match, side), t.Key,
				strconv.Itoa(t.Corners), strconv.Itoa(t.FreeKicks),
				fmt.Sprintf("%.1f", t.ShotsCreated), fmt.Sprintf("%.1f", t.GoalsCreated),
				strconv.Itoa(t.LinkedShots), strconv.Itoa(t.LinkedGoals),
			)
		}
	}
	table.Render()
}

// PrintEventTypes prints the per-team event type tally.
func PrintEventTypes(w io.Writer, a aggregate.MatchAnalytics, scope model.Scope) {
	table := newTable(w)
	table.Header("TEAM", "CORNERS", "THROW_INS", "AERIALS", "BACKWARD", "INCOMPLETE", "LOSSES")
	for _, side := range sides {
		t := a.EventTypes.At(side).At(scope)
		losses := a.PossessionLosses.Counts.At(side).At(scope)
		table.Append(
			teamName(a.Match, side),
			fmt.Sprintf("%d/%d", t.CornersSuccessful, t.CornersSuccessful+t.CornersFailed),
			fmt.Sprintf("%d/%d", t.ThrowInsSuccessful, t.ThrowInsSuccessful+t.ThrowInsFailed),
			fmt.Sprintf("%d/%d", t.AerialWon, t.AerialWon+t.AerialLost),
			strconv.Itoa(t.BackwardPasses), strconv.Itoa(t.IncompletePasses),
			strconv.Itoa(*losses),
		)
	}
	table.Render()
}

// PrintDiagnostics prints what happened to the input events.
func PrintDiagnostics(w io.Writer, d aggregate.Diagnostics) {
	fmt.Fprintf(w, "\nEvents: %d fetched, %d folded, %d duplicate, %d rejected, %d without a team\n",
		d.Fetched, d.Folded, d.Duplicates, d.Rejected(), d.Unattributed)
}

// PrintPlayers prints per-player stats.
func PrintPlayers(w io.Writer, players []model.PlayerStats) {
	table := newTable(w)
	table.Header("TEAM", "#", "NAME", "MP", "PASS", "PASS%", "FWD", "KEY", "SHOTS", "GOALS", "XG", "TKL", "INT", "LOSSES")
	for _, p := range players {
		table.Append(
			p.TeamName, strconv.Itoa(p.JerseyNumber), p.Name, strconv.Itoa(p.Matches),
			strconv.Itoa(p.Passes), pct(p.PassAccuracy()), strconv.Itoa(p.ForwardPasses),
			strconv.Itoa(p.KeyPasses), strconv.Itoa(p.Shots), strconv.Itoa(p.Goals), f2(p.TotalXG()),
			strconv.Itoa(p.Tackles), strconv.Itoa(p.Interceptions), strconv.Itoa(p.PossessionLosses),
		)
	}
	table.Render()
}

// PrintComparison prints both matches side by side, one row per player.
func PrintComparison(w io.Writer, r compare.Result) {
	fmt.Fprintf(w, "\nMatch 1: %s (%s)  |  Match 2: %s (%s)\n\n",
		r.Match1.MatchID, r.Match1.Source, r.Match2.MatchID, r.Match2.Source)

	table := newTable(w)
	table.Header("TEAM", "#", "NAME", "PASS 1", "PASS 2", "PASS% 1", "PASS% 2", "GOALS 1", "GOALS 2", "XG 1", "XG 2")
	for _, c := range r.Players {
		a, b := c.Match1Stats, c.Match2Stats
		table.Append(
			c.TeamName, strconv.Itoa(c.JerseyNumber), c.Name,
			strconv.Itoa(a.Passes), strconv.Itoa(b.Passes),
			pct(a.PassAccuracy()), pct(b.PassAccuracy()),
			strconv.Itoa(a.Goals), strconv.Itoa(b.Goals),
			f2(a.TotalXG()), f2(b.TotalXG()),
		)
	}
	table.Render()
}

func ms(v int64) string {
	return (time.Duration(v) * time.Millisecond).Round(time.Second).String()
}

// PrintWorkTime prints active and break time per match and per day.
func PrintWorkTime(w io.Writer, r aggregate.WorkTimeReport) {
	fmt.Fprintf(w, "\nBreak threshold: %s\n\n", ms(r.ThresholdMs))

	mt := newTable(w)
	mt.Header("MATCH", "EVENTS", "ACTIVE", "BREAKS", "BREAK_TIME")
	for _, m := range r.Matches {
		mt.Append(m.MatchID, strconv.Itoa(m.Events), ms(m.ActiveMs), strconv.Itoa(m.BreakCount), ms(m.BreakMs))
	}
	mt.Render()

	dt := newTable(w)
	dt.Header("DAY", "MATCHES", "EVENTS", "ACTIVE", "BREAKS", "BREAK_TIME")
	for _, d := range r.Days {
		dt.Append(d.Day, strconv.Itoa(d.Matches), strconv.Itoa(d.EventCount), ms(d.ActiveMs), strconv.Itoa(d.BreakCount), ms(d.BreakMs))
	}
	dt.Render()
}
