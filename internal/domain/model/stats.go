package model

import (
	"encoding/json"
	"math"
)

// PlayerStats holds the running sums derived for one player over one scope
// (a half, a match, or several matches). Ratios are never stored: they are
// recomputed from the sums on every read.
type PlayerStats struct {
	PlayerID     string `json:"playerId"`
	Name         string `json:"name"`
	JerseyNumber int    `json:"jerseyNumber"`
	TeamID       string `json:"teamId"`
	TeamName     string `json:"teamName"`

	Matches int `json:"matches"`

	Passes            int `json:"passes"`
	SuccessfulPasses  int `json:"successfulPasses"`
	FailedPasses      int `json:"failedPasses"`
	ForwardPasses     int `json:"forwardPasses"`
	BackwardPasses    int `json:"backwardPasses"`
	LateralPasses     int `json:"lateralPasses"`
	DefensiveThird    int `json:"passesDefensiveThird"`
	MiddleThird       int `json:"passesMiddleThird"`
	FinalThird        int `json:"passesFinalThird"`
	KeyPasses         int `json:"keyPasses"`
	Assists           int `json:"assists"`
	Crosses           int `json:"crosses"`
	PossessionLosses  int `json:"possessionLosses"`
	Dribbles          int `json:"dribbles"`
	SuccessfulDribble int `json:"successfulDribbles"`

	Shots         int     `json:"shots"`
	ShotsOnTarget int     `json:"shotsOnTarget"`
	Goals         int     `json:"goals"`
	XG            float64 `json:"xg"`

	Tackles        int `json:"tackles"`
	TacklesWon     int `json:"tacklesWon"`
	Interceptions  int `json:"interceptions"`
	Clearances     int `json:"clearances"`
	Blocks         int `json:"blocks"`
	Recoveries     int `json:"recoveries"`
	AerialDuels    int `json:"aerialDuels"`
	AerialDuelsWon int `json:"aerialDuelsWon"`

	Corners   int `json:"corners"`
	FreeKicks int `json:"freeKicks"`
	ThrowIns  int `json:"throwIns"`
}

// Percent returns num/den as a percentage rounded to one decimal, or 0 when den is 0.
func Percent(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return Round(float64(num)/float64(den)*100, 1)
}

// Round rounds v to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// PassAccuracy is successful passes over attempted passes.
func (s PlayerStats) PassAccuracy() float64 { return Percent(s.SuccessfulPasses, s.Passes) }

// ShotAccuracy is shots on target over shots.
func (s PlayerStats) ShotAccuracy() float64 { return Percent(s.ShotsOnTarget, s.Shots) }

// Conversion is goals over shots.
func (s PlayerStats) Conversion() float64 { return Percent(s.Goals, s.Shots) }

// DribbleSuccess is successful dribbles over dribbles.
func (s PlayerStats) DribbleSuccess() float64 { return Percent(s.SuccessfulDribble, s.Dribbles) }

// AerialWinRate is aerial duels won over aerial duels.
func (s PlayerStats) AerialWinRate() float64 { return Percent(s.AerialDuelsWon, s.AerialDuels) }

// TotalXG is the xG sum rounded to two decimals.
func (s PlayerStats) TotalXG() float64 { return Round(s.XG, 2) }

// IsEmpty reports whether no counting field was ever incremented.
func (s PlayerStats) IsEmpty() bool {
	o := s
	o.PlayerID, o.Name, o.JerseyNumber, o.TeamID, o.TeamName, o.Matches = "", "", 0, "", "", 0
	return o == PlayerStats{}
}

// Add folds the sums of o into s. Identity fields of s are kept and only filled
// from o when s has none.
func (s *PlayerStats) Add(o PlayerStats) {
	if s.PlayerID == "" {
		s.PlayerID, s.Name, s.JerseyNumber = o.PlayerID, o.Name, o.JerseyNumber
		s.TeamID, s.TeamName = o.TeamID, o.TeamName
	}
	s.Matches += o.Matches
	s.Passes += o.Passes
	s.SuccessfulPasses += o.SuccessfulPasses
	s.FailedPasses += o.FailedPasses
	s.ForwardPasses += o.ForwardPasses
	s.BackwardPasses += o.BackwardPasses
	s.LateralPasses += o.LateralPasses
	s.DefensiveThird += o.DefensiveThird
	s.MiddleThird += o.MiddleThird
	s.FinalThird += o.FinalThird
	s.KeyPasses += o.KeyPasses
	s.Assists += o.Assists
	s.Crosses += o.Crosses
	s.PossessionLosses += o.PossessionLosses
	s.Dribbles += o.Dribbles
	s.SuccessfulDribble += o.SuccessfulDribble
	s.Shots += o.Shots
	s.ShotsOnTarget += o.ShotsOnTarget
	s.Goals += o.Goals
	s.XG += o.XG
	s.Tackles += o.Tackles
	s.TacklesWon += o.TacklesWon
	s.Interceptions += o.Interceptions
	s.Clearances += o.Clearances
	s.Blocks += o.Blocks
	s.Recoveries += o.Recoveries
	s.AerialDuels += o.AerialDuels
	s.AerialDuelsWon += o.AerialDuelsWon
	s.Corners += o.Corners
	s.FreeKicks += o.FreeKicks
	s.ThrowIns += o.ThrowIns
}

// MarshalJSON emits the sums plus the ratios computed at encode time.
func (s PlayerStats) MarshalJSON() ([]byte, error) {
	type sums PlayerStats
	return json.Marshal(struct {
		sums
		XG             float64 `json:"xg"`
		PassAccuracy   float64 `json:"passAccuracy"`
		ShotAccuracy   float64 `json:"shotAccuracy"`
		Conversion     float64 `json:"conversion"`
		DribbleSuccess float64 `json:"dribbleSuccess"`
		AerialWinRate  float64 `json:"aerialWinRate"`
	}{
		sums:           sums(s),
		XG:             s.TotalXG(),
		PassAccuracy:   s.PassAccuracy(),
		ShotAccuracy:   s.ShotAccuracy(),
		Conversion:     s.Conversion(),
		DribbleSuccess: s.DribbleSuccess(),
		AerialWinRate:  s.AerialWinRate(),
	})
}

// PlayerHalfStats is a pre-aggregated per-half stats row kept by older
// ingestion pipelines.
type PlayerHalfStats struct {
	MatchID string
	Half    int
	PlayerStats
}
