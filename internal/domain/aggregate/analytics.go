package aggregate

import (
	"github.com/okian/pitchlens/internal/domain/accumulate"
	"github.com/okian/pitchlens/internal/domain/model"
)

// MatchAnalytics is every derived view of one match, each split by team and
// scope. It is a snapshot and is not modified after it is returned.
type MatchAnalytics struct {
	Match model.MatchMetadata `json:"match"`

	PassByThird      model.TeamPair[model.Scoped[accumulate.ZoneStats]]       `json:"passByThird"`
	LaneThreat       model.TeamPair[model.Scoped[accumulate.LaneStats]]       `json:"laneThreat"`
	SetPieces        model.TeamPair[model.Scoped[[]accumulate.SetPieceTaker]] `json:"setPieces"`
	PossessionLosses accumulate.PossessionLosses                              `json:"possessionLosses"`
	EventTypes       model.TeamPair[model.Scoped[accumulate.TypeTally]]       `json:"eventTypes"`
	Shots            accumulate.ShotMap                                       `json:"shots"`
	Defensive        accumulate.DefensiveMap                                  `json:"defensive"`
	Phases           []accumulate.Phase                                       `json:"phases"`
	Players          model.Scoped[[]model.PlayerStats]                        `json:"players"`

	Diagnostics Diagnostics `json:"diagnostics"`
}

// Diagnostics counts what happened to the input events.
type Diagnostics struct {
	Fetched            int `json:"fetched"`
	Folded             int `json:"folded"`
	Duplicates         int `json:"duplicates"`
	InvalidCoordinates int `json:"invalidCoordinates"`
	UnknownType        int `json:"unknownType"`
	MissingIdentifiers int `json:"missingIdentifiers"`
	InvalidHalf        int `json:"invalidHalf"`
	Unattributed       int `json:"unattributed"`
}

// Rejected returns the number of events skipped as malformed.
func (d Diagnostics) Rejected() int {
	return d.InvalidCoordinates + d.UnknownType + d.MissingIdentifiers + d.InvalidHalf
}

// reducers is the fixed set of accumulators for one aggregation.
type reducers struct {
	passByThird *accumulate.PassByThird
	laneThreat  *accumulate.LaneThreat
	setPieces   *accumulate.SetPieces
	losses      *accumulate.PossessionLoss
	tally       *accumulate.EventTypeTally
	shots       *accumulate.Shots
	defensive   *accumulate.Defensive
	phases      *accumulate.Phases
	players     *accumulate.Players
}

func newReducers(ratios accumulate.SetPieceRatios) *reducers {
	return &reducers{
		passByThird: accumulate.NewPassByThird(),
		laneThreat:  accumulate.NewLaneThreat(),
		setPieces:   accumulate.NewSetPieces(ratios),
		losses:      accumulate.NewPossessionLoss(),
		tally:       accumulate.NewEventTypeTally(),
		shots:       accumulate.NewShots(),
		defensive:   accumulate.NewDefensive(),
		phases:      accumulate.NewPhases(),
		players:     accumulate.NewPlayers(),
	}
}

func (r *reducers) folders() []accumulate.Folder {
	return []accumulate.Folder{
		r.passByThird, r.laneThreat, r.setPieces, r.losses, r.tally,
		r.shots, r.defensive, r.phases, r.players,
	}
}

// router caches the folders interested in each event type.
type router struct {
	folders []accumulate.Folder
	byType  map[model.EventType][]accumulate.Folder
}

func newRouter(folders []accumulate.Folder) *router {
	return &router{folders: folders, byType: make(map[model.EventType][]accumulate.Folder)}
}

func (r *router) route(t model.EventType) []accumulate.Folder {
	if fs, ok := r.byType[t]; ok {
		return fs
	}
	fs := make([]accumulate.Folder, 0, len(r.folders))
	for _, f := range r.folders {
		if f.Accepts(t) {
			fs = append(fs, f)
		}
	}
	r.byType[t] = fs
	return fs
}

func (r *reducers) finalize(meta model.MatchMetadata, diag Diagnostics) MatchAnalytics {
	return MatchAnalytics{
		Match:            meta,
		PassByThird:      r.passByThird.Finalize(),
		LaneThreat:       r.laneThreat.Finalize(),
		SetPieces:        r.setPieces.Finalize(),
		PossessionLosses: r.losses.Finalize(),
		EventTypes:       r.tally.Finalize(),
		Shots:            r.shots.Finalize(),
		Defensive:        r.defensive.Finalize(),
		Phases:           r.phases.Finalize(),
		Players:          r.players.Finalize(),
		Diagnostics:      diag,
	}
}
