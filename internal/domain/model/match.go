package model

import "fmt"

// MatchMetadata identifies the two sides of a match.
type MatchMetadata struct {
	MatchID      string `json:"matchId"`
	HomeTeamID   string `json:"homeTeamId"`
	AwayTeamID   string `json:"awayTeamId"`
	HomeTeamName string `json:"homeTeamName"`
	AwayTeamName string `json:"awayTeamName"`
}

// TeamName returns the display name for teamID, or "" if it plays in neither side.
func (m MatchMetadata) TeamName(teamID string) string {
	switch teamID {
	case m.HomeTeamID:
		return m.HomeTeamName
	case m.AwayTeamID:
		return m.AwayTeamName
	}
	return ""
}

// Player is a roster entry.
type Player struct {
	ID           string `json:"id"`
	TeamID       string `json:"teamId"`
	Name         string `json:"name"`
	JerseyNumber int    `json:"jerseyNumber"`
	Role         string `json:"role,omitempty"`
}

// Side distinguishes the home and away team of a match.
type Side int

// Sides.
const (
	SideHome Side = iota
	SideAway
)

func (s Side) String() string {
	if s == SideAway {
		return "away"
	}
	return "home"
}

// TeamPair holds one value per side.
type TeamPair[T any] struct {
	Home T `json:"home"`
	Away T `json:"away"`
}

// At returns a pointer to the value for side.
func (p *TeamPair[T]) At(side Side) *T {
	if side == SideAway {
		return &p.Away
	}
	return &p.Home
}

// Scope is the half-partition a statistic is computed over.
type Scope int

// Scopes. ScopeAll covers both halves.
const (
	ScopeAll Scope = iota
	ScopeFirstHalf
	ScopeSecondHalf
)

func (s Scope) String() string {
	switch s {
	case ScopeFirstHalf:
		return "first_half"
	case ScopeSecondHalf:
		return "second_half"
	}
	return "all"
}

// ParseScope is the inverse of Scope.String. It also accepts "1" and "2".
func ParseScope(v string) (Scope, error) {
	switch v {
	case "", "all":
		return ScopeAll, nil
	case "first_half", "1":
		return ScopeFirstHalf, nil
	case "second_half", "2":
		return ScopeSecondHalf, nil
	}
	return ScopeAll, fmt.Errorf("%w: %q", ErrUnknownScope, v)
}

// HalfScope maps a half number to its scope. Anything but 2 maps to the first half.
func HalfScope(half int) Scope {
	if half == 2 {
		return ScopeSecondHalf
	}
	return ScopeFirstHalf
}

// Scoped holds one value per scope.
type Scoped[T any] struct {
	All        T `json:"all"`
	FirstHalf  T `json:"firstHalf"`
	SecondHalf T `json:"secondHalf"`
}

// At returns a pointer to the value for scope.
func (s *Scoped[T]) At(scope Scope) *T {
	switch scope {
	case ScopeFirstHalf:
		return &s.FirstHalf
	case ScopeSecondHalf:
		return &s.SecondHalf
	}
	return &s.All
}

// Zone is a pitch third along the attacking axis.
type Zone string

// Zones.
const (
	ZoneDefensive Zone = "defensive"
	ZoneMiddle    Zone = "middle"
	ZoneFinal     Zone = "final"
)

// Lane is a corridor across the pitch width.
type Lane string

// Lanes.
const (
	LaneLeft   Lane = "left"
	LaneCenter Lane = "center"
	LaneRight  Lane = "right"
)

// Direction is the direction of a pass relative to the attacking axis.
type Direction string

// Directions.
const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
	DirectionLateral  Direction = "lateral"
)
