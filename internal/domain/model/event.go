// Package model contains the domain models passed between layers: raw match
// events, roster and match metadata, and the derived per-player statistics.
package model

import (
	"fmt"
	"time"
)

// EventType names an on-pitch action.
type EventType string

// Known event types.
const (
	EventPass          EventType = "pass"
	EventCross         EventType = "cross"
	EventKeyPass       EventType = "key_pass"
	EventAssist        EventType = "assist"
	EventLongBall      EventType = "long_ball"
	EventThroughBall   EventType = "through_ball"
	EventCutBack       EventType = "cut_back"
	EventThrowIn       EventType = "throw_in"
	EventCorner        EventType = "corner"
	EventFreeKick      EventType = "free_kick"
	EventGoalKick      EventType = "goal_kick"
	EventShot          EventType = "shot"
	EventPenalty       EventType = "penalty"
	EventTackle        EventType = "tackle"
	EventInterception  EventType = "interception"
	EventClearance     EventType = "clearance"
	EventBlock         EventType = "block"
	EventAerialDuel    EventType = "aerial_duel"
	EventRecovery      EventType = "recovery"
	EventDribble       EventType = "dribble"
	EventDispossession EventType = "dispossession"
	EventBadTouch      EventType = "bad_touch"
	EventOffside       EventType = "offside"
	EventTurnover      EventType = "turnover"
	EventFoul          EventType = "foul"
	EventSave          EventType = "save"
)

var knownEventTypes = map[EventType]struct{}{
	EventPass: {}, EventCross: {}, EventKeyPass: {}, EventAssist: {}, EventLongBall: {},
	EventThroughBall: {}, EventCutBack: {}, EventThrowIn: {}, EventCorner: {}, EventFreeKick: {},
	EventGoalKick: {}, EventShot: {}, EventPenalty: {}, EventTackle: {}, EventInterception: {},
	EventClearance: {}, EventBlock: {}, EventAerialDuel: {}, EventRecovery: {}, EventDribble: {},
	EventDispossession: {}, EventBadTouch: {}, EventOffside: {}, EventTurnover: {}, EventFoul: {},
	EventSave: {},
}

// Known reports whether t is a recognized event type.
func (t EventType) Known() bool {
	_, ok := knownEventTypes[t]
	return ok
}

// IsPassFamily reports whether t is a ball-distribution event played in open play.
func (t EventType) IsPassFamily() bool {
	switch t {
	case EventPass, EventCross, EventKeyPass, EventAssist, EventLongBall, EventThroughBall, EventCutBack:
		return true
	}
	return false
}

// IsShot reports whether t is an attempt on goal.
func (t EventType) IsShot() bool {
	return t == EventShot || t == EventPenalty
}

// IsSetPiece reports whether t is an attributed set piece (corner or free kick).
func (t EventType) IsSetPiece() bool {
	return t == EventCorner || t == EventFreeKick
}

// IsDefensive reports whether t is a defensive action.
func (t EventType) IsDefensive() bool {
	switch t {
	case EventTackle, EventInterception, EventClearance, EventBlock, EventRecovery:
		return true
	}
	return false
}

// ShotOutcome is the recorded result of a shot.
type ShotOutcome string

// Shot outcomes. The empty value means the event is not a shot or the outcome is unknown.
const (
	ShotGoal      ShotOutcome = "goal"
	ShotOnTarget  ShotOutcome = "on_target"
	ShotOffTarget ShotOutcome = "off_target"
	ShotBlocked   ShotOutcome = "blocked"
)

// OnTarget reports whether the shot hit the target, goals included.
func (o ShotOutcome) OnTarget() bool {
	return o == ShotGoal || o == ShotOnTarget
}

// DuelOutcome is the explicit outcome of a duel when the capture tool records one.
type DuelOutcome string

// Duel outcomes. The empty value means no explicit outcome was captured.
const (
	DuelWon  DuelOutcome = "won"
	DuelLost DuelOutcome = "lost"
)

// Pitch coordinate bounds.
const (
	MinCoord = 0.0
	MaxCoord = 100.0
)

// MatchEvent is one recorded on-pitch action. Coordinates are normalized to
// [0,100] with 0 at the own goal line (x) and the left touchline (y).
type MatchEvent struct {
	ID       string
	MatchID  string
	PlayerID string // empty when unknown
	TeamID   string // optional; the roster is authoritative when the player is known
	Type     EventType

	X, Y       float64
	EndX, EndY *float64 // nil when no end point was recorded

	Successful  bool
	ShotOutcome ShotOutcome
	DuelOutcome DuelOutcome
	IsHeader    bool

	Half    int
	Minute  int
	Seconds *int

	CreatedAt time.Time // ingestion timestamp
	PhaseID   string    // empty when the event is not part of a phase
}

// HasEnd reports whether both end coordinates are present.
func (e *MatchEvent) HasEnd() bool {
	return e.EndX != nil && e.EndY != nil
}

// IsGoal reports whether the event is a shot that resulted in a goal.
func (e *MatchEvent) IsGoal() bool {
	return e.Type.IsShot() && e.ShotOutcome == ShotGoal
}

// Validate checks the fields every accumulator relies on.
func (e *MatchEvent) Validate() error {
	switch {
	case e.ID == "":
		return fmt.Errorf("%w: event id", ErrMissingIdentifier)
	case e.MatchID == "":
		return fmt.Errorf("%w: match id on event %s", ErrMissingIdentifier, e.ID)
	case !e.Type.Known():
		return fmt.Errorf("%w: %q on event %s", ErrUnknownEventType, e.Type, e.ID)
	case e.Half != 1 && e.Half != 2:
		return fmt.Errorf("%w: %d on event %s", ErrInvalidHalf, e.Half, e.ID)
	}
	if !inPitch(e.X) || !inPitch(e.Y) {
		return fmt.Errorf("%w: (%.2f, %.2f) on event %s", ErrInvalidCoordinates, e.X, e.Y, e.ID)
	}
	if (e.EndX != nil && !inPitch(*e.EndX)) || (e.EndY != nil && !inPitch(*e.EndY)) {
		return fmt.Errorf("%w: end point on event %s", ErrInvalidCoordinates, e.ID)
	}
	return nil
}

func inPitch(v float64) bool {
	return v >= MinCoord && v <= MaxCoord
}

// EventQuery filters and pages events returned by an event store.
type EventQuery struct {
	EventTypes []EventType
	PlayerID   string
	TeamID     string
	Offset     int
	Limit      int
}

// Timestamps returns the ingestion timestamps of events in milliseconds, in input order.
func Timestamps(events []MatchEvent) []int64 {
	out := make([]int64, len(events))
	for i := range events {
		out[i] = events[i].CreatedAt.UnixMilli()
	}
	return out
}

// Float returns a pointer to v. Handy for optional end coordinates.
func Float(v float64) *float64 { return &v }
