package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/okian/pitchlens/internal/domain/model"
)

var base = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func openMemDB(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// backends runs fn against every Store implementation.
func backends(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, openMemDB(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, NewMemoryStore()) })
}

func seed(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	if err := s.SaveMatch(ctx, model.MatchMetadata{
		MatchID: "m1", HomeTeamID: "home", AwayTeamID: "away", HomeTeamName: "Harbour", AwayTeamName: "Valley",
	}); err != nil {
		t.Fatalf("SaveMatch: %v", err)
	}
	if err := s.SavePlayers(ctx, []model.Player{
		{ID: "h9", TeamID: "home", Name: "Ines", JerseyNumber: 9, Role: "FW"},
		{ID: "h1", TeamID: "home", Name: "Oli", JerseyNumber: 1, Role: "GK"},
		{ID: "a4", TeamID: "away", Name: "Kai", JerseyNumber: 4},
	}); err != nil {
		t.Fatalf("SavePlayers: %v", err)
	}

	sec := 12
	events := []model.MatchEvent{
		// Inserted out of order on purpose; two share a timestamp.
		{ID: "e3", MatchID: "m1", PlayerID: "a4", Type: model.EventTackle, X: 30, Y: 30, Half: 1, CreatedAt: base.Add(2 * time.Second)},
		{ID: "e2", MatchID: "m1", PlayerID: "h9", Type: model.EventShot, X: 90, Y: 50, Half: 1, ShotOutcome: model.ShotGoal, IsHeader: true, CreatedAt: base.Add(time.Second), PhaseID: "p1"},
		{ID: "e1", MatchID: "m1", PlayerID: "h1", Type: model.EventPass, X: 10, Y: 50, EndX: model.Float(40), EndY: model.Float(45), Successful: true, Half: 1, Seconds: &sec, CreatedAt: base.Add(time.Second)},
		{ID: "e4", MatchID: "m1", TeamID: "away", Type: model.EventClearance, X: 5, Y: 5, Half: 2, CreatedAt: base.Add(3 * time.Second)},
	}
	if err := s.SaveEvents(ctx, events); err != nil {
		t.Fatalf("SaveEvents: %v", err)
	}
}

func ids(events []model.MatchEvent) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func TestStore_FetchEventsOrderingAndPaging(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		seed(t, s)
		ctx := context.Background()

		all, err := s.FetchEvents(ctx, "m1", model.EventQuery{Limit: 10})
		if err != nil {
			t.Fatalf("FetchEvents: %v", err)
		}
		if got, want := fmt.Sprint(ids(all)), "[e1 e2 e3 e4]"; got != want {
			t.Fatalf("order = %s, want %s", got, want)
		}

		page2, err := s.FetchEvents(ctx, "m1", model.EventQuery{Offset: 2, Limit: 2})
		if err != nil {
			t.Fatalf("FetchEvents page 2: %v", err)
		}
		if got, want := fmt.Sprint(ids(page2)), "[e3 e4]"; got != want {
			t.Errorf("page 2 = %s, want %s", got, want)
		}

		past, err := s.FetchEvents(ctx, "m1", model.EventQuery{Offset: 10, Limit: 2})
		if err != nil || len(past) != 0 {
			t.Errorf("past the end = %v, %v; want empty page", past, err)
		}

		if _, err := s.FetchEvents(ctx, "m1", model.EventQuery{}); !errors.Is(err, ErrInvalidLimit) {
			t.Errorf("zero limit err = %v, want ErrInvalidLimit", err)
		}
	})
}

func TestStore_FetchEventsRoundTrip(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		seed(t, s)
		events, err := s.FetchEvents(context.Background(), "m1", model.EventQuery{Limit: 10})
		if err != nil {
			t.Fatalf("FetchEvents: %v", err)
		}

		pass := events[0]
		if pass.EndX == nil || *pass.EndX != 40 || pass.EndY == nil || *pass.EndY != 45 {
			t.Errorf("end point not preserved: %+v", pass)
		}
		if pass.Seconds == nil || *pass.Seconds != 12 || !pass.Successful {
			t.Errorf("optional fields not preserved: %+v", pass)
		}
		if !pass.CreatedAt.Equal(base.Add(time.Second)) {
			t.Errorf("created at = %v", pass.CreatedAt)
		}

		shot := events[1]
		if shot.ShotOutcome != model.ShotGoal || !shot.IsHeader || shot.PhaseID != "p1" || shot.EndX != nil {
			t.Errorf("shot fields not preserved: %+v", shot)
		}
	})
}

func TestStore_FetchEventsFilters(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		seed(t, s)
		ctx := context.Background()

		cases := []struct {
			name string
			q    model.EventQuery
			want string
		}{
			{"by type", model.EventQuery{EventTypes: []model.EventType{model.EventShot, model.EventTackle}}, "[e2 e3]"},
			{"by player", model.EventQuery{PlayerID: "h9"}, "[e2]"},
			{"by roster team", model.EventQuery{TeamID: "home"}, "[e1 e2]"},
			{"by event team", model.EventQuery{TeamID: "away"}, "[e3 e4]"},
		}
		for _, tc := range cases {
			tc.q.Limit = 100
			got, err := s.FetchEvents(ctx, "m1", tc.q)
			if err != nil {
				t.Fatalf("%s: %v", tc.name, err)
			}
			if fmt.Sprint(ids(got)) != tc.want {
				t.Errorf("%s = %v, want %s", tc.name, ids(got), tc.want)
			}
		}
	})
}

func TestStore_MetadataRosterAndListing(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		seed(t, s)
		ctx := context.Background()

		m, err := s.FetchMatchMetadata(ctx, "m1")
		if err != nil || m.HomeTeamName != "Harbour" || m.AwayTeamID != "away" {
			t.Fatalf("FetchMatchMetadata = %+v, %v", m, err)
		}
		if _, err := s.FetchMatchMetadata(ctx, "nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("unknown match err = %v, want ErrNotFound", err)
		}

		roster, err := s.FetchPlayerRoster(ctx, "home")
		if err != nil {
			t.Fatalf("FetchPlayerRoster: %v", err)
		}
		if len(roster) != 2 || roster[0].ID != "h1" || roster[1].Role != "FW" {
			t.Errorf("roster = %+v", roster)
		}
		if empty, err := s.FetchPlayerRoster(ctx, "nobody"); err != nil || len(empty) != 0 {
			t.Errorf("unknown team roster = %v, %v", empty, err)
		}

		list, err := s.ListMatches(ctx)
		if err != nil {
			t.Fatalf("ListMatches: %v", err)
		}
		if len(list) != 1 || list[0].Events != 4 || !list[0].FirstEventAt.Equal(base.Add(time.Second)) {
			t.Errorf("ListMatches = %+v", list)
		}
	})
}

func TestStore_HalfStats(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		rows, err := s.FetchHalfStats(ctx, "m1")
		if err != nil || len(rows) != 0 {
			t.Fatalf("empty half stats = %v, %v", rows, err)
		}

		in := []model.PlayerHalfStats{
			{MatchID: "m1", Half: 1, PlayerStats: model.PlayerStats{PlayerID: "h9", Passes: 10, SuccessfulPasses: 8, Goals: 1, XG: 0.45}},
			{MatchID: "m1", Half: 2, PlayerStats: model.PlayerStats{PlayerID: "h9", Passes: 4}},
		}
		if err := s.SaveHalfStats(ctx, in); err != nil {
			t.Fatalf("SaveHalfStats: %v", err)
		}
		// Replacing a row keeps one row per (match, player, half).
		in[1].Passes = 6
		if err := s.SaveHalfStats(ctx, in[1:]); err != nil {
			t.Fatalf("SaveHalfStats replace: %v", err)
		}

		rows, err = s.FetchHalfStats(ctx, "m1")
		if err != nil {
			t.Fatalf("FetchHalfStats: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("rows = %d, want 2", len(rows))
		}
		if rows[0].Half != 1 || rows[0].Passes != 10 || rows[0].XG != 0.45 || rows[0].PlayerID != "h9" {
			t.Errorf("first half row = %+v", rows[0])
		}
		if rows[1].Passes != 6 {
			t.Errorf("second half passes = %d, want 6", rows[1].Passes)
		}
	})
}

func TestStore_RejectsMissingIdentifiers(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		if err := s.SaveMatch(ctx, model.MatchMetadata{}); !errors.Is(err, model.ErrMissingIdentifier) {
			t.Errorf("SaveMatch err = %v", err)
		}
		if err := s.SaveEvents(ctx, []model.MatchEvent{{ID: "x"}}); !errors.Is(err, model.ErrMissingIdentifier) {
			t.Errorf("SaveEvents err = %v", err)
		}
	})
}
