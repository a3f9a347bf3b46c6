package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/okian/pitchlens/internal/domain/model"
	"github.com/okian/pitchlens/pkg/metrics"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore is the durable event store.
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
// ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls and
	// serializes writers.
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{conn: conn}, nil
}

// Close closes the underlying connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func observe(op string, start time.Time) {
	metrics.RecordStoreQueryLatency(op, float64(time.Since(start).Microseconds())/1000)
}

const eventColumns = `e.event_id, e.match_id, e.player_id, e.team_id, e.event_type, e.x, e.y, e.end_x, e.end_y,
	e.successful, e.shot_outcome, e.duel_outcome, e.is_header, e.half, e.minute, e.seconds,
	e.created_at_ns, e.phase_id`

// FetchEvents implements Reader.
func (s *SQLiteStore) FetchEvents(ctx context.Context, matchID string, q model.EventQuery) ([]model.MatchEvent, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}
	defer observe("fetch_events", time.Now())

	var (
		where = []string{"e.match_id = ?"}
		args  = []any{matchID}
	)
	if len(q.EventTypes) > 0 {
		marks := make([]string, len(q.EventTypes))
		for i, t := range q.EventTypes {
			marks[i] = "?"
			args = append(args, string(t))
		}
		where = append(where, "e.event_type IN ("+strings.Join(marks, ",")+")")
	}
	if q.PlayerID != "" {
		where = append(where, "e.player_id = ?")
		args = append(args, q.PlayerID)
	}
	if q.TeamID != "" {
		where = append(where, "COALESCE(NULLIF(p.team_id, ''), e.team_id) = ?")
		args = append(args, q.TeamID)
	}
	args = append(args, q.Limit, q.Offset)

	query := `SELECT ` + eventColumns + `
		FROM events e
		LEFT JOIN players p ON p.player_id = e.player_id AND e.player_id != ''
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY e.created_at_ns, e.event_id
		LIMIT ? OFFSET ?`

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	out := []model.MatchEvent{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEvent(rows *sql.Rows) (model.MatchEvent, error) {
	var (
		e                    model.MatchEvent
		typ, shot, duel      string
		endX, endY           sql.NullFloat64
		seconds              sql.NullInt64
		successful, isHeader int
		createdAt            int64
	)
	err := rows.Scan(&e.ID, &e.MatchID, &e.PlayerID, &e.TeamID, &typ, &e.X, &e.Y, &endX, &endY,
		&successful, &shot, &duel, &isHeader, &e.Half, &e.Minute, &seconds, &createdAt, &e.PhaseID)
	if err != nil {
		return e, fmt.Errorf("scan event: %w", err)
	}
	e.Type = model.EventType(typ)
	e.ShotOutcome = model.ShotOutcome(shot)
	e.DuelOutcome = model.DuelOutcome(duel)
	e.Successful = successful != 0
	e.IsHeader = isHeader != 0
	e.CreatedAt = time.Unix(0, createdAt).UTC()
	if endX.Valid {
		e.EndX = &endX.Float64
	}
	if endY.Valid {
		e.EndY = &endY.Float64
	}
	if seconds.Valid {
		v := int(seconds.Int64)
		e.Seconds = &v
	}
	return e, nil
}

// FetchMatchMetadata implements Reader.
func (s *SQLiteStore) FetchMatchMetadata(ctx context.Context, matchID string) (model.MatchMetadata, error) {
	defer observe("fetch_metadata", time.Now())
	m := model.MatchMetadata{MatchID: matchID}
	err := s.conn.QueryRowContext(ctx,
		`SELECT home_team_id, away_team_id, home_team_name, away_team_name FROM matches WHERE match_id = ?`,
		matchID,
	).Scan(&m.HomeTeamID, &m.AwayTeamID, &m.HomeTeamName, &m.AwayTeamName)
	if errors.Is(err, sql.ErrNoRows) {
		return model.MatchMetadata{}, fmt.Errorf("%w: %s", ErrNotFound, matchID)
	}
	if err != nil {
		return model.MatchMetadata{}, fmt.Errorf("query match: %w", err)
	}
	return m, nil
}

// FetchPlayerRoster implements Reader.
func (s *SQLiteStore) FetchPlayerRoster(ctx context.Context, teamID string) ([]model.Player, error) {
	defer observe("fetch_roster", time.Now())
	rows, err := s.conn.QueryContext(ctx,
		`SELECT player_id, team_id, name, jersey_number, role FROM players
		 WHERE team_id = ? ORDER BY jersey_number, player_id`, teamID)
	if err != nil {
		return nil, fmt.Errorf("query roster: %w", err)
	}
	defer rows.Close()

	out := []model.Player{}
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.ID, &p.TeamID, &p.Name, &p.JerseyNumber, &p.Role); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// FetchHalfStats implements Reader.
func (s *SQLiteStore) FetchHalfStats(ctx context.Context, matchID string) ([]model.PlayerHalfStats, error) {
	defer observe("fetch_half_stats", time.Now())
	rows, err := s.conn.QueryContext(ctx,
		`SELECT player_id, half, stats FROM player_half_stats
		 WHERE match_id = ? ORDER BY player_id, half`, matchID)
	if err != nil {
		return nil, fmt.Errorf("query half stats: %w", err)
	}
	defer rows.Close()

	out := []model.PlayerHalfStats{}
	for rows.Next() {
		var (
			r    = model.PlayerHalfStats{MatchID: matchID}
			pid  string
			blob string
		)
		if err := rows.Scan(&pid, &r.Half, &blob); err != nil {
			return nil, fmt.Errorf("scan half stats: %w", err)
		}
		if err := json.Unmarshal([]byte(blob), &r.PlayerStats); err != nil {
			return nil, fmt.Errorf("decode half stats for %s: %w", pid, err)
		}
		r.PlayerID = pid
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListMatches implements Reader.
func (s *SQLiteStore) ListMatches(ctx context.Context) ([]MatchSummary, error) {
	defer observe("list_matches", time.Now())
	rows, err := s.conn.QueryContext(ctx, `
		SELECT m.match_id, m.home_team_id, m.away_team_id, m.home_team_name, m.away_team_name,
		       COUNT(e.event_id), MIN(e.created_at_ns)
		FROM matches m
		LEFT JOIN events e ON e.match_id = m.match_id
		GROUP BY m.match_id
		ORDER BY m.match_id`)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	out := []MatchSummary{}
	for rows.Next() {
		var (
			m     MatchSummary
			first sql.NullInt64
		)
		if err := rows.Scan(&m.MatchID, &m.HomeTeamID, &m.AwayTeamID, &m.HomeTeamName, &m.AwayTeamName, &m.Events, &first); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		if first.Valid {
			m.FirstEventAt = time.Unix(0, first.Int64).UTC()
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SaveMatch implements Writer.
func (s *SQLiteStore) SaveMatch(ctx context.Context, m model.MatchMetadata) error {
	if m.MatchID == "" {
		return fmt.Errorf("%w: match id", model.ErrMissingIdentifier)
	}
	_, err := s.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO matches(match_id, home_team_id, away_team_id, home_team_name, away_team_name)
		VALUES (?, ?, ?, ?, ?)`,
		m.MatchID, m.HomeTeamID, m.AwayTeamID, m.HomeTeamName, m.AwayTeamName)
	return err
}

// SavePlayers implements Writer.
func (s *SQLiteStore) SavePlayers(ctx context.Context, players []model.Player) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO players(player_id, team_id, name, jersey_number, role)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if p.ID == "" {
			return fmt.Errorf("%w: player id", model.ErrMissingIdentifier)
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.TeamID, p.Name, p.JerseyNumber, p.Role); err != nil {
			return fmt.Errorf("insert player %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// SaveEvents bulk-inserts events in one transaction.
func (s *SQLiteStore) SaveEvents(ctx context.Context, events []model.MatchEvent) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO events(
			event_id, match_id, player_id, team_id, event_type, x, y, end_x, end_y,
			successful, shot_outcome, duel_outcome, is_header, half, minute, seconds,
			created_at_ns, phase_id
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		if e.ID == "" || e.MatchID == "" {
			return fmt.Errorf("%w: event or match id", model.ErrMissingIdentifier)
		}
		var seconds any
		if e.Seconds != nil {
			seconds = *e.Seconds
		}
		_, err := stmt.ExecContext(ctx,
			e.ID, e.MatchID, e.PlayerID, e.TeamID, string(e.Type), e.X, e.Y, nullFloat(e.EndX), nullFloat(e.EndY),
			boolInt(e.Successful), string(e.ShotOutcome), string(e.DuelOutcome), boolInt(e.IsHeader),
			e.Half, e.Minute, seconds, e.CreatedAt.UnixNano(), e.PhaseID,
		)
		if err != nil {
			return fmt.Errorf("insert event %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

// SaveHalfStats implements Writer.
func (s *SQLiteStore) SaveHalfStats(ctx context.Context, rows []model.PlayerHalfStats) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range rows {
		blob, err := json.Marshal(r.PlayerStats)
		if err != nil {
			return fmt.Errorf("encode half stats: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO player_half_stats(match_id, player_id, half, stats)
			VALUES (?, ?, ?, ?)`, r.MatchID, r.PlayerID, r.Half, string(blob))
		if err != nil {
			return fmt.Errorf("insert half stats %s/%s: %w", r.MatchID, r.PlayerID, err)
		}
	}
	return tx.Commit()
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
