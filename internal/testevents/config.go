package testevents

import "time"

// Config holds configuration for synthetic match generation.
type Config struct {
	Matches        int           // Number of matches to generate
	EventsPerMatch int           // Events per match, split evenly across halves
	PlayersPerTeam int           // Roster size per team
	Start          time.Time     // Ingestion time of the first event of the first match
	EntryInterval  time.Duration // Typical gap between two entered events
	HalfTimeBreak  time.Duration // Pause in data entry between the halves
	Seed           uint64        // Seed for ids and randomness; equal seeds give equal data
	LegacyMatches  int           // Leading matches that also get stored per-half rows
}

// DefaultConfig returns a small but complete data set.
func DefaultConfig() Config {
	return Config{
		Matches:        3,
		EventsPerMatch: 1200,
		PlayersPerTeam: 11,
		Start:          time.Date(2024, 8, 17, 14, 0, 0, 0, time.UTC),
		EntryInterval:  4 * time.Second,
		HalfTimeBreak:  75 * time.Minute,
		Seed:           1,
		LegacyMatches:  1,
	}
}

// Stats holds generation statistics.
type Stats struct {
	Matches   int
	Players   int
	Events    int
	Phases    int
	HalfStats int
	Duration  time.Duration
}
