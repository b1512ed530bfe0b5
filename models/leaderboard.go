package models

import "time"

// The leaderboard types are derived views, recomputed from scores on every
// query and broadcast. They are never persisted.

// RoundAggregate is one team's totals within a single round.
type RoundAggregate struct {
	RoundNumber    int `json:"round_number"`
	Strokes        int `json:"strokes"`
	Par            int `json:"par"`
	ToPar          int `json:"to_par"`
	HolesCompleted int `json:"holes_completed"`
}

// LeaderboardEntry is one ranked team in a tournament leaderboard,
// including its round-by-round splits.
type LeaderboardEntry struct {
	TeamID         int                    `json:"team_id"`
	TeamName       string                 `json:"team_name"`
	Player1Name    string                 `json:"player1_name"`
	Player2Name    string                 `json:"player2_name"`
	TotalStrokes   int                    `json:"total_strokes"`
	TotalToPar     int                    `json:"total_to_par"`
	Position       int                    `json:"position"`
	HolesCompleted int                    `json:"holes_completed"`
	Rounds         map[int]RoundAggregate `json:"rounds"`
}

// LeaderboardResult is the full tournament leaderboard snapshot.
type LeaderboardResult struct {
	TournamentID   int                `json:"tournament_id"`
	TournamentName string             `json:"tournament_name"`
	RoundCount     int                `json:"round_count"`
	LastUpdated    time.Time          `json:"last_updated"`
	Entries        []LeaderboardEntry `json:"entries"`
}

// HoleScore is per-hole detail inside a single-round leaderboard row.
type HoleScore struct {
	HoleNumber int `json:"hole_number"`
	Strokes    int `json:"strokes"`
	Par        int `json:"par"`
	ToPar      int `json:"to_par"`
}

// TeamRoundScore is one ranked team within a single round, with per-hole
// detail ordered by hole number.
type TeamRoundScore struct {
	TeamID         int         `json:"team_id"`
	TeamName       string      `json:"team_name"`
	Player1Name    string      `json:"player1_name"`
	Player2Name    string      `json:"player2_name"`
	RoundNumber    int         `json:"round_number"`
	Position       int         `json:"position"`
	TotalStrokes   int         `json:"total_strokes"`
	ToPar          int         `json:"to_par"`
	HolesCompleted int         `json:"holes_completed"`
	Holes          []HoleScore `json:"holes"`
}

// LeaderboardSummary is the condensed top-N view.
type LeaderboardSummary struct {
	TournamentID   int                `json:"tournament_id"`
	TournamentName string             `json:"tournament_name"`
	TeamCount      int                `json:"team_count"`
	RoundCount     int                `json:"round_count"`
	LastUpdated    time.Time          `json:"last_updated"`
	Leaders        []LeaderboardEntry `json:"leaders"`
}

// TeamPositionWindow is a team's position plus the entries immediately
// around it, for focused views.
type TeamPositionWindow struct {
	TournamentID int                `json:"tournament_id"`
	TeamID       int                `json:"team_id"`
	Position     int                `json:"position"`
	TotalTeams   int                `json:"total_teams"`
	Entries      []LeaderboardEntry `json:"entries"`
}
