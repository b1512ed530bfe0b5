package models

import "time"

// Round is one 18-hole round of a tournament, unique per
// (tournament_id, round_number).
type Round struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	RoundNumber  int       `json:"round_number" db:"round_number"`
	Date         time.Time `json:"date" db:"date"`
}
