package models

import "time"

// Team is a two-player side owned by a single tournament.
type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	Player1Name  string    `json:"player1_name" db:"player1_name"`
	Player2Name  string    `json:"player2_name" db:"player2_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
