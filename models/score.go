package models

// Score is one team's result on a single hole of a round. The identity key
// is (team_id, round_id, hole_number); a later write for the same key
// overwrites strokes and par, it never duplicates. tournament_id is
// denormalized onto the row so tournament-wide scans are a single query.
type Score struct {
	ID           int `json:"id" db:"id"`
	TeamID       int `json:"team_id" db:"team_id"`
	RoundID      int `json:"round_id" db:"round_id"`
	TournamentID int `json:"tournament_id" db:"tournament_id"`
	HoleNumber   int `json:"hole_number" db:"hole_number"`
	Strokes      int `json:"strokes" db:"strokes"`
	Par          int `json:"par" db:"par"`

	// Relative to par, derived on read.
	ToPar int `json:"to_par" db:"-"`

	// Joined fields, populated by repositories where the query includes them.
	TeamName    string `json:"team_name,omitempty" db:"-"`
	RoundNumber int    `json:"round_number,omitempty" db:"-"`
}
