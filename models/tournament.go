package models

import "time"

// TournamentStatus mirrors the status ENUM in the database.
type TournamentStatus string

const (
	StatusUpcoming  TournamentStatus = "upcoming"
	StatusActive    TournamentStatus = "active"
	StatusCompleted TournamentStatus = "completed"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusCompleted:
		return true
	}
	return false
}

type Tournament struct {
	ID        int              `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	Location  *string          `json:"location,omitempty" db:"location"`
	StartDate time.Time        `json:"start_date" db:"start_date"`
	EndDate   time.Time        `json:"end_date" db:"end_date"`
	Status    TournamentStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	LogoKey   *string          `json:"-" db:"logo_key"`
	LogoURL   *string          `json:"logo_url,omitempty" db:"-"`

	// Optional linked data, populated by services, not mapped directly.
	Teams  []Team  `json:"teams,omitempty" db:"-"`
	Rounds []Round `json:"rounds,omitempty" db:"-"`
}
