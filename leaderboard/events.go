package leaderboard

import (
	"fmt"
	"time"

	"github.com/fairwaylive/golf-tournament/models"
)

// Message is the envelope for everything sent over the live channel.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

const (
	EventScoreUpdate        = "SCORE_UPDATE"
	EventLeaderboardUpdated = "LEADERBOARD_UPDATED"
	EventPositionChange     = "POSITION_CHANGE"
	EventViewerJoined       = "VIEWER_JOINED"
	EventViewerLeft         = "VIEWER_LEFT"
	EventError              = "ERROR"
)

// RoomID returns the broadcast room name for a tournament.
func RoomID(tournamentID int) string {
	return fmt.Sprintf("tournament_%d", tournamentID)
}

type ScoreUpdateEvent struct {
	TournamentID int       `json:"tournament_id"`
	TeamName     string    `json:"team_name"`
	HoleNumber   int       `json:"hole_number"`
	Strokes      int       `json:"strokes"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewScoreUpdateEvent(tournamentID int, teamName string, holeNumber, strokes int) ScoreUpdateEvent {
	return ScoreUpdateEvent{
		TournamentID: tournamentID,
		TeamName:     teamName,
		HoleNumber:   holeNumber,
		Strokes:      strokes,
		Message:      fmt.Sprintf("%s scored %d on hole %d", teamName, strokes, holeNumber),
		Timestamp:    time.Now().UTC(),
	}
}

type LeaderboardUpdatedEvent struct {
	TournamentID int                      `json:"tournament_id"`
	LastUpdated  time.Time                `json:"last_updated"`
	Entries      []models.LeaderboardEntry `json:"entries"`
}

type PositionChangeEvent struct {
	TournamentID int       `json:"tournament_id"`
	TeamName     string    `json:"team_name"`
	OldPosition  int       `json:"old_position"`
	NewPosition  int       `json:"new_position"`
	Direction    string    `json:"direction"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewPositionChangeEvent(tournamentID int, teamName string, oldPosition, newPosition int) PositionChangeEvent {
	direction := "down"
	message := fmt.Sprintf("%s dropped to #%d", teamName, newPosition)
	if newPosition < oldPosition {
		direction = "up"
		message = fmt.Sprintf("%s moved up to #%d!", teamName, newPosition)
	}
	return PositionChangeEvent{
		TournamentID: tournamentID,
		TeamName:     teamName,
		OldPosition:  oldPosition,
		NewPosition:  newPosition,
		Direction:    direction,
		Message:      message,
		Timestamp:    time.Now().UTC(),
	}
}

// ViewerEvent announces a viewer joining or leaving a tournament room.
type ViewerEvent struct {
	UserName    string `json:"user_name"`
	ViewerCount int    `json:"viewer_count"`
}
