package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fairwaylive/golf-tournament/leaderboard"
	"github.com/fairwaylive/golf-tournament/models"
	"github.com/fairwaylive/golf-tournament/repositories"
)

// Broadcaster is the live fan-out the score service notifies after a
// successful write. The hub satisfies it; the instance is constructed in
// main and passed down, there is no package-level singleton.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message leaderboard.Message)
}

const (
	minHoleNumber = 1
	maxHoleNumber = 18
	minStrokes    = 1
	maxStrokes    = 15
	minPar        = 2
	maxPar        = 7
)

// SubmitScoreInput is the single typed submission shape; all validation
// happens here, at this boundary, before any write.
type SubmitScoreInput struct {
	TeamID     int `json:"team_id"`
	RoundID    int `json:"round_id"`
	HoleNumber int `json:"hole_number"`
	Strokes    int `json:"strokes"`
	Par        int `json:"par"`
}

func (in SubmitScoreInput) validate() error {
	switch {
	case in.HoleNumber < minHoleNumber || in.HoleNumber > maxHoleNumber:
		return fmt.Errorf("%w: hole number must be between %d and %d", ErrScoreValidation, minHoleNumber, maxHoleNumber)
	case in.Strokes < minStrokes || in.Strokes > maxStrokes:
		return fmt.Errorf("%w: strokes must be between %d and %d", ErrScoreValidation, minStrokes, maxStrokes)
	case in.Par < minPar || in.Par > maxPar:
		return fmt.Errorf("%w: par must be between %d and %d", ErrScoreValidation, minPar, maxPar)
	}
	return nil
}

type ScoreService interface {
	SubmitScore(ctx context.Context, input SubmitScoreInput) (*models.Score, error)
	GetScore(ctx context.Context, id int) (*models.Score, error)
	ListScores(ctx context.Context, filter repositories.ListScoresFilter) ([]models.Score, error)
	GetTeamRoundScores(ctx context.Context, teamID, roundID int) ([]models.Score, error)
	DeleteScore(ctx context.Context, id int) error
}

type scoreService struct {
	scoreRepo          repositories.ScoreRepository
	teamRepo           repositories.TeamRepository
	roundRepo          repositories.RoundRepository
	leaderboardService LeaderboardService
	broadcaster        Broadcaster
	logger             *slog.Logger
}

func NewScoreService(
	scoreRepo repositories.ScoreRepository,
	teamRepo repositories.TeamRepository,
	roundRepo repositories.RoundRepository,
	leaderboardService LeaderboardService,
	broadcaster Broadcaster,
	logger *slog.Logger,
) ScoreService {
	return &scoreService{
		scoreRepo:          scoreRepo,
		teamRepo:           teamRepo,
		roundRepo:          roundRepo,
		leaderboardService: leaderboardService,
		broadcaster:        broadcaster,
		logger:             logger,
	}
}

// SubmitScore validates the submission, captures the team's current
// position, upserts the score, recomputes the leaderboard and notifies the
// tournament's viewers. The write is the source of truth: broadcast
// delivery is best effort and never rolls it back. If the post-write
// recomputation fails, the error is surfaced even though the write stood —
// callers should retry the read, not the write.
func (s *scoreService) SubmitScore(ctx context.Context, input SubmitScoreInput) (*models.Score, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, fmt.Errorf("%w: team %d does not exist", ErrScoreValidation, input.TeamID)
		}
		return nil, fmt.Errorf("%w: load team %d: %w", ErrStoreUnavailable, input.TeamID, err)
	}
	round, err := s.roundRepo.GetByID(ctx, input.RoundID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, fmt.Errorf("%w: round %d does not exist", ErrScoreValidation, input.RoundID)
		}
		return nil, fmt.Errorf("%w: load round %d: %w", ErrStoreUnavailable, input.RoundID, err)
	}
	if team.TournamentID != round.TournamentID {
		return nil, ErrTeamRoundMismatch
	}

	oldPosition, err := s.teamPosition(ctx, round.TournamentID, team.ID)
	if err != nil {
		return nil, err
	}

	score := &models.Score{
		TeamID:       input.TeamID,
		RoundID:      input.RoundID,
		TournamentID: round.TournamentID,
		HoleNumber:   input.HoleNumber,
		Strokes:      input.Strokes,
		Par:          input.Par,
		TeamName:     team.Name,
		RoundNumber:  round.RoundNumber,
	}
	if err := s.scoreRepo.Upsert(ctx, score); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	result, err := s.leaderboardService.ComputeTournamentLeaderboard(ctx, round.TournamentID)
	if err != nil {
		// The score is committed; only the notification is missing.
		return nil, fmt.Errorf("score saved but leaderboard recompute failed: %w", err)
	}

	newPosition := 0
	for _, entry := range result.Entries {
		if entry.TeamID == team.ID {
			newPosition = entry.Position
			break
		}
	}

	roomID := leaderboard.RoomID(round.TournamentID)
	s.broadcaster.BroadcastToRoom(roomID, leaderboard.Message{
		Type:    leaderboard.EventScoreUpdate,
		Payload: leaderboard.NewScoreUpdateEvent(round.TournamentID, team.Name, input.HoleNumber, input.Strokes),
		RoomID:  roomID,
	})
	s.broadcaster.BroadcastToRoom(roomID, leaderboard.Message{
		Type: leaderboard.EventLeaderboardUpdated,
		Payload: leaderboard.LeaderboardUpdatedEvent{
			TournamentID: result.TournamentID,
			LastUpdated:  result.LastUpdated,
			Entries:      result.Entries,
		},
		RoomID: roomID,
	})

	// Only announce a movement when the team was ranked before; the
	// old/new comparison is a best-effort signal under concurrent
	// submissions from other teams, and drives nothing but this event.
	if oldPosition > 0 && newPosition != oldPosition {
		s.logger.Info("position change",
			slog.Int("tournament_id", round.TournamentID),
			slog.String("team", team.Name),
			slog.Int("old_position", oldPosition),
			slog.Int("new_position", newPosition))
		s.broadcaster.BroadcastToRoom(roomID, leaderboard.Message{
			Type:    leaderboard.EventPositionChange,
			Payload: leaderboard.NewPositionChangeEvent(round.TournamentID, team.Name, oldPosition, newPosition),
			RoomID:  roomID,
		})
	}

	return score, nil
}

func (s *scoreService) teamPosition(ctx context.Context, tournamentID, teamID int) (int, error) {
	result, err := s.leaderboardService.ComputeTournamentLeaderboard(ctx, tournamentID)
	if err != nil {
		return 0, err
	}
	for _, entry := range result.Entries {
		if entry.TeamID == teamID {
			return entry.Position, nil
		}
	}
	return 0, nil
}

func (s *scoreService) GetScore(ctx context.Context, id int) (*models.Score, error) {
	score, err := s.scoreRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrScoreNotFound) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("%w: load score %d: %w", ErrStoreUnavailable, id, err)
	}
	return score, nil
}

func (s *scoreService) ListScores(ctx context.Context, filter repositories.ListScoresFilter) ([]models.Score, error) {
	scores, err := s.scoreRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: list scores: %w", ErrStoreUnavailable, err)
	}
	if scores == nil {
		scores = []models.Score{}
	}
	return scores, nil
}

func (s *scoreService) GetTeamRoundScores(ctx context.Context, teamID, roundID int) ([]models.Score, error) {
	scores, err := s.scoreRepo.ListByTeamAndRound(ctx, teamID, roundID)
	if err != nil {
		return nil, fmt.Errorf("%w: list scores for team %d round %d: %w", ErrStoreUnavailable, teamID, roundID, err)
	}
	if scores == nil {
		scores = []models.Score{}
	}
	return scores, nil
}

// DeleteScore removes a score record and pushes the recomputed
// leaderboard to the tournament's viewers.
func (s *scoreService) DeleteScore(ctx context.Context, id int) error {
	score, err := s.scoreRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrScoreNotFound) {
			return ErrScoreNotFound
		}
		return fmt.Errorf("%w: load score %d: %w", ErrStoreUnavailable, id, err)
	}
	if err := s.scoreRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrScoreNotFound) {
			return ErrScoreNotFound
		}
		return fmt.Errorf("%w: delete score %d: %w", ErrStoreUnavailable, id, err)
	}

	result, err := s.leaderboardService.ComputeTournamentLeaderboard(ctx, score.TournamentID)
	if err != nil {
		s.logger.Error("leaderboard recompute after score delete failed",
			slog.Int("tournament_id", score.TournamentID), slog.Any("error", err))
		return nil
	}
	roomID := leaderboard.RoomID(score.TournamentID)
	s.broadcaster.BroadcastToRoom(roomID, leaderboard.Message{
		Type: leaderboard.EventLeaderboardUpdated,
		Payload: leaderboard.LeaderboardUpdatedEvent{
			TournamentID: result.TournamentID,
			LastUpdated:  result.LastUpdated,
			Entries:      result.Entries,
		},
		RoomID: roomID,
	})
	return nil
}
