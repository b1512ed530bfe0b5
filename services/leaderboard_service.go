package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fairwaylive/golf-tournament/leaderboard"
	"github.com/fairwaylive/golf-tournament/models"
	"github.com/fairwaylive/golf-tournament/repositories"
)

// LeaderboardService turns the current score records into ranked
// leaderboards. Every call recomputes from a fresh store snapshot; with
// tens of teams and 18 holes per round the sums are cheap, and skipping a
// cache removes an entire class of invalidation bugs.
type LeaderboardService interface {
	ComputeTournamentLeaderboard(ctx context.Context, tournamentID int) (*models.LeaderboardResult, error)
	ComputeRoundLeaderboard(ctx context.Context, tournamentID, roundNumber int) ([]models.TeamRoundScore, error)
	Summary(ctx context.Context, tournamentID, topN int) (*models.LeaderboardSummary, error)
	TeamWindow(ctx context.Context, tournamentID, teamID, window int) (*models.TeamPositionWindow, error)
}

type leaderboardService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	roundRepo      repositories.RoundRepository
	scoreRepo      repositories.ScoreRepository
}

func NewLeaderboardService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	roundRepo repositories.RoundRepository,
	scoreRepo repositories.ScoreRepository,
) LeaderboardService {
	return &leaderboardService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		roundRepo:      roundRepo,
		scoreRepo:      scoreRepo,
	}
}

func (s *leaderboardService) ComputeTournamentLeaderboard(ctx context.Context, tournamentID int) (*models.LeaderboardResult, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("%w: load tournament %d: %w", ErrStoreUnavailable, tournamentID, err)
	}

	// The three loads are independent reads of the same snapshot scope.
	var (
		teams  []models.Team
		rounds []models.Round
		scores []models.Score
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByTournament(gctx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		rounds, err = s.roundRepo.ListByTournament(gctx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		scores, err = s.scoreRepo.ListByTournament(gctx, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: load leaderboard inputs for tournament %d: %w", ErrStoreUnavailable, tournamentID, err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(teams))
	for _, team := range teams {
		entries = append(entries, leaderboard.AggregateTeam(team, rounds, scores))
	}

	return &models.LeaderboardResult{
		TournamentID:   tournament.ID,
		TournamentName: tournament.Name,
		RoundCount:     len(rounds),
		LastUpdated:    time.Now().UTC(),
		Entries:        leaderboard.RankEntries(entries),
	}, nil
}

// ComputeRoundLeaderboard returns the ranked single-round leaderboard. A
// missing round or a round without scores yields an empty slice, not an
// error: "no scores yet" is a normal state during a live event.
func (s *leaderboardService) ComputeRoundLeaderboard(ctx context.Context, tournamentID, roundNumber int) ([]models.TeamRoundScore, error) {
	round, err := s.roundRepo.GetByTournamentAndNumber(ctx, tournamentID, roundNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return []models.TeamRoundScore{}, nil
		}
		return nil, fmt.Errorf("%w: load round %d of tournament %d: %w", ErrStoreUnavailable, roundNumber, tournamentID, err)
	}

	var (
		teams  []models.Team
		scores []models.Score
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByTournament(gctx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		scores, err = s.scoreRepo.ListByRound(gctx, round.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: load scores for round %d: %w", ErrStoreUnavailable, round.ID, err)
	}

	byTeam := make(map[int][]models.Score)
	for _, score := range scores {
		byTeam[score.TeamID] = append(byTeam[score.TeamID], score)
	}

	// Only teams that have entered scores in this round appear; scores in
	// other rounds never influence the result.
	rows := make([]models.TeamRoundScore, 0, len(byTeam))
	for _, team := range teams {
		teamScores, ok := byTeam[team.ID]
		if !ok {
			continue
		}
		rows = append(rows, leaderboard.AggregateRoundRow(team, roundNumber, teamScores))
	}
	return leaderboard.RankRoundRows(rows), nil
}

func (s *leaderboardService) Summary(ctx context.Context, tournamentID, topN int) (*models.LeaderboardSummary, error) {
	result, err := s.ComputeTournamentLeaderboard(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	leaders := result.Entries
	if topN > 0 && topN < len(leaders) {
		leaders = leaders[:topN]
	}
	return &models.LeaderboardSummary{
		TournamentID:   result.TournamentID,
		TournamentName: result.TournamentName,
		TeamCount:      len(result.Entries),
		RoundCount:     result.RoundCount,
		LastUpdated:    result.LastUpdated,
		Leaders:        leaders,
	}, nil
}

// TeamWindow returns the team's position and up to window entries on each
// side of it in the ranked leaderboard.
func (s *leaderboardService) TeamWindow(ctx context.Context, tournamentID, teamID, window int) (*models.TeamPositionWindow, error) {
	result, err := s.ComputeTournamentLeaderboard(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	index := -1
	for i, entry := range result.Entries {
		if entry.TeamID == teamID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, ErrTeamNotFound
	}

	lo := index - window
	if lo < 0 {
		lo = 0
	}
	hi := index + window + 1
	if hi > len(result.Entries) {
		hi = len(result.Entries)
	}

	return &models.TeamPositionWindow{
		TournamentID: tournamentID,
		TeamID:       teamID,
		Position:     result.Entries[index].Position,
		TotalTeams:   len(result.Entries),
		Entries:      result.Entries[lo:hi],
	}, nil
}
