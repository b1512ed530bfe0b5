package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fairwaylive/golf-tournament/models"
	"github.com/fairwaylive/golf-tournament/repositories"
)

type TeamService interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id int) error
}

type teamService struct {
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
}

func NewTeamService(teamRepo repositories.TeamRepository, tournamentRepo repositories.TournamentRepository) TeamService {
	return &teamService{teamRepo: teamRepo, tournamentRepo: tournamentRepo}
}

func (s *teamService) Create(ctx context.Context, team *models.Team) error {
	if err := validateTeam(team); err != nil {
		return err
	}
	if _, err := s.tournamentRepo.GetByID(ctx, team.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("%w: load tournament %d: %w", ErrStoreUnavailable, team.TournamentID, err)
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamInvalidTournament) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("%w: load team %d: %w", ErrStoreUnavailable, id, err)
	}
	return team, nil
}

func (s *teamService) Update(ctx context.Context, team *models.Team) error {
	if err := validateTeam(team); err != nil {
		return err
	}
	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *teamService) Delete(ctx context.Context, id int) error {
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func validateTeam(team *models.Team) error {
	if strings.TrimSpace(team.Name) == "" {
		return ErrTeamNameRequired
	}
	if strings.TrimSpace(team.Player1Name) == "" || strings.TrimSpace(team.Player2Name) == "" {
		return ErrTeamPlayersRequired
	}
	return nil
}
