package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fairwaylive/golf-tournament/models"
	"github.com/fairwaylive/golf-tournament/repositories"
)

type RoundService interface {
	Create(ctx context.Context, round *models.Round) error
	GetByID(ctx context.Context, id int) (*models.Round, error)
	Delete(ctx context.Context, id int) error
}

type roundService struct {
	roundRepo      repositories.RoundRepository
	tournamentRepo repositories.TournamentRepository
}

func NewRoundService(roundRepo repositories.RoundRepository, tournamentRepo repositories.TournamentRepository) RoundService {
	return &roundService{roundRepo: roundRepo, tournamentRepo: tournamentRepo}
}

func (s *roundService) Create(ctx context.Context, round *models.Round) error {
	if round.RoundNumber < 1 {
		return ErrRoundNumberInvalid
	}
	if _, err := s.tournamentRepo.GetByID(ctx, round.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("%w: load tournament %d: %w", ErrStoreUnavailable, round.TournamentID, err)
	}
	if err := s.roundRepo.Create(ctx, round); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRoundNumberConflict):
			return ErrRoundNumberConflict
		case errors.Is(err, repositories.ErrRoundInvalidTournament):
			return ErrTournamentNotFound
		}
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *roundService) GetByID(ctx context.Context, id int) (*models.Round, error) {
	round, err := s.roundRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("%w: load round %d: %w", ErrStoreUnavailable, id, err)
	}
	return round, nil
}

func (s *roundService) Delete(ctx context.Context, id int) error {
	if err := s.roundRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return ErrRoundNotFound
		}
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}
