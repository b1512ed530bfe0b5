package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"strings"

	"github.com/fairwaylive/golf-tournament/models"
	"github.com/fairwaylive/golf-tournament/repositories"
	"github.com/fairwaylive/golf-tournament/storage"
)

type TournamentService interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) error
	UploadLogo(ctx context.Context, tournamentID int, contentType string, file io.Reader) (*models.Tournament, error)
	GetTeams(ctx context.Context, tournamentID int) ([]models.Team, error)
	GetRounds(ctx context.Context, tournamentID int) ([]models.Round, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	roundRepo      repositories.RoundRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	roundRepo repositories.RoundRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		roundRepo:      roundRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, tournament *models.Tournament) error {
	if strings.TrimSpace(tournament.Name) == "" {
		return ErrTournamentNameRequired
	}
	if tournament.EndDate.Before(tournament.StartDate) {
		return ErrTournamentInvalidDates
	}
	if tournament.Status == "" {
		tournament.Status = models.StatusUpcoming
	}
	if !tournament.Status.Valid() {
		return ErrTournamentInvalidStatus
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("%w: load tournament %d: %w", ErrStoreUnavailable, id, err)
	}
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: list tournaments: %w", ErrStoreUnavailable, err)
	}
	for i := range tournaments {
		s.populateLogoURL(&tournaments[i])
	}
	if tournaments == nil {
		tournaments = []models.Tournament{}
	}
	return tournaments, nil
}

func (s *tournamentService) Update(ctx context.Context, tournament *models.Tournament) error {
	if strings.TrimSpace(tournament.Name) == "" {
		return ErrTournamentNameRequired
	}
	if tournament.EndDate.Before(tournament.StartDate) {
		return ErrTournamentInvalidDates
	}
	if !tournament.Status.Valid() {
		return ErrTournamentInvalidStatus
	}
	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *tournamentService) Delete(ctx context.Context, id int) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// UploadLogo stores a new tournament logo, points the tournament at it and
// removes the previous object. Deleting the old object is best effort.
func (s *tournamentService) UploadLogo(ctx context.Context, tournamentID int, contentType string, file io.Reader) (*models.Tournament, error) {
	if s.uploader == nil {
		return nil, ErrUploaderNotConfigured
	}
	tournament, err := s.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	exts, _ := mime.ExtensionsByType(contentType)
	ext := ".png"
	if len(exts) > 0 {
		ext = exts[0]
	}
	key := fmt.Sprintf("tournaments/%d/logo%s", tournamentID, ext)

	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("upload tournament logo: %w", err)
	}
	if err := s.tournamentRepo.UpdateLogoKey(ctx, tournamentID, &key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if tournament.LogoKey != nil && *tournament.LogoKey != key {
		if err := s.uploader.Delete(ctx, *tournament.LogoKey); err != nil {
			s.logger.Warn("failed to delete previous logo",
				slog.String("key", *tournament.LogoKey), slog.Any("error", err))
		}
	}

	tournament.LogoKey = &key
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) GetTeams(ctx context.Context, tournamentID int) ([]models.Team, error) {
	if _, err := s.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("%w: list teams: %w", ErrStoreUnavailable, err)
	}
	if teams == nil {
		teams = []models.Team{}
	}
	return teams, nil
}

func (s *tournamentService) GetRounds(ctx context.Context, tournamentID int) ([]models.Round, error) {
	if _, err := s.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	rounds, err := s.roundRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("%w: list rounds: %w", ErrStoreUnavailable, err)
	}
	if rounds == nil {
		rounds = []models.Round{}
	}
	return rounds, nil
}

func (s *tournamentService) populateLogoURL(t *models.Tournament) {
	if s.uploader == nil || t.LogoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*t.LogoKey)
	t.LogoURL = &url
}
