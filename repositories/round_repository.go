package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fairwaylive/golf-tournament/models"
)

var (
	ErrRoundNotFound          = errors.New("round not found")
	ErrRoundNumberConflict    = errors.New("round number already exists for this tournament")
	ErrRoundInvalidTournament = errors.New("invalid tournament reference")
)

type RoundRepository interface {
	Create(ctx context.Context, round *models.Round) error
	GetByID(ctx context.Context, id int) (*models.Round, error)
	GetByTournamentAndNumber(ctx context.Context, tournamentID, roundNumber int) (*models.Round, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Round, error)
	Delete(ctx context.Context, id int) error
}

type postgresRoundRepository struct {
	db *sql.DB
}

func NewPostgresRoundRepository(db *sql.DB) RoundRepository {
	return &postgresRoundRepository{db: db}
}

func (r *postgresRoundRepository) Create(ctx context.Context, round *models.Round) error {
	query := `
		INSERT INTO rounds (tournament_id, round_number, date)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, round.TournamentID, round.RoundNumber, round.Date).Scan(&round.ID)
	if err != nil {
		if isUniqueViolation(err, "rounds_tournament_id_round_number_key") {
			return ErrRoundNumberConflict
		}
		if isForeignKeyViolation(err) {
			return ErrRoundInvalidTournament
		}
		return fmt.Errorf("create round: %w", err)
	}
	return nil
}

func (r *postgresRoundRepository) GetByID(ctx context.Context, id int) (*models.Round, error) {
	query := `SELECT id, tournament_id, round_number, date FROM rounds WHERE id = $1`

	round := &models.Round{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&round.ID, &round.TournamentID, &round.RoundNumber, &round.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	return round, nil
}

func (r *postgresRoundRepository) GetByTournamentAndNumber(ctx context.Context, tournamentID, roundNumber int) (*models.Round, error) {
	query := `
		SELECT id, tournament_id, round_number, date
		FROM rounds
		WHERE tournament_id = $1 AND round_number = $2`

	round := &models.Round{}
	err := r.db.QueryRowContext(ctx, query, tournamentID, roundNumber).Scan(
		&round.ID, &round.TournamentID, &round.RoundNumber, &round.Date,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	return round, nil
}

func (r *postgresRoundRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Round, error) {
	query := `
		SELECT id, tournament_id, round_number, date
		FROM rounds
		WHERE tournament_id = $1
		ORDER BY round_number ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list rounds for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	var rounds []models.Round
	for rows.Next() {
		var round models.Round
		if err := rows.Scan(&round.ID, &round.TournamentID, &round.RoundNumber, &round.Date); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		rounds = append(rounds, round)
	}
	return rounds, rows.Err()
}

func (r *postgresRoundRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rounds WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete round %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}
