package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fairwaylive/golf-tournament/models"
)

var ErrScoreNotFound = errors.New("score not found")

type ListScoresFilter struct {
	TeamID       *int
	RoundID      *int
	TournamentID *int
}

// ScoreRepository is the durable score store. Upsert is atomic on the
// unique (team_id, round_id, hole_number) key: concurrent submissions for
// the same hole cannot both insert, the last committed write wins.
type ScoreRepository interface {
	Upsert(ctx context.Context, score *models.Score) error
	GetByID(ctx context.Context, id int) (*models.Score, error)
	ListByTeamAndRound(ctx context.Context, teamID, roundID int) ([]models.Score, error)
	ListByRound(ctx context.Context, roundID int) ([]models.Score, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Score, error)
	List(ctx context.Context, filter ListScoresFilter) ([]models.Score, error)
	Delete(ctx context.Context, id int) error
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

func (r *postgresScoreRepository) Upsert(ctx context.Context, score *models.Score) error {
	// A race between two first-time submissions for the same hole resolves
	// itself: the loser's INSERT becomes an UPDATE of the winner's row.
	query := `
		INSERT INTO scores (team_id, round_id, tournament_id, hole_number, strokes, par)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (team_id, round_id, hole_number)
		DO UPDATE SET strokes = EXCLUDED.strokes, par = EXCLUDED.par
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		score.TeamID, score.RoundID, score.TournamentID, score.HoleNumber, score.Strokes, score.Par,
	).Scan(&score.ID)
	if err != nil {
		return fmt.Errorf("upsert score (team %d, round %d, hole %d): %w",
			score.TeamID, score.RoundID, score.HoleNumber, err)
	}
	score.ToPar = score.Strokes - score.Par
	return nil
}

func (r *postgresScoreRepository) GetByID(ctx context.Context, id int) (*models.Score, error) {
	query := `
		SELECT s.id, s.team_id, s.round_id, s.tournament_id, s.hole_number, s.strokes, s.par,
		       t.name, r.round_number
		FROM scores s
		JOIN teams t ON t.id = s.team_id
		JOIN rounds r ON r.id = s.round_id
		WHERE s.id = $1`

	score := &models.Score{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&score.ID, &score.TeamID, &score.RoundID, &score.TournamentID,
		&score.HoleNumber, &score.Strokes, &score.Par,
		&score.TeamName, &score.RoundNumber,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScoreNotFound
		}
		return nil, err
	}
	score.ToPar = score.Strokes - score.Par
	return score, nil
}

func (r *postgresScoreRepository) ListByTeamAndRound(ctx context.Context, teamID, roundID int) ([]models.Score, error) {
	teamFilter, roundFilter := teamID, roundID
	return r.List(ctx, ListScoresFilter{TeamID: &teamFilter, RoundID: &roundFilter})
}

func (r *postgresScoreRepository) ListByRound(ctx context.Context, roundID int) ([]models.Score, error) {
	roundFilter := roundID
	return r.List(ctx, ListScoresFilter{RoundID: &roundFilter})
}

func (r *postgresScoreRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Score, error) {
	tournamentFilter := tournamentID
	return r.List(ctx, ListScoresFilter{TournamentID: &tournamentFilter})
}

func (r *postgresScoreRepository) List(ctx context.Context, filter ListScoresFilter) ([]models.Score, error) {
	query := `
		SELECT s.id, s.team_id, s.round_id, s.tournament_id, s.hole_number, s.strokes, s.par,
		       t.name, r.round_number
		FROM scores s
		JOIN teams t ON t.id = s.team_id
		JOIN rounds r ON r.id = s.round_id
		WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.TeamID != nil {
		query += fmt.Sprintf(" AND s.team_id = $%d", argID)
		args = append(args, *filter.TeamID)
		argID++
	}
	if filter.RoundID != nil {
		query += fmt.Sprintf(" AND s.round_id = $%d", argID)
		args = append(args, *filter.RoundID)
		argID++
	}
	if filter.TournamentID != nil {
		query += fmt.Sprintf(" AND s.tournament_id = $%d", argID)
		args = append(args, *filter.TournamentID)
	}

	query += " ORDER BY r.round_number ASC, s.hole_number ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	var scores []models.Score
	for rows.Next() {
		var s models.Score
		if err := rows.Scan(
			&s.ID, &s.TeamID, &s.RoundID, &s.TournamentID, &s.HoleNumber, &s.Strokes, &s.Par,
			&s.TeamName, &s.RoundNumber,
		); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		s.ToPar = s.Strokes - s.Par
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

func (r *postgresScoreRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM scores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete score %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrScoreNotFound)
}
