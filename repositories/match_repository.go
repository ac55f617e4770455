package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gncc/cricket-dashboard/models"
	"github.com/google/uuid"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Create(ctx context.Context, match models.NewMatch) (*models.Match, error)
	GetByID(ctx context.Context, id string) (*models.Match, error)
	ListOrderedByDate(ctx context.Context) ([]models.Match, error)
	UpdateScore(ctx context.Context, id string, update models.ScoreUpdate) error
}

type postgresMatchRepository struct {
	db SQLExecutor
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	id, to_char(match_date, 'YYYY-MM-DD'), to_char(match_time, 'HH24:MI'),
	opponent_team, opponent_logo_key, venue, match_type, is_sunday_match, status,
	gncc_score, gncc_wickets, gncc_overs,
	opponent_score, opponent_wickets, opponent_overs,
	result, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, m models.NewMatch) (*models.Match, error) {
	query := `
		INSERT INTO matches (id, match_date, match_time, opponent_team, opponent_logo_key, venue, match_type, is_sunday_match, status)
		VALUES ($1, $2::date, $3::time, $4, $5, $6, $7, $8, $9)
		RETURNING` + matchColumns

	row := r.db.QueryRowContext(ctx, query,
		uuid.NewString(),
		m.MatchDate,
		m.MatchTime,
		m.OpponentTeam,
		m.OpponentLogoKey,
		m.Venue,
		m.MatchType,
		m.IsSundayMatch,
		m.Status,
	)

	match, err := scanMatch(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert match: %w", err)
	}
	return match, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) ListOrderedByDate(ctx context.Context) ([]models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches ORDER BY match_date ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, *match)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

// UpdateScore overwrites every score column, NULLs included.
func (r *postgresMatchRepository) UpdateScore(ctx context.Context, id string, u models.ScoreUpdate) error {
	query := `
		UPDATE matches SET
			status = $1,
			gncc_score = $2,
			gncc_wickets = $3,
			gncc_overs = $4,
			opponent_score = $5,
			opponent_wickets = $6,
			opponent_overs = $7,
			result = $8
		WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		u.Status,
		u.GNCCScore,
		u.GNCCWickets,
		u.GNCCOvers,
		u.OpponentScore,
		u.OpponentWickets,
		u.OpponentOvers,
		u.Result,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update score for match %s: %w", id, err)
	}

	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func scanMatch(row rowScanner) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID,
		&m.MatchDate,
		&m.MatchTime,
		&m.OpponentTeam,
		&m.OpponentLogoKey,
		&m.Venue,
		&m.MatchType,
		&m.IsSundayMatch,
		&m.Status,
		&m.GNCCScore,
		&m.GNCCWickets,
		&m.GNCCOvers,
		&m.OpponentScore,
		&m.OpponentWickets,
		&m.OpponentOvers,
		&m.Result,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
