package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gncc/cricket-dashboard/models"
	"github.com/google/uuid"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerInvalid  = errors.New("player row rejected by a table constraint")
)

type PlayerRepository interface {
	Create(ctx context.Context, player models.NewPlayer) (*models.Player, error)
	GetByID(ctx context.Context, id string) (*models.Player, error)
	ListOrderedByName(ctx context.Context) ([]models.Player, error)
	Delete(ctx context.Context, id string) error
}

type postgresPlayerRepository struct {
	db SQLExecutor
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `
	id, name, role, jersey_number, avatar_key, batting_style, bowling_style,
	total_matches, total_runs, total_wickets, best_score, best_bowling, created_at`

func (r *postgresPlayerRepository) Create(ctx context.Context, p models.NewPlayer) (*models.Player, error) {
	query := `
		INSERT INTO players (id, name, role, jersey_number, avatar_key, batting_style, bowling_style)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING` + playerColumns

	row := r.db.QueryRowContext(ctx, query,
		uuid.NewString(),
		p.Name,
		p.Role,
		p.JerseyNumber,
		p.AvatarKey,
		p.BattingStyle,
		p.BowlingStyle,
	)

	player, err := scanPlayer(row)
	if err != nil {
		if code, _ := pqErrorCode(err); code == pqCheckViolation {
			return nil, ErrPlayerInvalid
		}
		return nil, fmt.Errorf("failed to insert player: %w", err)
	}
	return player, nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `SELECT` + playerColumns + ` FROM players WHERE id = $1`

	player, err := scanPlayer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %s: %w", id, err)
	}
	return player, nil
}

func (r *postgresPlayerRepository) ListOrderedByName(ctx context.Context) ([]models.Player, error) {
	query := `SELECT` + playerColumns + ` FROM players ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, *player)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}

	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func scanPlayer(row rowScanner) (*models.Player, error) {
	var p models.Player
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Role,
		&p.JerseyNumber,
		&p.AvatarKey,
		&p.BattingStyle,
		&p.BowlingStyle,
		&p.TotalMatches,
		&p.TotalRuns,
		&p.TotalWickets,
		&p.BestScore,
		&p.BestBowling,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
