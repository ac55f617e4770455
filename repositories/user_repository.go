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
	ErrUserNotFound      = errors.New("user not found")
	ErrUserEmailConflict = errors.New("user email conflict")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByConfirmationToken(ctx context.Context, token string) (*models.User, error)
	ConfirmEmail(ctx context.Context, id string) error
}

type postgresUserRepository struct {
	db SQLExecutor
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `id, full_name, email, password_hash, role, email_confirmed, confirmation_token, redirect_to, created_at`

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, full_name, email, password_hash, role, email_confirmed, confirmation_token, redirect_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	id := uuid.NewString()
	err := r.db.QueryRowContext(ctx, query,
		id,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.EmailConfirmed,
		user.ConfirmationToken,
		user.RedirectTo,
	).Scan(&user.CreatedAt)
	if err != nil {
		if code, constraint := pqErrorCode(err); code == pqUniqueViolation && constraint == "users_email_key" {
			return ErrUserEmailConflict
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	user.ID = id
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *postgresUserRepository) GetByConfirmationToken(ctx context.Context, token string) (*models.User, error) {
	return r.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE confirmation_token = $1`, token)
}

func (r *postgresUserRepository) ConfirmEmail(ctx context.Context, id string) error {
	query := `UPDATE users SET email_confirmed = TRUE, confirmation_token = NULL WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to confirm email for user %s: %w", id, err)
	}

	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// scanUser runs a single-row user query.
func (r *postgresUserRepository) scanUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.EmailConfirmed,
		&user.ConfirmationToken,
		&user.RedirectTo,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
