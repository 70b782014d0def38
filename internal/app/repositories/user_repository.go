package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/pkg/apperrors"
	"github.com/osei/edushield/internal/pkg/dberrors"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `
	id, email, COALESCE(password, ''), full_name, role, school_id, is_active,
	activation_token, terms_accepted, created_at, last_login_at, last_logout_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FullName,
		&user.Role,
		&user.SchoolID,
		&user.IsActive,
		&user.ActivationToken,
		&user.TermsAccepted,
		&user.CreatedAt,
		&user.LastLoginAt,
		&user.LastLogoutAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &user, nil
}

// Create creates a new inactive user with an activation token
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, full_name, role, school_id, activation_token)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Email, user.FullName, user.Role, user.SchoolID, user.ActivationToken).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// GetAll retrieves all users, optionally filtered by school
func (r *UserRepository) GetAll(ctx context.Context, schoolID int64) ([]*models.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE ($1 = 0 OR school_id = $1) ORDER BY id`

	rows, err := r.db.Query(ctx, query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// Activate redeems an activation token, setting the password and activating
// the account. The token is single-use: the conditional update clears it.
func (r *UserRepository) Activate(ctx context.Context, token, hashedPassword string) (*models.User, error) {
	query := `
		UPDATE users
		SET password = $2, is_active = TRUE, activation_token = NULL
		WHERE activation_token = $1 AND is_active = FALSE
		RETURNING` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, token, hashedPassword))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidActivation
		}
		return nil, err
	}

	return user, nil
}

// RecordLogin updates last login and appends to the login log
func (r *UserRepository) RecordLogin(ctx context.Context, userID int64) error {
	return r.recordLoginEvent(ctx, userID, models.LoginEventLogin)
}

// RecordLogout updates last logout and appends to the login log
func (r *UserRepository) RecordLogout(ctx context.Context, userID int64) error {
	return r.recordLoginEvent(ctx, userID, models.LoginEventLogout)
}

func (r *UserRepository) recordLoginEvent(ctx context.Context, userID int64, event string) error {
	column := "last_login_at"
	if event == models.LoginEventLogout {
		column = "last_logout_at"
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		fmt.Sprintf(`UPDATE users SET %s = NOW() WHERE id = $1`, column), userID); err != nil {
		return fmt.Errorf("error recording %s time: %w", event, err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO login_logs (user_id, event) VALUES ($1, $2)`, userID, event); err != nil {
		return fmt.Errorf("error appending login log: %w", err)
	}

	return tx.Commit(ctx)
}

// AcceptTerms marks the user as having accepted the platform terms
func (r *UserRepository) AcceptTerms(ctx context.Context, userID int64) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET terms_accepted = TRUE WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error accepting terms: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SaveRefreshToken stores a refresh token for a user
func (r *UserRepository) SaveRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES ($1, $2, $3)`,
		userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("error saving refresh token: %w", err)
	}
	return nil
}

// ConsumeRefreshToken deletes a valid refresh token and returns its owner id.
// Single-use: the delete is the validity check.
func (r *UserRepository) ConsumeRefreshToken(ctx context.Context, token string) (int64, error) {
	var userID int64
	err := r.db.QueryRow(ctx,
		`DELETE FROM refresh_tokens WHERE token = $1 AND expires_at > NOW() RETURNING user_id`,
		token).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrRefreshTokenInvalid
		}
		return 0, fmt.Errorf("error consuming refresh token: %w", err)
	}
	return userID, nil
}
