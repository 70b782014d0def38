package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/pkg/apperrors"
)

// ParentRepository handles database operations for parents
type ParentRepository struct {
	db *pgxpool.Pool
}

// NewParentRepository creates a new parent repository
func NewParentRepository(db *pgxpool.Pool) *ParentRepository {
	return &ParentRepository{
		db: db,
	}
}

// Create creates a new parent
func (r *ParentRepository) Create(ctx context.Context, parent *models.Parent) error {
	query := `
		INSERT INTO parents (full_name, phone, card_number, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		parent.FullName, parent.Phone, parent.CardNumber, parent.Address).
		Scan(&parent.ID, &parent.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating parent: %w", err)
	}

	return nil
}

// GetByID retrieves a parent by ID
func (r *ParentRepository) GetByID(ctx context.Context, id int64) (*models.Parent, error) {
	query := `
		SELECT id, full_name, phone, card_number, address, created_at
		FROM parents
		WHERE id = $1
	`

	var parent models.Parent
	err := r.db.QueryRow(ctx, query, id).Scan(
		&parent.ID,
		&parent.FullName,
		&parent.Phone,
		&parent.CardNumber,
		&parent.Address,
		&parent.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParentNotFound
		}
		return nil, fmt.Errorf("error retrieving parent: %w", err)
	}

	return &parent, nil
}

// GetAll retrieves all parents
func (r *ParentRepository) GetAll(ctx context.Context) ([]*models.Parent, error) {
	query := `
		SELECT id, full_name, phone, card_number, address, created_at
		FROM parents
		ORDER BY full_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parents []*models.Parent
	for rows.Next() {
		var parent models.Parent
		if err := rows.Scan(
			&parent.ID,
			&parent.FullName,
			&parent.Phone,
			&parent.CardNumber,
			&parent.Address,
			&parent.CreatedAt,
		); err != nil {
			return nil, err
		}
		parents = append(parents, &parent)
	}

	return parents, rows.Err()
}

// CardNumberExists reports whether another parent already carries this card
// number. Advisory only: callers warn, they do not block the write.
func (r *ParentRepository) CardNumberExists(ctx context.Context, cardNumber string) (bool, error) {
	if cardNumber == "" {
		return false, nil
	}

	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM parents WHERE card_number = $1)`, cardNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking card number: %w", err)
	}
	return exists, nil
}
