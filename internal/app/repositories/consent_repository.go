package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/pkg/apperrors"
	"github.com/osei/edushield/internal/pkg/dberrors"
)

// ConsentRepository handles database operations for consent requests
type ConsentRepository struct {
	db *pgxpool.Pool
}

// NewConsentRepository creates a new consent repository
func NewConsentRepository(db *pgxpool.Pool) *ConsentRepository {
	return &ConsentRepository{
		db: db,
	}
}

// Create inserts a PENDING consent request. The partial unique index on
// (student_id, school_id) WHERE status='PENDING' rejects a second in-flight
// request for the same pair.
func (r *ConsentRepository) Create(ctx context.Context, consent *models.Consent) error {
	query := `
		INSERT INTO consents (student_id, school_id)
		VALUES ($1, $2)
		RETURNING id, status, created_at
	`

	err := r.db.QueryRow(ctx, query, consent.StudentID, consent.SchoolID).
		Scan(&consent.ID, &consent.Status, &consent.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrConsentAlreadyPending
		}
		return fmt.Errorf("error creating consent request: %w", err)
	}

	return nil
}

// Approve transitions exactly one PENDING row to GRANTED. Zero affected rows
// means the request does not exist or was already processed; both are
// reported as not found so a double-approval race never grants twice.
func (r *ConsentRepository) Approve(ctx context.Context, id, approvedBy int64) error {
	query := `
		UPDATE consents
		SET status = $3, approved_by = $2, approved_at = NOW()
		WHERE id = $1 AND status = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, id, approvedBy, models.ConsentGranted, models.ConsentPending)
	if err != nil {
		return fmt.Errorf("error approving consent: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConsentNotFound
	}
	return nil
}

// Reject transitions exactly one PENDING row to REJECTED with a reason,
// under the same optimistic guard as Approve.
func (r *ConsentRepository) Reject(ctx context.Context, id, approvedBy int64, reason string) error {
	query := `
		UPDATE consents
		SET status = $3, approved_by = $2, approved_at = NOW(), rejection_reason = $5
		WHERE id = $1 AND status = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, id, approvedBy, models.ConsentRejected, models.ConsentPending, reason)
	if err != nil {
		return fmt.Errorf("error rejecting consent: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConsentNotFound
	}
	return nil
}

// GetAll retrieves consent requests, scoped to a requesting school when
// schoolID is non-zero
func (r *ConsentRepository) GetAll(ctx context.Context, schoolID int64) ([]*models.Consent, error) {
	query := `
		SELECT id, student_id, school_id, status, approved_by, approved_at, rejection_reason, created_at
		FROM consents
		WHERE ($1 = 0 OR school_id = $1)
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var consents []*models.Consent
	for rows.Next() {
		var c models.Consent
		if err := rows.Scan(
			&c.ID, &c.StudentID, &c.SchoolID, &c.Status,
			&c.ApprovedBy, &c.ApprovedAt, &c.RejectionReason, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		consents = append(consents, &c)
	}

	return consents, rows.Err()
}

// HasGranted reports whether the school holds a granted consent for the student
func (r *ConsentRepository) HasGranted(ctx context.Context, studentID, schoolID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM consents WHERE student_id = $1 AND school_id = $2 AND status = $3)`,
		studentID, schoolID, models.ConsentGranted).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking granted consent: %w", err)
	}
	return exists, nil
}
