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

// DisputeRepository handles database operations for disputes
type DisputeRepository struct {
	db *pgxpool.Pool
}

// NewDisputeRepository creates a new dispute repository
func NewDisputeRepository(db *pgxpool.Pool) *DisputeRepository {
	return &DisputeRepository{
		db: db,
	}
}

const disputeColumns = `
	id, student_id, raised_by, reason, COALESCE(description, ''), proof_url, status,
	resolved_by, resolution_note, created_at, resolved_at`

func scanDispute(row pgx.Row) (*models.Dispute, error) {
	var dispute models.Dispute
	err := row.Scan(
		&dispute.ID,
		&dispute.StudentID,
		&dispute.RaisedBy,
		&dispute.Reason,
		&dispute.Description,
		&dispute.ProofURL,
		&dispute.Status,
		&dispute.ResolvedBy,
		&dispute.ResolutionNote,
		&dispute.CreatedAt,
		&dispute.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDisputeNotFound
		}
		return nil, fmt.Errorf("error retrieving dispute: %w", err)
	}
	return &dispute, nil
}

// FindActiveByStudent returns the student's dispute in {OPEN, UNDER_REVIEW},
// or nil when none exists
func (r *DisputeRepository) FindActiveByStudent(ctx context.Context, studentID int64) (*models.Dispute, error) {
	query := `
		SELECT` + disputeColumns + `
		FROM disputes
		WHERE student_id = $1 AND status IN ($2, $3)
	`

	dispute, err := scanDispute(r.db.QueryRow(ctx, query,
		studentID, models.DisputeOpen, models.DisputeUnderReview))
	if err != nil {
		if errors.Is(err, apperrors.ErrDisputeNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return dispute, nil
}

// Create inserts an OPEN dispute row
func (r *DisputeRepository) Create(ctx context.Context, dispute *models.Dispute) error {
	query := `
		INSERT INTO disputes (student_id, raised_by, reason, description, proof_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, created_at
	`

	err := r.db.QueryRow(ctx, query,
		dispute.StudentID, dispute.RaisedBy, dispute.Reason,
		dispute.Description, dispute.ProofURL).
		Scan(&dispute.ID, &dispute.Status, &dispute.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating dispute: %w", err)
	}

	return nil
}

// GetByID retrieves a dispute by ID
func (r *DisputeRepository) GetByID(ctx context.Context, id int64) (*models.Dispute, error) {
	query := `SELECT` + disputeColumns + ` FROM disputes WHERE id = $1`
	return scanDispute(r.db.QueryRow(ctx, query, id))
}

// GetAll retrieves disputes, optionally filtered by student
func (r *DisputeRepository) GetAll(ctx context.Context, studentID int64) ([]*models.Dispute, error) {
	query := `
		SELECT` + disputeColumns + `
		FROM disputes
		WHERE ($1 = 0 OR student_id = $1)
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var disputes []*models.Dispute
	for rows.Next() {
		dispute, err := scanDispute(rows)
		if err != nil {
			return nil, err
		}
		disputes = append(disputes, dispute)
	}

	return disputes, rows.Err()
}

// MarkUnderReview transitions OPEN -> UNDER_REVIEW. Any other source state
// fails the conditional update; the caller distinguishes missing and
// illegal-state cases.
func (r *DisputeRepository) MarkUnderReview(ctx context.Context, id int64) error {
	query := `
		UPDATE disputes
		SET status = $2
		WHERE id = $1 AND status = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, id, models.DisputeUnderReview, models.DisputeOpen)
	if err != nil {
		return fmt.Errorf("error marking dispute under review: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.transitionFailure(ctx, id)
	}
	return nil
}

// Resolve transitions UNDER_REVIEW -> RESOLVED_ACCEPTED|RESOLVED_REJECTED.
// Terminal rows never transition again.
func (r *DisputeRepository) Resolve(ctx context.Context, id int64, target models.DisputeStatus, resolvedBy int64, note string) error {
	query := `
		UPDATE disputes
		SET status = $2, resolved_by = $3, resolution_note = $4, resolved_at = NOW()
		WHERE id = $1 AND status = $5
	`

	cmdTag, err := r.db.Exec(ctx, query, id, target, resolvedBy, note, models.DisputeUnderReview)
	if err != nil {
		return fmt.Errorf("error resolving dispute: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.transitionFailure(ctx, id)
	}
	return nil
}

// transitionFailure maps a zero-affected-rows update to NotFound or Conflict
func (r *DisputeRepository) transitionFailure(ctx context.Context, id int64) error {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM disputes WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("error checking dispute existence: %w", err)
	}
	if !exists {
		return apperrors.ErrDisputeNotFound
	}
	return apperrors.ErrIllegalDisputeTransition
}
