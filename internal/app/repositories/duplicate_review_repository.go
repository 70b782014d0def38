package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/db"
	"github.com/osei/edushield/internal/pkg/apperrors"
)

// DuplicateReviewRepository handles database operations for duplicate reviews
type DuplicateReviewRepository struct {
	db *pgxpool.Pool
}

// NewDuplicateReviewRepository creates a new duplicate review repository
func NewDuplicateReviewRepository(db *pgxpool.Pool) *DuplicateReviewRepository {
	return &DuplicateReviewRepository{
		db: db,
	}
}

const reviewColumns = `
	id, existing_student_id, submission, decision, reason,
	decided_by, created_student_id, created_at, decided_at`

func scanReview(row pgx.Row) (*models.DuplicateReview, error) {
	var review models.DuplicateReview
	err := row.Scan(
		&review.ID,
		&review.ExistingStudentID,
		&review.Submission,
		&review.Decision,
		&review.Reason,
		&review.DecidedBy,
		&review.CreatedStudentID,
		&review.CreatedAt,
		&review.DecidedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("error retrieving duplicate review: %w", err)
	}
	return &review, nil
}

// Create stores the blocked submission alongside the student it collided with
func (r *DuplicateReviewRepository) Create(ctx context.Context, review *models.DuplicateReview) error {
	query := `
		INSERT INTO duplicate_reviews (existing_student_id, submission)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, review.ExistingStudentID, review.Submission).
		Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating duplicate review: %w", err)
	}

	return nil
}

// GetByID retrieves a duplicate review by ID
func (r *DuplicateReviewRepository) GetByID(ctx context.Context, id int64) (*models.DuplicateReview, error) {
	query := `SELECT` + reviewColumns + ` FROM duplicate_reviews WHERE id = $1`
	return scanReview(r.db.QueryRow(ctx, query, id))
}

// GetAll retrieves duplicate reviews, pending ones only when pendingOnly is set
func (r *DuplicateReviewRepository) GetAll(ctx context.Context, pendingOnly bool) ([]*models.DuplicateReview, error) {
	query := `
		SELECT` + reviewColumns + `
		FROM duplicate_reviews
		WHERE ($1 = FALSE OR decision IS NULL)
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, pendingOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.DuplicateReview
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

// Decide records a decision on a pending review. A MERGED decision only marks
// the review; a DECLARED_DISTINCT decision additionally materializes the
// stored submission into a real student row, in the same transaction. The
// decision write is conditional on the review still being undecided, so a
// second decision fails instead of overwriting the first.
func (r *DuplicateReviewRepository) Decide(ctx context.Context, id int64, decision models.ReviewDecision, reason string, decidedBy int64) (*models.DuplicateReview, error) {
	var review *models.DuplicateReview

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		update := `
			UPDATE duplicate_reviews
			SET decision = $2, reason = $3, decided_by = $4, decided_at = NOW()
			WHERE id = $1 AND decision IS NULL
			RETURNING` + reviewColumns + `
		`

		var err error
		review, err = scanReview(tx.QueryRow(ctx, update, id, decision, reason, decidedBy))
		if err != nil {
			if errors.Is(err, apperrors.ErrReviewNotFound) {
				return r.decideFailure(ctx, tx, id)
			}
			return err
		}

		if decision == models.DecisionDeclaredDistinct {
			studentID, err := materializeSnapshotTx(ctx, tx, &review.Submission)
			if err != nil {
				return err
			}
			review.CreatedStudentID = &studentID
			if _, err := tx.Exec(ctx,
				`UPDATE duplicate_reviews SET created_student_id = $1 WHERE id = $2`,
				studentID, id); err != nil {
				return fmt.Errorf("error recording created student: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// decideFailure maps a failed conditional decision to NotFound or Conflict
func (r *DuplicateReviewRepository) decideFailure(ctx context.Context, tx pgx.Tx, id int64) error {
	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM duplicate_reviews WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("error checking review existence: %w", err)
	}
	if !exists {
		return apperrors.ErrReviewNotFound
	}
	return apperrors.ErrReviewAlreadyDecided
}

// materializeSnapshotTx turns a stored submission back into a student row,
// following the same insert-then-identifier sequence used for direct creation
func materializeSnapshotTx(ctx context.Context, tx pgx.Tx, snap *models.StudentSnapshot) (int64, error) {
	dob, err := time.Parse("2006-01-02", snap.DateOfBirth)
	if err != nil {
		return 0, fmt.Errorf("error parsing snapshot date of birth: %w", err)
	}

	var studentID int64
	insert := `
		INSERT INTO students (first_name, last_name, date_of_birth, gender, school_id, legacy_class, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	if err := tx.QueryRow(ctx, insert,
		snap.FirstName, snap.LastName, dob, snap.Gender,
		snap.SchoolID, snap.LegacyClass, snap.PhotoURL).Scan(&studentID); err != nil {
		return 0, fmt.Errorf("error materializing student: %w", err)
	}

	identifier := fmt.Sprintf("%s%d", models.IdentifierPrefix, studentID)
	if _, err := tx.Exec(ctx,
		`UPDATE students SET identifier = $1 WHERE id = $2`, identifier, studentID); err != nil {
		return 0, fmt.Errorf("error assigning identifier: %w", err)
	}

	if snap.ParentID != nil {
		if err := linkParentTx(ctx, tx, studentID, *snap.ParentID); err != nil {
			return 0, err
		}
	}

	return studentID, nil
}
