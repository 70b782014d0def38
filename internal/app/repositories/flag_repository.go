package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/db"
	"github.com/osei/edushield/internal/pkg/apperrors"
)

// FlagRepository handles database operations for the flag ledger
type FlagRepository struct {
	db *pgxpool.Pool
}

// NewFlagRepository creates a new flag repository
func NewFlagRepository(db *pgxpool.Pool) *FlagRepository {
	return &FlagRepository{
		db: db,
	}
}

const flagColumns = `
	id, student_id, parent_id, school_id, amount, currency, reason, status,
	created_by, cleared_by, created_at, cleared_at`

func scanFlag(row pgx.Row) (*models.Flag, error) {
	var flag models.Flag
	err := row.Scan(
		&flag.ID,
		&flag.StudentID,
		&flag.ParentID,
		&flag.SchoolID,
		&flag.Amount,
		&flag.Currency,
		&flag.Reason,
		&flag.Status,
		&flag.CreatedBy,
		&flag.ClearedBy,
		&flag.CreatedAt,
		&flag.ClearedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFlagNotFound
		}
		return nil, fmt.Errorf("error retrieving flag: %w", err)
	}
	return &flag, nil
}

// Create inserts a FLAGGED flag row and its FLAGGED audit row in one
// all-or-nothing transaction. A flag must never exist without its audit trail.
func (r *FlagRepository) Create(ctx context.Context, flag *models.Flag) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		insert := `
			INSERT INTO flags (student_id, parent_id, school_id, amount, currency, reason, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, status, created_at
		`

		err := tx.QueryRow(ctx, insert,
			flag.StudentID, flag.ParentID, flag.SchoolID,
			flag.Amount, flag.Currency, flag.Reason, flag.CreatedBy).
			Scan(&flag.ID, &flag.Status, &flag.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating flag: %w", err)
		}

		audit := `
			INSERT INTO flag_audit_logs (flag_id, student_id, parent_id, school_id, action, amount, currency, actor_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		if _, err := tx.Exec(ctx, audit,
			flag.ID, flag.StudentID, flag.ParentID, flag.SchoolID,
			string(models.FlagFlagged), flag.Amount, flag.Currency, flag.CreatedBy); err != nil {
			return fmt.Errorf("error appending flag audit: %w", err)
		}

		return nil
	})
}

// GetByID retrieves a flag by ID
func (r *FlagRepository) GetByID(ctx context.Context, id int64) (*models.Flag, error) {
	query := `SELECT` + flagColumns + ` FROM flags WHERE id = $1`
	return scanFlag(r.db.QueryRow(ctx, query, id))
}

// Clear transitions a flag FLAGGED -> CLEARED and appends the CLEARED audit
// row in one transaction. The conditional update is the compare-and-swap
// against the FLAGGED precondition: zero affected rows means the flag was
// already cleared (or never existed), and the amount/currency written to the
// audit row are the values returned by the update itself, not a re-read.
func (r *FlagRepository) Clear(ctx context.Context, id, clearedBy int64) (*models.Flag, error) {
	var cleared *models.Flag

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		update := `
			UPDATE flags
			SET status = $3, cleared_by = $2, cleared_at = NOW()
			WHERE id = $1 AND status = $4
			RETURNING` + flagColumns

		flag, err := scanFlag(tx.QueryRow(ctx, update, id, clearedBy, models.FlagCleared, models.FlagFlagged))
		if err != nil {
			if errors.Is(err, apperrors.ErrFlagNotFound) {
				// Distinguish missing row from already-cleared row
				var exists bool
				if qErr := tx.QueryRow(ctx,
					`SELECT EXISTS(SELECT 1 FROM flags WHERE id = $1)`, id).Scan(&exists); qErr != nil {
					return fmt.Errorf("error checking flag existence: %w", qErr)
				}
				if exists {
					return apperrors.ErrFlagAlreadyCleared
				}
				return apperrors.ErrFlagNotFound
			}
			return err
		}

		audit := `
			INSERT INTO flag_audit_logs (flag_id, student_id, parent_id, school_id, action, amount, currency, actor_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		if _, err := tx.Exec(ctx, audit,
			flag.ID, flag.StudentID, flag.ParentID, flag.SchoolID,
			string(models.FlagCleared), flag.Amount, flag.Currency, clearedBy); err != nil {
			return fmt.Errorf("error appending flag audit: %w", err)
		}

		cleared = flag
		return nil
	})

	if err != nil {
		return nil, err
	}
	return cleared, nil
}

// GetAll retrieves flags, scoped to a reporting school when schoolID is non-zero
func (r *FlagRepository) GetAll(ctx context.Context, schoolID int64) ([]*models.Flag, error) {
	query := `
		SELECT` + flagColumns + `
		FROM flags
		WHERE ($1 = 0 OR school_id = $1)
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flags []*models.Flag
	for rows.Next() {
		flag, err := scanFlag(rows)
		if err != nil {
			return nil, err
		}
		flags = append(flags, flag)
	}

	return flags, rows.Err()
}

// GetAuditLog retrieves audit rows, scoped to a school when schoolID is non-zero
func (r *FlagRepository) GetAuditLog(ctx context.Context, schoolID int64) ([]*models.FlagAuditLog, error) {
	query := `
		SELECT id, flag_id, student_id, parent_id, school_id, action, amount, currency, actor_id, created_at
		FROM flag_audit_logs
		WHERE ($1 = 0 OR school_id = $1)
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.FlagAuditLog
	for rows.Next() {
		var e models.FlagAuditLog
		if err := rows.Scan(
			&e.ID, &e.FlagID, &e.StudentID, &e.ParentID, &e.SchoolID,
			&e.Action, &e.Amount, &e.Currency, &e.ActorID, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// GetTotals aggregates flag amounts by month, currency and status for the
// school dashboard. Pure read-side reporting.
func (r *FlagRepository) GetTotals(ctx context.Context, schoolID int64) ([]*models.FlagTotals, error) {
	query := `
		SELECT TO_CHAR(created_at, 'YYYY-MM') AS month, currency, status,
		       COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count
		FROM flags
		WHERE ($1 = 0 OR school_id = $1)
		GROUP BY month, currency, status
		ORDER BY month DESC
	`

	rows, err := r.db.Query(ctx, query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []*models.FlagTotals
	for rows.Next() {
		var t models.FlagTotals
		if err := rows.Scan(&t.Month, &t.Currency, &t.Status, &t.Total, &t.Count); err != nil {
			return nil, err
		}
		totals = append(totals, &t)
	}

	return totals, rows.Err()
}
