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

// TeacherRepository handles database operations for teachers
type TeacherRepository struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{
		db: db,
	}
}

const teacherColumns = `
	id, first_name, last_name, date_of_birth, COALESCE(gender, ''), phone, school_id,
	COALESCE(qualification, ''), status, reason, created_at, updated_at`

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	var teacher models.Teacher
	err := row.Scan(
		&teacher.ID,
		&teacher.FirstName,
		&teacher.LastName,
		&teacher.DateOfBirth,
		&teacher.Gender,
		&teacher.Phone,
		&teacher.SchoolID,
		&teacher.Qualification,
		&teacher.Status,
		&teacher.Reason,
		&teacher.CreatedAt,
		&teacher.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}
	return &teacher, nil
}

// Create creates a new teacher with status ENGAGED
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	query := `
		INSERT INTO teachers (first_name, last_name, date_of_birth, gender, phone, school_id, qualification)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, status, reason, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		teacher.FirstName, teacher.LastName, teacher.DateOfBirth, teacher.Gender,
		teacher.Phone, teacher.SchoolID, teacher.Qualification).
		Scan(&teacher.ID, &teacher.Status, &teacher.Reason, &teacher.CreatedAt, &teacher.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating teacher: %w", err)
	}

	return nil
}

// GetByID retrieves a teacher by ID with evidence attached
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query := `SELECT` + teacherColumns + ` FROM teachers WHERE id = $1`

	teacher, err := scanTeacher(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	evidence, err := r.GetEvidence(ctx, id)
	if err != nil {
		return nil, err
	}
	teacher.Evidence = evidence

	return teacher, nil
}

// GetAll retrieves teachers, scoped to a school when schoolID is non-zero
func (r *TeacherRepository) GetAll(ctx context.Context, schoolID int64) ([]*models.Teacher, error) {
	query := `
		SELECT` + teacherColumns + `
		FROM teachers
		WHERE ($1 = 0 OR school_id = $1)
		ORDER BY last_name, first_name
	`

	rows, err := r.db.Query(ctx, query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, teacher)
	}

	return teachers, rows.Err()
}

// Update updates teacher details
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	query := `
		UPDATE teachers
		SET first_name = $1, last_name = $2, phone = $3, qualification = $4, updated_at = NOW()
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		teacher.FirstName, teacher.LastName, teacher.Phone, teacher.Qualification, teacher.ID)
	if err != nil {
		return fmt.Errorf("error updating teacher: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

// SetFlagged marks a teacher as FLAGGED with the given reason
func (r *TeacherRepository) SetFlagged(ctx context.Context, id int64, reason string) error {
	query := `
		UPDATE teachers
		SET status = $2, reason = $3, updated_at = NOW()
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, id, models.TeacherFlagged, reason)
	if err != nil {
		return fmt.Errorf("error flagging teacher: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

// SetCleared marks a teacher as CLEARED and releases the school link
func (r *TeacherRepository) SetCleared(ctx context.Context, id int64) error {
	query := `
		UPDATE teachers
		SET status = $2, school_id = NULL, updated_at = NOW()
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, id, models.TeacherCleared)
	if err != nil {
		return fmt.Errorf("error clearing teacher: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

// AddEvidence stores an evidence attachment reference
func (r *TeacherRepository) AddEvidence(ctx context.Context, evidence *models.TeacherEvidence) error {
	query := `
		INSERT INTO teacher_evidence (teacher_id, file_url, file_name, uploaded_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		evidence.TeacherID, evidence.FileURL, evidence.FileName, evidence.UploadedBy).
		Scan(&evidence.ID, &evidence.CreatedAt)
	if err != nil {
		return fmt.Errorf("error adding evidence: %w", err)
	}
	return nil
}

// GetEvidence lists evidence attachments for a teacher
func (r *TeacherRepository) GetEvidence(ctx context.Context, teacherID int64) ([]models.TeacherEvidence, error) {
	return loadEvidence(ctx, r.db, teacherID)
}

func loadEvidence(ctx context.Context, db *pgxpool.Pool, teacherID int64) ([]models.TeacherEvidence, error) {
	query := `
		SELECT id, teacher_id, file_url, file_name, uploaded_by, created_at
		FROM teacher_evidence
		WHERE teacher_id = $1
		ORDER BY created_at
	`

	rows, err := db.Query(ctx, query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evidence []models.TeacherEvidence
	for rows.Next() {
		var e models.TeacherEvidence
		if err := rows.Scan(&e.ID, &e.TeacherID, &e.FileURL, &e.FileName, &e.UploadedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		evidence = append(evidence, e)
	}

	return evidence, rows.Err()
}

// DeleteEvidence removes an evidence record, returning its file reference
// so the caller can delete the stored file afterwards.
func (r *TeacherRepository) DeleteEvidence(ctx context.Context, teacherID, evidenceID int64) (string, error) {
	var fileURL string
	err := r.db.QueryRow(ctx,
		`DELETE FROM teacher_evidence WHERE id = $1 AND teacher_id = $2 RETURNING file_url`,
		evidenceID, teacherID).Scan(&fileURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrResourceNotFound
		}
		return "", fmt.Errorf("error deleting evidence: %w", err)
	}
	return fileURL, nil
}
