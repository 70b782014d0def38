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

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

const studentColumns = `
	id, first_name, last_name, date_of_birth, COALESCE(gender, ''), school_id,
	legacy_class, photo_url, COALESCE(identifier, ''), created_at, updated_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID,
		&student.FirstName,
		&student.LastName,
		&student.DateOfBirth,
		&student.Gender,
		&student.SchoolID,
		&student.LegacyClass,
		&student.PhotoURL,
		&student.Identifier,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return &student, nil
}

// CreateWithIdentifier inserts a student and assigns its system identifier in
// one transaction. The identifier is derived from the generated row id, so it
// can only be written after the insert. An optional guardian link is written
// in the same transaction.
func (r *StudentRepository) CreateWithIdentifier(ctx context.Context, student *models.Student, parentID *int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		insert := `
			INSERT INTO students (first_name, last_name, date_of_birth, gender, school_id, legacy_class, photo_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRow(ctx, insert,
			student.FirstName, student.LastName, student.DateOfBirth,
			student.Gender, student.SchoolID, student.LegacyClass, student.PhotoURL).
			Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error creating student: %w", err)
		}

		student.Identifier = fmt.Sprintf("%s%d", models.IdentifierPrefix, student.ID)
		if _, err := tx.Exec(ctx,
			`UPDATE students SET identifier = $1 WHERE id = $2`,
			student.Identifier, student.ID); err != nil {
			return fmt.Errorf("error assigning identifier: %w", err)
		}

		if parentID != nil {
			if err := linkParentTx(ctx, tx, student.ID, *parentID); err != nil {
				return err
			}
		}

		return nil
	})
}

func linkParentTx(ctx context.Context, tx pgx.Tx, studentID, parentID int64) error {
	// One current guardian per student; a reassignment overwrites the link
	query := `
		INSERT INTO student_parents (student_id, parent_id)
		VALUES ($1, $2)
		ON CONFLICT (student_id) DO UPDATE SET parent_id = EXCLUDED.parent_id, linked_at = NOW()
	`
	if _, err := tx.Exec(ctx, query, studentID, parentID); err != nil {
		return fmt.Errorf("error linking parent: %w", err)
	}
	return nil
}

// FindByNameAndDOB performs the case-insensitive duplicate match on
// (first name, last name, date of birth) across all schools.
func (r *StudentRepository) FindByNameAndDOB(ctx context.Context, firstName, lastName string, dob time.Time) ([]*models.Student, error) {
	query := `
		SELECT` + studentColumns + `
		FROM students
		WHERE LOWER(first_name) = LOWER($1)
		  AND LOWER(last_name) = LOWER($2)
		  AND date_of_birth = $3
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, firstName, lastName, dob)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

// GetByID retrieves a student by ID with its current guardian attached
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT` + studentColumns + ` FROM students WHERE id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	parent, err := r.GetCurrentParent(ctx, id)
	if err != nil {
		return nil, err
	}
	if parent != nil {
		student.Parent = parent
	}

	return student, nil
}

// GetCurrentParent returns the student's current guardian, or nil
func (r *StudentRepository) GetCurrentParent(ctx context.Context, studentID int64) (*models.Parent, error) {
	query := `
		SELECT p.id, p.full_name, p.phone, p.card_number, p.address, p.created_at
		FROM parents p
		JOIN student_parents sp ON sp.parent_id = p.id
		WHERE sp.student_id = $1
	`

	var parent models.Parent
	err := r.db.QueryRow(ctx, query, studentID).Scan(
		&parent.ID,
		&parent.FullName,
		&parent.Phone,
		&parent.CardNumber,
		&parent.Address,
		&parent.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving guardian: %w", err)
	}

	return &parent, nil
}

// GetAll retrieves students, scoped to a school when schoolID is non-zero
func (r *StudentRepository) GetAll(ctx context.Context, schoolID int64) ([]*models.Student, error) {
	query := `
		SELECT` + studentColumns + `
		FROM students
		WHERE ($1 = 0 OR school_id = $1)
		ORDER BY last_name, first_name
	`

	rows, err := r.db.Query(ctx, query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

// UpdateSchool transfers a student to another school
func (r *StudentRepository) UpdateSchool(ctx context.Context, studentID, schoolID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE students SET school_id = $1, updated_at = NOW() WHERE id = $2`,
		schoolID, studentID)
	if err != nil {
		return fmt.Errorf("error transferring student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// AssignParent overwrites the student's current guardian link
func (r *StudentRepository) AssignParent(ctx context.Context, studentID, parentID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		return linkParentTx(ctx, tx, studentID, parentID)
	})
}
