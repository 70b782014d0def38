package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/osei/edushield/internal/app/models"
)

// VerificationRepository handles the read-only lookup queries behind
// enrollment and hiring checks. It never writes.
type VerificationRepository struct {
	db *pgxpool.Pool
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *pgxpool.Pool) *VerificationRepository {
	return &VerificationRepository{
		db: db,
	}
}

// SearchStudents matches students by their own name (substring,
// case-insensitive), by a linked or flag-referenced parent's name
// (substring), or by that parent's phone or card number (exact).
func (r *VerificationRepository) SearchStudents(ctx context.Context, query string) ([]*models.Student, error) {
	sql := `
		SELECT DISTINCT
			s.id, s.first_name, s.last_name, s.date_of_birth, COALESCE(s.gender, ''), s.school_id,
			s.legacy_class, s.photo_url, COALESCE(s.identifier, ''), s.created_at, s.updated_at
		FROM students s
		LEFT JOIN student_parents sp ON sp.student_id = s.id
		LEFT JOIN flags f ON f.student_id = s.id
		LEFT JOIN parents p ON p.id = sp.parent_id OR p.id = f.parent_id
		WHERE (s.first_name || ' ' || s.last_name) ILIKE '%' || $1 || '%'
		   OR p.full_name ILIKE '%' || $1 || '%'
		   OR p.phone = $1
		   OR p.card_number = $1
		ORDER BY s.id
	`

	rows, err := r.db.Query(ctx, sql, query)
	if err != nil {
		return nil, fmt.Errorf("error searching students: %w", err)
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

// FlagsForStudents returns the outstanding FLAGGED flags for the given
// student ids. Cleared history stays off the lookup payload.
func (r *VerificationRepository) FlagsForStudents(ctx context.Context, studentIDs []int64) ([]*models.Flag, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	sql := `
		SELECT` + flagColumns + `
		FROM flags
		WHERE student_id = ANY($1) AND status = $2
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, sql, studentIDs, models.FlagFlagged)
	if err != nil {
		return nil, fmt.Errorf("error loading flags: %w", err)
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

// ParentsForStudents returns the union of current guardians and parents
// referenced by the students' flags. A parent kept only on an old flag still
// shows up here.
func (r *VerificationRepository) ParentsForStudents(ctx context.Context, studentIDs []int64) ([]*models.Parent, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	sql := `
		SELECT DISTINCT p.id, p.full_name, p.phone, p.card_number, p.address, p.created_at
		FROM parents p
		WHERE p.id IN (
			SELECT parent_id FROM student_parents WHERE student_id = ANY($1)
			UNION
			SELECT parent_id FROM flags WHERE student_id = ANY($1) AND parent_id IS NOT NULL
		)
		ORDER BY p.id
	`

	rows, err := r.db.Query(ctx, sql, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("error loading parents: %w", err)
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

// SearchTeachers matches teachers by name (substring, case-insensitive) or
// phone (exact), with their evidence attachments loaded
func (r *VerificationRepository) SearchTeachers(ctx context.Context, query string) ([]*models.Teacher, error) {
	sql := `
		SELECT` + teacherColumns + `
		FROM teachers
		WHERE (first_name || ' ' || last_name) ILIKE '%' || $1 || '%'
		   OR phone = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, sql, query)
	if err != nil {
		return nil, fmt.Errorf("error searching teachers: %w", err)
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
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, teacher := range teachers {
		evidence, err := loadEvidence(ctx, r.db, teacher.ID)
		if err != nil {
			return nil, err
		}
		teacher.Evidence = evidence
	}

	return teachers, nil
}
