package services

import (
	"context"
	"strings"

	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/pkg/apperrors"
)

type verificationStore interface {
	SearchStudents(ctx context.Context, query string) ([]*models.Student, error)
	FlagsForStudents(ctx context.Context, studentIDs []int64) ([]*models.Flag, error)
	ParentsForStudents(ctx context.Context, studentIDs []int64) ([]*models.Parent, error)
	SearchTeachers(ctx context.Context, query string) ([]*models.Teacher, error)
}

// VerificationService answers the read-only lookups schools run before
// enrolling a student or hiring a teacher. It never writes.
type VerificationService struct {
	verificationRepo verificationStore
}

// NewVerificationService creates a new verification service instance
func NewVerificationService(verificationRepo verificationStore) *VerificationService {
	return &VerificationService{
		verificationRepo: verificationRepo,
	}
}

// VerifyStudent runs the student-first lookup. Only outstanding FLAGGED
// flags are returned; the overall status is FLAGGED exactly when any flag
// comes back, so cleared history alone reads CLEAR.
func (s *VerificationService) VerifyStudent(ctx context.Context, query string) (*dto.StudentVerificationResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("a search query is required")
	}

	students, err := s.verificationRepo.SearchStudents(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return &dto.StudentVerificationResponse{Status: dto.VerificationNotFound}, nil
	}

	ids := make([]int64, len(students))
	for i, st := range students {
		ids[i] = st.ID
	}

	flags, err := s.verificationRepo.FlagsForStudents(ctx, ids)
	if err != nil {
		return nil, err
	}
	parents, err := s.verificationRepo.ParentsForStudents(ctx, ids)
	if err != nil {
		return nil, err
	}

	status := dto.VerificationClear
	if len(flags) > 0 {
		status = dto.VerificationFlagged
	}

	return &dto.StudentVerificationResponse{
		Status:   status,
		Students: students,
		Flags:    flags,
		Parents:  parents,
	}, nil
}

// VerifyTeacher runs the teacher-first lookup with per-status counts
func (s *VerificationService) VerifyTeacher(ctx context.Context, query string) (*dto.TeacherVerificationResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("a search query is required")
	}

	teachers, err := s.verificationRepo.SearchTeachers(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(teachers) == 0 {
		return &dto.TeacherVerificationResponse{Status: dto.VerificationNotFound}, nil
	}

	var summary dto.TeacherSummary
	status := dto.VerificationEngaged
	for _, t := range teachers {
		switch t.Status {
		case models.TeacherFlagged:
			summary.Flagged++
			status = dto.VerificationFlagged
		case models.TeacherCleared:
			summary.Cleared++
		default:
			summary.Engaged++
		}
	}

	return &dto.TeacherVerificationResponse{
		Status:   status,
		Teachers: teachers,
		Summary:  summary,
	}, nil
}
