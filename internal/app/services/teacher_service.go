package services

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/pkg/apperrors"
	"github.com/osei/edushield/internal/pkg/filestorage"
	"github.com/osei/edushield/internal/pkg/helpers"
	"github.com/osei/edushield/internal/pkg/logger"
)

type teacherStore interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	GetAll(ctx context.Context, schoolID int64) ([]*models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	SetFlagged(ctx context.Context, id int64, reason string) error
	SetCleared(ctx context.Context, id int64) error
	AddEvidence(ctx context.Context, evidence *models.TeacherEvidence) error
	DeleteEvidence(ctx context.Context, teacherID, evidenceID int64) (string, error)
}

// TeacherService handles the teacher registry: engagement records, the
// misconduct flag lifecycle and its evidence attachments.
type TeacherService struct {
	teacherRepo teacherStore
	schoolRepo  schoolStore
	storage     filestorage.FileStorage
}

// NewTeacherService creates a new teacher service instance
func NewTeacherService(teacherRepo teacherStore, schoolRepo schoolStore, storage filestorage.FileStorage) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		schoolRepo:  schoolRepo,
		storage:     storage,
	}
}

// CreateTeacher registers a teacher as ENGAGED at a school
func (s *TeacherService) CreateTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*models.Teacher, error) {
	exists, err := s.schoolRepo.Exists(ctx, req.SchoolID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrSchoolNotFound
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse(dateLayout, req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewValidationError("dateOfBirth must be YYYY-MM-DD")
		}
		dob = &parsed
	}

	teacher := &models.Teacher{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		DateOfBirth:   dob,
		Gender:        req.Gender,
		Phone:         helpers.OptionalString(strings.TrimSpace(req.Phone)),
		SchoolID:      &req.SchoolID,
		Qualification: strings.TrimSpace(req.Qualification),
		Status:        models.TeacherEngaged,
	}

	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return nil, err
	}

	return teacher, nil
}

// GetTeacherByID retrieves a teacher with evidence attached
func (s *TeacherService) GetTeacherByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return s.teacherRepo.GetByID(ctx, id)
}

// GetAllTeachers lists teachers, scoped to a school for non-super admins
func (s *TeacherService) GetAllTeachers(ctx context.Context, schoolID int64) ([]*models.Teacher, error) {
	return s.teacherRepo.GetAll(ctx, schoolID)
}

// UpdateTeacher updates contact and qualification details. Status and reason
// only move through the flag and clear operations.
func (s *TeacherService) UpdateTeacher(ctx context.Context, id int64, req *dto.UpdateTeacherRequest) (*models.Teacher, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	teacher.FirstName = strings.TrimSpace(req.FirstName)
	teacher.LastName = strings.TrimSpace(req.LastName)
	teacher.Phone = helpers.OptionalString(strings.TrimSpace(req.Phone))
	teacher.Qualification = strings.TrimSpace(req.Qualification)

	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		return nil, err
	}

	return teacher, nil
}

// FlagTeacher marks a teacher FLAGGED with a misconduct reason
func (s *TeacherService) FlagTeacher(ctx context.Context, id int64, req *dto.FlagTeacherRequest) (*models.Teacher, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("reason is required")
	}

	if err := s.teacherRepo.SetFlagged(ctx, id, reason); err != nil {
		return nil, err
	}

	logger.Warn().Int64("teacherId", id).Msg("Teacher flagged")
	return s.teacherRepo.GetByID(ctx, id)
}

// ClearTeacher marks a teacher CLEARED and releases the school link
func (s *TeacherService) ClearTeacher(ctx context.Context, id int64) (*models.Teacher, error) {
	if err := s.teacherRepo.SetCleared(ctx, id); err != nil {
		return nil, err
	}

	logger.Info().Int64("teacherId", id).Msg("Teacher cleared")
	return s.teacherRepo.GetByID(ctx, id)
}

// AddEvidence stores an evidence file for a teacher
func (s *TeacherService) AddEvidence(ctx context.Context, teacherID int64, file *multipart.FileHeader, uploadedBy int64) (*models.TeacherEvidence, error) {
	if _, err := s.teacherRepo.GetByID(ctx, teacherID); err != nil {
		return nil, err
	}

	url, err := s.storage.SaveFileWithPath(file, "evidence")
	if err != nil {
		return nil, err
	}

	evidence := &models.TeacherEvidence{
		TeacherID:  teacherID,
		FileURL:    url,
		FileName:   file.Filename,
		UploadedBy: &uploadedBy,
	}

	if err := s.teacherRepo.AddEvidence(ctx, evidence); err != nil {
		// The record failed, drop the orphaned file
		_ = s.storage.DeleteFile(url)
		return nil, err
	}

	return evidence, nil
}

// RemoveEvidence deletes an evidence record and its stored file
func (s *TeacherService) RemoveEvidence(ctx context.Context, teacherID, evidenceID int64) error {
	fileURL, err := s.teacherRepo.DeleteEvidence(ctx, teacherID, evidenceID)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteFile(fileURL); err != nil {
		logger.Error().Err(err).Str("file", fileURL).Msg("Failed to delete evidence file")
	}
	return nil
}
