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

const dateLayout = "2006-01-02"

type studentStore interface {
	CreateWithIdentifier(ctx context.Context, student *models.Student, parentID *int64) error
	FindByNameAndDOB(ctx context.Context, firstName, lastName string, dob time.Time) ([]*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context, schoolID int64) ([]*models.Student, error)
	UpdateSchool(ctx context.Context, studentID, schoolID int64) error
	AssignParent(ctx context.Context, studentID, parentID int64) error
}

type reviewCreator interface {
	Create(ctx context.Context, review *models.DuplicateReview) error
}

// StudentService handles student registry operations, including the
// duplicate gate in front of every creation path.
type StudentService struct {
	studentRepo studentStore
	parentRepo  parentStore
	reviewRepo  reviewCreator
	schoolRepo  schoolStore
	storage     filestorage.FileStorage
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo studentStore, parentRepo parentStore, reviewRepo reviewCreator, schoolRepo schoolStore, storage filestorage.FileStorage) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		parentRepo:  parentRepo,
		reviewRepo:  reviewRepo,
		schoolRepo:  schoolRepo,
		storage:     storage,
	}
}

// CreateStudent runs the duplicate gate and either creates the student or
// files a duplicate review. On a collision no student row is written; the
// submission survives as the review's snapshot and the caller gets the
// review id.
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest, photo *multipart.FileHeader) (*models.Student, *dto.DuplicateConflict, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)

	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return nil, nil, apperrors.NewValidationError("dateOfBirth must be YYYY-MM-DD")
	}

	exists, err := s.schoolRepo.Exists(ctx, req.SchoolID)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, apperrors.ErrSchoolNotFound
	}

	parentID, err := s.resolveParent(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	var photoURL *string
	if photo != nil {
		url, err := s.storage.SaveFileWithPath(photo, "students")
		if err != nil {
			return nil, nil, err
		}
		photoURL = &url
	}

	matches, err := s.studentRepo.FindByNameAndDOB(ctx, firstName, lastName, dob)
	if err != nil {
		return nil, nil, err
	}
	if len(matches) > 0 {
		conflict, err := s.fileDuplicateReview(ctx, req, firstName, lastName, matches[0].ID, parentID, photoURL)
		if err != nil {
			return nil, nil, err
		}
		return nil, conflict, apperrors.ErrDuplicateStudent
	}

	student := &models.Student{
		FirstName:   firstName,
		LastName:    lastName,
		DateOfBirth: dob,
		Gender:      req.Gender,
		SchoolID:    req.SchoolID,
		LegacyClass: helpers.OptionalString(strings.TrimSpace(req.LegacyClass)),
		PhotoURL:    photoURL,
	}

	if err := s.studentRepo.CreateWithIdentifier(ctx, student, parentID); err != nil {
		return nil, nil, err
	}

	logger.Info().Int64("studentId", student.ID).Str("identifier", student.Identifier).Msg("Student registered")
	return student, nil, nil
}

// resolveParent returns the guardian to link: an existing parent id or a
// parent created inline from name+phone. Nil when the form names no guardian.
func (s *StudentService) resolveParent(ctx context.Context, req *dto.CreateStudentRequest) (*int64, error) {
	if req.ParentID != nil {
		if _, err := s.parentRepo.GetByID(ctx, *req.ParentID); err != nil {
			return nil, err
		}
		return req.ParentID, nil
	}

	name := strings.TrimSpace(req.ParentName)
	phone := strings.TrimSpace(req.ParentPhone)
	if name == "" {
		return nil, nil
	}
	if phone == "" {
		return nil, apperrors.NewValidationError("parentPhone is required when parentName is set")
	}

	parent := &models.Parent{FullName: name, Phone: phone}
	if err := s.parentRepo.Create(ctx, parent); err != nil {
		return nil, err
	}
	return &parent.ID, nil
}

func (s *StudentService) fileDuplicateReview(ctx context.Context, req *dto.CreateStudentRequest, firstName, lastName string, existingID int64, parentID *int64, photoURL *string) (*dto.DuplicateConflict, error) {
	review := &models.DuplicateReview{
		ExistingStudentID: existingID,
		Submission: models.StudentSnapshot{
			FirstName:   firstName,
			LastName:    lastName,
			DateOfBirth: req.DateOfBirth,
			Gender:      req.Gender,
			SchoolID:    req.SchoolID,
			LegacyClass: helpers.OptionalString(strings.TrimSpace(req.LegacyClass)),
			PhotoURL:    photoURL,
			ParentID:    parentID,
		},
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	logger.Warn().
		Int64("reviewId", review.ID).
		Int64("existingStudentId", existingID).
		Msg("Duplicate student submission routed to review")

	return &dto.DuplicateConflict{
		ReviewID:          review.ID,
		ExistingStudentID: existingID,
	}, nil
}

// GetStudentByID retrieves a student with the current guardian attached
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetAllStudents lists students, scoped to a school for non-super admins
func (s *StudentService) GetAllStudents(ctx context.Context, schoolID int64) ([]*models.Student, error) {
	return s.studentRepo.GetAll(ctx, schoolID)
}

// TransferStudent moves a student to another school. Identity fields and the
// identifier are untouched.
func (s *StudentService) TransferStudent(ctx context.Context, studentID int64, req *dto.UpdateStudentSchoolRequest) error {
	exists, err := s.schoolRepo.Exists(ctx, req.SchoolID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrSchoolNotFound
	}

	return s.studentRepo.UpdateSchool(ctx, studentID, req.SchoolID)
}

// AssignParent replaces the student's current guardian link. Historical
// references on flags are unaffected.
func (s *StudentService) AssignParent(ctx context.Context, studentID int64, req *dto.AssignParentRequest) error {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return err
	}
	if _, err := s.parentRepo.GetByID(ctx, req.ParentID); err != nil {
		return err
	}

	return s.studentRepo.AssignParent(ctx, studentID, req.ParentID)
}
