package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/pkg/apperrors"
	"github.com/osei/edushield/internal/pkg/logger"
)

type schoolStore interface {
	Create(ctx context.Context, school *models.School) error
	GetByID(ctx context.Context, id int64) (*models.School, error)
	GetAll(ctx context.Context) ([]*models.School, error)
	Update(ctx context.Context, school *models.School) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type userCreator interface {
	Create(ctx context.Context, user *models.User) error
	GetAll(ctx context.Context, schoolID int64) ([]*models.User, error)
}

// SchoolService handles school tenant and user provisioning operations
type SchoolService struct {
	schoolRepo schoolStore
	userRepo   userCreator
}

// NewSchoolService creates a new school service instance
func NewSchoolService(schoolRepo schoolStore, userRepo userCreator) *SchoolService {
	return &SchoolService{
		schoolRepo: schoolRepo,
		userRepo:   userRepo,
	}
}

// CreateSchool registers a new school tenant
func (s *SchoolService) CreateSchool(ctx context.Context, req *dto.CreateSchoolRequest) (*models.School, error) {
	school := &models.School{
		Name:     req.Name,
		Location: req.Location,
		Verified: req.Verified,
	}

	if err := s.schoolRepo.Create(ctx, school); err != nil {
		return nil, err
	}

	logger.Info().Int64("schoolId", school.ID).Str("name", school.Name).Msg("School created")
	return school, nil
}

// GetSchoolByID retrieves a school by ID
func (s *SchoolService) GetSchoolByID(ctx context.Context, id int64) (*models.School, error) {
	return s.schoolRepo.GetByID(ctx, id)
}

// GetAllSchools retrieves all school tenants
func (s *SchoolService) GetAllSchools(ctx context.Context) ([]*models.School, error) {
	return s.schoolRepo.GetAll(ctx)
}

// UpdateSchool updates school details. Verified is only changed when the
// request carries it.
func (s *SchoolService) UpdateSchool(ctx context.Context, id int64, req *dto.UpdateSchoolRequest) (*models.School, error) {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	school.Name = req.Name
	school.Location = req.Location
	if req.Verified != nil {
		school.Verified = *req.Verified
	}

	if err := s.schoolRepo.Update(ctx, school); err != nil {
		return nil, err
	}

	return school, nil
}

// CreateUser provisions a user for a school. The account starts inactive;
// the returned activation token is delivered out of band and redeemed via
// the activation endpoint.
func (s *SchoolService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	role := models.Role(req.Role)
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role")
	}

	if role != models.RoleSuperAdmin {
		if req.SchoolID == nil {
			return nil, apperrors.NewValidationError("schoolId is required for school-bound roles")
		}
		exists, err := s.schoolRepo.Exists(ctx, *req.SchoolID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.ErrSchoolNotFound
		}
	} else if req.SchoolID != nil {
		return nil, apperrors.NewValidationError("SUPER_ADMIN users are not bound to a school")
	}

	token := uuid.New().String()
	user := &models.User{
		Email:           req.Email,
		FullName:        req.FullName,
		Role:            role,
		SchoolID:        req.SchoolID,
		ActivationToken: &token,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Str("role", req.Role).Msg("User provisioned")
	return &dto.CreateUserResponse{
		ID:              user.ID,
		Email:           user.Email,
		ActivationToken: token,
	}, nil
}

// GetUsers lists users, scoped to a school for non-super admins
func (s *SchoolService) GetUsers(ctx context.Context, schoolID int64) ([]*models.User, error) {
	return s.userRepo.GetAll(ctx, schoolID)
}
