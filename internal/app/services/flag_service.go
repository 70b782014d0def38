package services

import (
	"context"
	"strings"

	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/pkg/apperrors"
	"github.com/osei/edushield/internal/pkg/logger"
)

type flagStore interface {
	Create(ctx context.Context, flag *models.Flag) error
	GetByID(ctx context.Context, id int64) (*models.Flag, error)
	Clear(ctx context.Context, id, clearedBy int64) (*models.Flag, error)
	GetAll(ctx context.Context, schoolID int64) ([]*models.Flag, error)
	GetAuditLog(ctx context.Context, schoolID int64) ([]*models.FlagAuditLog, error)
	GetTotals(ctx context.Context, schoolID int64) ([]*models.FlagTotals, error)
}

type studentReader interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// Actor identifies the authenticated user performing an operation, as
// carried by the token claims. SchoolID zero means unbound (SUPER_ADMIN).
type Actor struct {
	UserID   int64
	Role     models.Role
	SchoolID int64
}

// FlagService handles the financial-obligation flag ledger
type FlagService struct {
	flagRepo    flagStore
	studentRepo studentReader
	parentRepo  parentStore
	schoolRepo  schoolStore
}

// NewFlagService creates a new flag service instance
func NewFlagService(flagRepo flagStore, studentRepo studentReader, parentRepo parentStore, schoolRepo schoolStore) *FlagService {
	return &FlagService{
		flagRepo:    flagRepo,
		studentRepo: studentRepo,
		parentRepo:  parentRepo,
		schoolRepo:  schoolRepo,
	}
}

// CreateFlag records a flag against a student. The reporting school and the
// student may belong to different tenants; a school flags its own debtors
// but the record is visible registry-wide.
func (s *FlagService) CreateFlag(ctx context.Context, actor Actor, req *dto.CreateFlagRequest) (*models.Flag, error) {
	if req.Amount == nil || *req.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive")
	}

	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	exists, err := s.schoolRepo.Exists(ctx, req.SchoolID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrSchoolNotFound
	}
	if req.ParentID != nil {
		if _, err := s.parentRepo.GetByID(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}

	// Anything other than an exact USD falls back to GHS
	currency := models.CurrencyGHS
	if req.Currency == models.CurrencyUSD {
		currency = models.CurrencyUSD
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = models.DefaultFlagReason
	}

	flag := &models.Flag{
		StudentID: req.StudentID,
		ParentID:  req.ParentID,
		SchoolID:  req.SchoolID,
		Amount:    *req.Amount,
		Currency:  currency,
		Reason:    reason,
		Status:    models.FlagFlagged,
		CreatedBy: actor.UserID,
	}

	if err := s.flagRepo.Create(ctx, flag); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("flagId", flag.ID).
		Int64("studentId", flag.StudentID).
		Int64("schoolId", flag.SchoolID).
		Msg("Flag recorded")

	return flag, nil
}

// ClearFlag settles a flag. Ownership is per user, not per school: only the
// creator of the flag or a SUPER_ADMIN may clear it. The status transition
// itself is guarded in the store, so two concurrent clears cannot both
// succeed.
func (s *FlagService) ClearFlag(ctx context.Context, actor Actor, flagID int64) (*models.Flag, error) {
	flag, err := s.flagRepo.GetByID(ctx, flagID)
	if err != nil {
		return nil, err
	}

	if actor.Role != models.RoleSuperAdmin && flag.CreatedBy != actor.UserID {
		return nil, apperrors.ErrNotFlagCreator
	}

	cleared, err := s.flagRepo.Clear(ctx, flagID, actor.UserID)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("flagId", flagID).Int64("clearedBy", actor.UserID).Msg("Flag cleared")
	return cleared, nil
}

// GetFlagByID retrieves a flag by ID
func (s *FlagService) GetFlagByID(ctx context.Context, id int64) (*models.Flag, error) {
	return s.flagRepo.GetByID(ctx, id)
}

// GetAllFlags lists flags, scoped to the reporting school for non-super admins
func (s *FlagService) GetAllFlags(ctx context.Context, schoolID int64) ([]*models.Flag, error) {
	return s.flagRepo.GetAll(ctx, schoolID)
}

// GetAuditLog returns the append-only flag history, school-scoped
func (s *FlagService) GetAuditLog(ctx context.Context, schoolID int64) ([]*models.FlagAuditLog, error) {
	return s.flagRepo.GetAuditLog(ctx, schoolID)
}

// GetTotals returns the month/currency/status dashboard aggregation
func (s *FlagService) GetTotals(ctx context.Context, schoolID int64) ([]*models.FlagTotals, error) {
	return s.flagRepo.GetTotals(ctx, schoolID)
}
