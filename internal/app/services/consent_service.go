package services

import (
	"context"
	"strings"

	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/pkg/apperrors"
	"github.com/osei/edushield/internal/pkg/logger"
)

type consentStore interface {
	Create(ctx context.Context, consent *models.Consent) error
	Approve(ctx context.Context, id, approvedBy int64) error
	Reject(ctx context.Context, id, approvedBy int64, reason string) error
	GetAll(ctx context.Context, schoolID int64) ([]*models.Consent, error)
	HasGranted(ctx context.Context, studentID, schoolID int64) (bool, error)
}

// ConsentService handles consent requests over flagged student records
type ConsentService struct {
	consentRepo consentStore
	studentRepo studentReader
}

// NewConsentService creates a new consent service instance
func NewConsentService(consentRepo consentStore, studentRepo studentReader) *ConsentService {
	return &ConsentService{
		consentRepo: consentRepo,
		studentRepo: studentRepo,
	}
}

// RequestConsent opens a PENDING consent request. At most one pending
// request may exist per (student, school); a second attempt conflicts.
func (s *ConsentService) RequestConsent(ctx context.Context, req *dto.CreateConsentRequest) (*models.Consent, error) {
	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}

	consent := &models.Consent{
		StudentID: req.StudentID,
		SchoolID:  req.SchoolID,
	}

	if err := s.consentRepo.Create(ctx, consent); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("consentId", consent.ID).
		Int64("studentId", req.StudentID).
		Int64("schoolId", req.SchoolID).
		Msg("Consent requested")

	return consent, nil
}

// ApproveConsent grants a pending request. Already-processed requests are
// reported as not found, not overwritten.
func (s *ConsentService) ApproveConsent(ctx context.Context, actor Actor, consentID int64) error {
	if err := s.consentRepo.Approve(ctx, consentID, actor.UserID); err != nil {
		return err
	}

	logger.Info().Int64("consentId", consentID).Int64("approvedBy", actor.UserID).Msg("Consent granted")
	return nil
}

// RejectConsent rejects a pending request. The reason is mandatory and is
// validated before any state is touched, so a rejected validation leaves the
// request pending.
func (s *ConsentService) RejectConsent(ctx context.Context, actor Actor, consentID int64, req *dto.RejectConsentRequest) error {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return apperrors.NewValidationError("a rejection reason is required")
	}

	if err := s.consentRepo.Reject(ctx, consentID, actor.UserID, reason); err != nil {
		return err
	}

	logger.Info().Int64("consentId", consentID).Msg("Consent rejected")
	return nil
}

// GetConsents lists consent requests, scoped to the requesting school for
// non-super admins
func (s *ConsentService) GetConsents(ctx context.Context, schoolID int64) ([]*models.Consent, error) {
	return s.consentRepo.GetAll(ctx, schoolID)
}

// HasGrantedConsent reports whether the school holds granted consent for
// the student's obligation detail
func (s *ConsentService) HasGrantedConsent(ctx context.Context, studentID, schoolID int64) (bool, error) {
	return s.consentRepo.HasGranted(ctx, studentID, schoolID)
}
