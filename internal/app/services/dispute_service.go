package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/pkg/apperrors"
	"github.com/osei/edushield/internal/pkg/filestorage"
	"github.com/osei/edushield/internal/pkg/logger"
)

type disputeStore interface {
	Create(ctx context.Context, dispute *models.Dispute) error
	FindActiveByStudent(ctx context.Context, studentID int64) (*models.Dispute, error)
	GetByID(ctx context.Context, id int64) (*models.Dispute, error)
	GetAll(ctx context.Context, studentID int64) ([]*models.Dispute, error)
	MarkUnderReview(ctx context.Context, id int64) error
	Resolve(ctx context.Context, id int64, target models.DisputeStatus, resolvedBy int64, note string) error
}

// DisputeService handles record contestations and their lifecycle
type DisputeService struct {
	disputeRepo disputeStore
	studentRepo studentReader
	storage     filestorage.FileStorage
}

// NewDisputeService creates a new dispute service instance
func NewDisputeService(disputeRepo disputeStore, studentRepo studentReader, storage filestorage.FileStorage) *DisputeService {
	return &DisputeService{
		disputeRepo: disputeRepo,
		studentRepo: studentRepo,
		storage:     storage,
	}
}

// RaiseDispute opens a dispute for a student. A student may only carry one
// active dispute; when one exists the caller gets its id and status back
// instead of a new row.
func (s *DisputeService) RaiseDispute(ctx context.Context, req *dto.CreateDisputeRequest, proof *multipart.FileHeader) (*models.Dispute, *dto.ActiveDisputeConflict, error) {
	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, nil, err
	}

	raisedBy := normalizeRaisedBy(req.RaisedBy)
	if raisedBy == "" {
		return nil, nil, apperrors.NewValidationError("raisedBy must be PARENT, STUDENT or ADMIN")
	}

	active, err := s.disputeRepo.FindActiveByStudent(ctx, req.StudentID)
	if err != nil {
		return nil, nil, err
	}
	if active != nil {
		return nil, &dto.ActiveDisputeConflict{
			ExistingDisputeID: active.ID,
			Status:            string(active.Status),
		}, apperrors.ErrActiveDisputeExists
	}

	var proofURL *string
	if proof != nil {
		url, err := s.storage.SaveFileWithPath(proof, "disputes")
		if err != nil {
			return nil, nil, err
		}
		proofURL = &url
	}

	dispute := &models.Dispute{
		StudentID:   req.StudentID,
		RaisedBy:    raisedBy,
		Reason:      strings.TrimSpace(req.Reason),
		Description: strings.TrimSpace(req.Description),
		ProofURL:    proofURL,
	}

	if err := s.disputeRepo.Create(ctx, dispute); err != nil {
		return nil, nil, err
	}

	logger.Info().
		Int64("disputeId", dispute.ID).
		Int64("studentId", req.StudentID).
		Str("raisedBy", raisedBy).
		Msg("Dispute raised")

	return dispute, nil, nil
}

// normalizeRaisedBy folds case and defaults the empty value to PARENT
func normalizeRaisedBy(raisedBy string) string {
	switch strings.ToUpper(strings.TrimSpace(raisedBy)) {
	case "":
		return models.RaisedByParent
	case models.RaisedByParent:
		return models.RaisedByParent
	case models.RaisedByStudent:
		return models.RaisedByStudent
	case models.RaisedByAdmin:
		return models.RaisedByAdmin
	}
	return ""
}

// GetDisputeByID retrieves a dispute by ID
func (s *DisputeService) GetDisputeByID(ctx context.Context, id int64) (*models.Dispute, error) {
	return s.disputeRepo.GetByID(ctx, id)
}

// GetDisputes lists disputes, optionally filtered by student
func (s *DisputeService) GetDisputes(ctx context.Context, studentID int64) ([]*models.Dispute, error) {
	return s.disputeRepo.GetAll(ctx, studentID)
}

// StartReview moves an OPEN dispute to UNDER_REVIEW
func (s *DisputeService) StartReview(ctx context.Context, disputeID int64) (*models.Dispute, error) {
	if err := s.disputeRepo.MarkUnderReview(ctx, disputeID); err != nil {
		return nil, err
	}
	return s.disputeRepo.GetByID(ctx, disputeID)
}

// ResolveDispute closes a dispute under review with an accepted or rejected
// outcome. Resolution does not itself mutate the disputed records; any
// correction is a separate administrative action.
func (s *DisputeService) ResolveDispute(ctx context.Context, actor Actor, disputeID int64, req *dto.ResolveDisputeRequest) (*models.Dispute, error) {
	target := models.DisputeStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if target != models.DisputeResolvedAccepted && target != models.DisputeResolvedRejected {
		return nil, apperrors.NewValidationError("status must be RESOLVED_ACCEPTED or RESOLVED_REJECTED")
	}

	if err := s.disputeRepo.Resolve(ctx, disputeID, target, actor.UserID, strings.TrimSpace(req.Note)); err != nil {
		return nil, err
	}

	logger.Info().Int64("disputeId", disputeID).Str("outcome", string(target)).Msg("Dispute resolved")
	return s.disputeRepo.GetByID(ctx, disputeID)
}
