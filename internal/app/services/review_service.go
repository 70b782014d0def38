package services

import (
	"context"

	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/pkg/logger"
)

type reviewStore interface {
	GetByID(ctx context.Context, id int64) (*models.DuplicateReview, error)
	GetAll(ctx context.Context, pendingOnly bool) ([]*models.DuplicateReview, error)
	Decide(ctx context.Context, id int64, decision models.ReviewDecision, reason string, decidedBy int64) (*models.DuplicateReview, error)
}

// ReviewService handles the duplicate-review queue
type ReviewService struct {
	reviewRepo reviewStore
}

// NewReviewService creates a new review service instance
func NewReviewService(reviewRepo reviewStore) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
	}
}

// GetReviewByID retrieves a duplicate review by ID
func (s *ReviewService) GetReviewByID(ctx context.Context, id int64) (*models.DuplicateReview, error) {
	return s.reviewRepo.GetByID(ctx, id)
}

// GetReviews lists duplicate reviews, pending ones only when requested
func (s *ReviewService) GetReviews(ctx context.Context, pendingOnly bool) ([]*models.DuplicateReview, error) {
	return s.reviewRepo.GetAll(ctx, pendingOnly)
}

// ResolveReview decides a pending review. MERGED keeps the existing student
// as the single record; DECLARED_DISTINCT materializes the stored submission
// into a new student. Each review is decided at most once.
func (s *ReviewService) ResolveReview(ctx context.Context, actor Actor, reviewID int64, req *dto.ResolveReviewRequest) (*models.DuplicateReview, error) {
	review, err := s.reviewRepo.Decide(ctx, reviewID, models.ReviewDecision(req.Decision), req.Reason, actor.UserID)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("reviewId", reviewID).
		Str("decision", req.Decision).
		Msg("Duplicate review decided")

	return review, nil
}
