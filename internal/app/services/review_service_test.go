package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/pkg/apperrors"
)

func newReviewFixture() (*ReviewService, *fakeReviewStore) {
	store := &fakeReviewStore{reviews: map[int64]*models.DuplicateReview{
		1: {
			ID:                1,
			ExistingStudentID: 10,
			Submission: models.StudentSnapshot{
				FirstName:   "Ama",
				LastName:    "Mensah",
				DateOfBirth: "2010-01-01",
				SchoolID:    4,
			},
		},
	}}
	return NewReviewService(store), store
}

func TestResolveReview_DecidedOnce(t *testing.T) {
	svc, _ := newReviewFixture()

	review, err := svc.ResolveReview(context.Background(), Actor{UserID: 5}, 1, &dto.ResolveReviewRequest{
		Decision: "MERGED",
		Reason:   "same child, transfer not re-registration",
	})
	require.NoError(t, err)
	require.NotNil(t, review.Decision)
	assert.Equal(t, models.DecisionMerged, *review.Decision)
	require.NotNil(t, review.DecidedBy)
	assert.Equal(t, int64(5), *review.DecidedBy)

	_, err = svc.ResolveReview(context.Background(), Actor{UserID: 6}, 1, &dto.ResolveReviewRequest{
		Decision: "DECLARED_DISTINCT",
		Reason:   "second look",
	})
	assert.ErrorIs(t, err, apperrors.ErrReviewAlreadyDecided)
}

func TestResolveReview_NotFound(t *testing.T) {
	svc, _ := newReviewFixture()

	_, err := svc.ResolveReview(context.Background(), Actor{UserID: 5}, 99, &dto.ResolveReviewRequest{
		Decision: "MERGED",
		Reason:   "same child",
	})
	assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)
}

func TestGetReviews_PendingFilter(t *testing.T) {
	svc, store := newReviewFixture()
	decided := models.DecisionMerged
	store.reviews[2] = &models.DuplicateReview{ID: 2, ExistingStudentID: 11, Decision: &decided}

	all, err := svc.GetReviews(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := svc.GetReviews(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(1), pending[0].ID)
}
