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

func newDisputeFixture() (*DisputeService, *fakeDisputeStore) {
	store := &fakeDisputeStore{}
	students := &fakeStudentStore{students: []*models.Student{
		{ID: 1, FirstName: "Ama", LastName: "Mensah", DateOfBirth: mustDate("2010-01-01"), SchoolID: 7},
	}, nextID: 1}
	return NewDisputeService(store, students, nil), store
}

func TestRaiseDispute_NormalizesRaisedBy(t *testing.T) {
	svc, _ := newDisputeFixture()

	dispute, conflict, err := svc.RaiseDispute(context.Background(), &dto.CreateDisputeRequest{
		StudentID: 1,
		RaisedBy:  " parent ",
		Reason:    "flag amount is wrong",
	}, nil)
	require.NoError(t, err)
	assert.Nil(t, conflict)
	assert.Equal(t, models.RaisedByParent, dispute.RaisedBy)
	assert.Equal(t, models.DisputeOpen, dispute.Status)
}

func TestRaiseDispute_DefaultsRaisedByToParent(t *testing.T) {
	svc, _ := newDisputeFixture()

	dispute, _, err := svc.RaiseDispute(context.Background(), &dto.CreateDisputeRequest{
		StudentID: 1,
		Reason:    "record belongs to a different child",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.RaisedByParent, dispute.RaisedBy)
}

func TestRaiseDispute_RejectsUnknownRaisedBy(t *testing.T) {
	svc, store := newDisputeFixture()

	_, _, err := svc.RaiseDispute(context.Background(), &dto.CreateDisputeRequest{
		StudentID: 1,
		RaisedBy:  "NEIGHBOUR",
		Reason:    "flag amount is wrong",
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, store.disputes)
}

func TestRaiseDispute_OneActivePerStudent(t *testing.T) {
	svc, _ := newDisputeFixture()

	first, _, err := svc.RaiseDispute(context.Background(), &dto.CreateDisputeRequest{
		StudentID: 1,
		Reason:    "flag amount is wrong",
	}, nil)
	require.NoError(t, err)

	dispute, conflict, err := svc.RaiseDispute(context.Background(), &dto.CreateDisputeRequest{
		StudentID: 1,
		Reason:    "second attempt",
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrActiveDisputeExists)
	assert.Nil(t, dispute)
	require.NotNil(t, conflict)
	assert.Equal(t, first.ID, conflict.ExistingDisputeID)
	assert.Equal(t, string(models.DisputeOpen), conflict.Status)
}

func TestRaiseDispute_AllowedAfterResolution(t *testing.T) {
	svc, _ := newDisputeFixture()

	first, _, err := svc.RaiseDispute(context.Background(), &dto.CreateDisputeRequest{
		StudentID: 1,
		Reason:    "flag amount is wrong",
	}, nil)
	require.NoError(t, err)

	_, err = svc.StartReview(context.Background(), first.ID)
	require.NoError(t, err)
	_, err = svc.ResolveDispute(context.Background(), Actor{UserID: 5}, first.ID, &dto.ResolveDisputeRequest{
		Status: "RESOLVED_REJECTED",
		Note:   "ledger confirmed",
	})
	require.NoError(t, err)

	_, conflict, err := svc.RaiseDispute(context.Background(), &dto.CreateDisputeRequest{
		StudentID: 1,
		Reason:    "new grievance",
	}, nil)
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestResolveDispute_RequiresReviewFirst(t *testing.T) {
	svc, _ := newDisputeFixture()

	dispute, _, err := svc.RaiseDispute(context.Background(), &dto.CreateDisputeRequest{
		StudentID: 1,
		Reason:    "flag amount is wrong",
	}, nil)
	require.NoError(t, err)

	_, err = svc.ResolveDispute(context.Background(), Actor{UserID: 5}, dispute.ID, &dto.ResolveDisputeRequest{
		Status: "RESOLVED_ACCEPTED",
	})
	assert.ErrorIs(t, err, apperrors.ErrIllegalDisputeTransition)
}

func TestResolveDispute_InvalidOutcome(t *testing.T) {
	svc, _ := newDisputeFixture()

	dispute, _, err := svc.RaiseDispute(context.Background(), &dto.CreateDisputeRequest{
		StudentID: 1,
		Reason:    "flag amount is wrong",
	}, nil)
	require.NoError(t, err)
	_, err = svc.StartReview(context.Background(), dispute.ID)
	require.NoError(t, err)

	_, err = svc.ResolveDispute(context.Background(), Actor{UserID: 5}, dispute.ID, &dto.ResolveDisputeRequest{
		Status: "OPEN",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestStartReview_OnlyFromOpen(t *testing.T) {
	svc, _ := newDisputeFixture()

	dispute, _, err := svc.RaiseDispute(context.Background(), &dto.CreateDisputeRequest{
		StudentID: 1,
		Reason:    "flag amount is wrong",
	}, nil)
	require.NoError(t, err)

	reviewed, err := svc.StartReview(context.Background(), dispute.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DisputeUnderReview, reviewed.Status)

	_, err = svc.StartReview(context.Background(), dispute.ID)
	assert.ErrorIs(t, err, apperrors.ErrIllegalDisputeTransition)
}
