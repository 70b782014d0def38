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

func newConsentFixture() (*ConsentService, *fakeConsentStore) {
	store := &fakeConsentStore{}
	students := &fakeStudentStore{students: []*models.Student{
		{ID: 1, FirstName: "Ama", LastName: "Mensah", DateOfBirth: mustDate("2010-01-01"), SchoolID: 7},
	}, nextID: 1}
	return NewConsentService(store, students), store
}

func TestRequestConsent_SinglePendingPerStudentAndSchool(t *testing.T) {
	svc, _ := newConsentFixture()

	consent, err := svc.RequestConsent(context.Background(), &dto.CreateConsentRequest{StudentID: 1, SchoolID: 8})
	require.NoError(t, err)
	assert.Equal(t, models.ConsentPending, consent.Status)

	_, err = svc.RequestConsent(context.Background(), &dto.CreateConsentRequest{StudentID: 1, SchoolID: 8})
	assert.ErrorIs(t, err, apperrors.ErrConsentAlreadyPending)

	// Another school may still ask
	_, err = svc.RequestConsent(context.Background(), &dto.CreateConsentRequest{StudentID: 1, SchoolID: 9})
	assert.NoError(t, err)
}

func TestRequestConsent_UnknownStudent(t *testing.T) {
	svc, _ := newConsentFixture()

	_, err := svc.RequestConsent(context.Background(), &dto.CreateConsentRequest{StudentID: 99, SchoolID: 8})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestApproveConsent_GrantsAndUnlocksDetail(t *testing.T) {
	svc, _ := newConsentFixture()

	consent, err := svc.RequestConsent(context.Background(), &dto.CreateConsentRequest{StudentID: 1, SchoolID: 8})
	require.NoError(t, err)

	granted, err := svc.HasGrantedConsent(context.Background(), 1, 8)
	require.NoError(t, err)
	assert.False(t, granted)

	require.NoError(t, svc.ApproveConsent(context.Background(), Actor{UserID: 5}, consent.ID))

	granted, err = svc.HasGrantedConsent(context.Background(), 1, 8)
	require.NoError(t, err)
	assert.True(t, granted)
}

func TestApproveConsent_AlreadyProcessed(t *testing.T) {
	svc, _ := newConsentFixture()

	consent, err := svc.RequestConsent(context.Background(), &dto.CreateConsentRequest{StudentID: 1, SchoolID: 8})
	require.NoError(t, err)
	require.NoError(t, svc.ApproveConsent(context.Background(), Actor{UserID: 5}, consent.ID))

	err = svc.ApproveConsent(context.Background(), Actor{UserID: 5}, consent.ID)
	assert.ErrorIs(t, err, apperrors.ErrConsentNotFound)
}

func TestRejectConsent_ReasonRequired(t *testing.T) {
	svc, _ := newConsentFixture()

	consent, err := svc.RequestConsent(context.Background(), &dto.CreateConsentRequest{StudentID: 1, SchoolID: 8})
	require.NoError(t, err)

	err = svc.RejectConsent(context.Background(), Actor{UserID: 5}, consent.ID, &dto.RejectConsentRequest{Reason: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// The failed rejection left the request pending
	assert.Equal(t, models.ConsentPending, consent.Status)

	err = svc.RejectConsent(context.Background(), Actor{UserID: 5}, consent.ID, &dto.RejectConsentRequest{Reason: "student cleared all dues"})
	require.NoError(t, err)
	assert.Equal(t, models.ConsentRejected, consent.Status)
	require.NotNil(t, consent.RejectionReason)
	assert.Equal(t, "student cleared all dues", *consent.RejectionReason)
}
