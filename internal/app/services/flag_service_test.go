package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/pkg/apperrors"
)

func newFlagFixture() (*FlagService, *fakeFlagStore, *fakeStudentStore) {
	flags := newFakeFlagStore()
	students := &fakeStudentStore{students: []*models.Student{
		{ID: 1, FirstName: "Ama", LastName: "Mensah", DateOfBirth: mustDate("2010-01-01"), SchoolID: 7},
	}, nextID: 1}
	parents := &fakeParentStore{}
	schools := &fakeSchoolStore{schools: map[int64]*models.School{
		7: {ID: 7, Name: "Accra Basic School"},
	}}
	return NewFlagService(flags, students, parents, schools), flags, students
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func amount(v float64) *float64 { return &v }

func TestCreateFlag_DefaultsCurrencyAndReason(t *testing.T) {
	svc, _, _ := newFlagFixture()

	flag, err := svc.CreateFlag(context.Background(), Actor{UserID: 10, Role: models.RoleSchoolAdmin, SchoolID: 7}, &dto.CreateFlagRequest{
		StudentID: 1,
		SchoolID:  7,
		Amount:    amount(500),
		Currency:  "eur",
	})
	require.NoError(t, err)

	assert.Equal(t, models.CurrencyGHS, flag.Currency)
	assert.Equal(t, models.DefaultFlagReason, flag.Reason)
	assert.Equal(t, models.FlagFlagged, flag.Status)
	assert.Equal(t, int64(10), flag.CreatedBy)
}

func TestCreateFlag_KeepsUSD(t *testing.T) {
	svc, _, _ := newFlagFixture()

	flag, err := svc.CreateFlag(context.Background(), Actor{UserID: 10, Role: models.RoleSchoolAdmin, SchoolID: 7}, &dto.CreateFlagRequest{
		StudentID: 1,
		SchoolID:  7,
		Amount:    amount(120),
		Currency:  models.CurrencyUSD,
		Reason:    "Library fine",
	})
	require.NoError(t, err)

	assert.Equal(t, models.CurrencyUSD, flag.Currency)
	assert.Equal(t, "Library fine", flag.Reason)
}

func TestCreateFlag_RejectsNonPositiveAmount(t *testing.T) {
	svc, _, _ := newFlagFixture()

	_, err := svc.CreateFlag(context.Background(), Actor{UserID: 10}, &dto.CreateFlagRequest{
		StudentID: 1,
		SchoolID:  7,
		Amount:    amount(0),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateFlag(context.Background(), Actor{UserID: 10}, &dto.CreateFlagRequest{
		StudentID: 1,
		SchoolID:  7,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateFlag_UnknownStudent(t *testing.T) {
	svc, _, _ := newFlagFixture()

	_, err := svc.CreateFlag(context.Background(), Actor{UserID: 10}, &dto.CreateFlagRequest{
		StudentID: 99,
		SchoolID:  7,
		Amount:    amount(50),
	})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestCreateFlag_UnknownSchool(t *testing.T) {
	svc, store, _ := newFlagFixture()

	_, err := svc.CreateFlag(context.Background(), Actor{UserID: 10, Role: models.RoleSchoolAdmin, SchoolID: 7}, &dto.CreateFlagRequest{
		StudentID: 1,
		SchoolID:  999,
		Amount:    amount(50),
	})
	assert.ErrorIs(t, err, apperrors.ErrSchoolNotFound)
	assert.Empty(t, store.flags)
}

func TestClearFlag_OnlyCreatorMayClear(t *testing.T) {
	svc, store, _ := newFlagFixture()
	require.NoError(t, store.Create(context.Background(), &models.Flag{
		StudentID: 1, SchoolID: 7, Amount: 500, Currency: models.CurrencyGHS, Status: models.FlagFlagged,
		CreatedBy: 11,
	}))

	// A colleague from the same school is still not the creator
	_, err := svc.ClearFlag(context.Background(), Actor{UserID: 20, Role: models.RoleSchoolAdmin, SchoolID: 7}, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFlagCreator)

	// The denied attempt must not have touched the flag
	flag, err := store.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.FlagFlagged, flag.Status)

	cleared, err := svc.ClearFlag(context.Background(), Actor{UserID: 11, Role: models.RoleSchoolAdmin, SchoolID: 7}, 1)
	require.NoError(t, err)
	assert.Equal(t, models.FlagCleared, cleared.Status)
	require.NotNil(t, cleared.ClearedBy)
	assert.Equal(t, int64(11), *cleared.ClearedBy)
}

func TestClearFlag_SuperAdminBypassesOwnership(t *testing.T) {
	svc, store, _ := newFlagFixture()
	require.NoError(t, store.Create(context.Background(), &models.Flag{
		StudentID: 1, SchoolID: 7, Amount: 500, Currency: models.CurrencyGHS, Status: models.FlagFlagged,
		CreatedBy: 11,
	}))

	cleared, err := svc.ClearFlag(context.Background(), Actor{UserID: 1, Role: models.RoleSuperAdmin}, 1)
	require.NoError(t, err)
	assert.Equal(t, models.FlagCleared, cleared.Status)
}

func TestClearFlag_AlreadyCleared(t *testing.T) {
	svc, store, _ := newFlagFixture()
	require.NoError(t, store.Create(context.Background(), &models.Flag{
		StudentID: 1, SchoolID: 7, Amount: 500, Currency: models.CurrencyGHS, Status: models.FlagFlagged,
		CreatedBy: 11,
	}))

	_, err := svc.ClearFlag(context.Background(), Actor{UserID: 11, Role: models.RoleSchoolAdmin, SchoolID: 7}, 1)
	require.NoError(t, err)

	_, err = svc.ClearFlag(context.Background(), Actor{UserID: 11, Role: models.RoleSchoolAdmin, SchoolID: 7}, 1)
	assert.ErrorIs(t, err, apperrors.ErrFlagAlreadyCleared)
}

func TestClearFlag_NotFound(t *testing.T) {
	svc, _, _ := newFlagFixture()

	_, err := svc.ClearFlag(context.Background(), Actor{UserID: 1, Role: models.RoleSuperAdmin}, 42)
	assert.ErrorIs(t, err, apperrors.ErrFlagNotFound)
}
