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

func TestVerifyStudent_EmptyQuery(t *testing.T) {
	svc := NewVerificationService(&fakeVerificationStore{})

	_, err := svc.VerifyStudent(context.Background(), "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestVerifyStudent_NotFound(t *testing.T) {
	svc := NewVerificationService(&fakeVerificationStore{})

	resp, err := svc.VerifyStudent(context.Background(), "Ama Mensah")
	require.NoError(t, err)
	assert.Equal(t, dto.VerificationNotFound, resp.Status)
	assert.Empty(t, resp.Students)
}

func TestVerifyStudent_ClearedHistoryReadsClear(t *testing.T) {
	svc := NewVerificationService(&fakeVerificationStore{
		students: []*models.Student{{ID: 1, FirstName: "Ama", LastName: "Mensah"}},
		flags: []*models.Flag{
			{ID: 1, StudentID: 1, Status: models.FlagCleared, Amount: 500},
		},
	})

	resp, err := svc.VerifyStudent(context.Background(), "Ama Mensah")
	require.NoError(t, err)
	assert.Equal(t, dto.VerificationClear, resp.Status)

	// Settled debts are history, not lookup payload
	assert.Empty(t, resp.Flags)
}

func TestVerifyStudent_AnyActiveFlagReadsFlagged(t *testing.T) {
	svc := NewVerificationService(&fakeVerificationStore{
		students: []*models.Student{{ID: 1, FirstName: "Ama", LastName: "Mensah"}},
		flags: []*models.Flag{
			{ID: 1, StudentID: 1, Status: models.FlagCleared, Amount: 500},
			{ID: 2, StudentID: 1, Status: models.FlagFlagged, Amount: 200},
		},
		parents: []*models.Parent{{ID: 9, FullName: "Kofi Mensah", Phone: "0244000000"}},
	})

	resp, err := svc.VerifyStudent(context.Background(), "0244000000")
	require.NoError(t, err)
	assert.Equal(t, dto.VerificationFlagged, resp.Status)

	// Only the outstanding flag is returned
	require.Len(t, resp.Flags, 1)
	assert.Equal(t, models.FlagFlagged, resp.Flags[0].Status)
	assert.Len(t, resp.Parents, 1)
}

func TestVerifyTeacher_SummaryCounts(t *testing.T) {
	svc := NewVerificationService(&fakeVerificationStore{
		teachers: []*models.Teacher{
			{ID: 1, FirstName: "Yaw", LastName: "Owusu", Status: models.TeacherEngaged},
			{ID: 2, FirstName: "Yaw", LastName: "Owusu", Status: models.TeacherFlagged},
			{ID: 3, FirstName: "Yaw", LastName: "Owusu", Status: models.TeacherCleared},
		},
	})

	resp, err := svc.VerifyTeacher(context.Background(), "Yaw Owusu")
	require.NoError(t, err)
	assert.Equal(t, dto.VerificationFlagged, resp.Status)
	assert.Equal(t, 1, resp.Summary.Engaged)
	assert.Equal(t, 1, resp.Summary.Flagged)
	assert.Equal(t, 1, resp.Summary.Cleared)
}

func TestVerifyTeacher_NoFlaggedMatches(t *testing.T) {
	svc := NewVerificationService(&fakeVerificationStore{
		teachers: []*models.Teacher{
			{ID: 1, FirstName: "Yaw", LastName: "Owusu", Status: models.TeacherEngaged},
		},
	})

	resp, err := svc.VerifyTeacher(context.Background(), "Yaw")
	require.NoError(t, err)
	assert.Equal(t, dto.VerificationEngaged, resp.Status)
}

func TestVerifyTeacher_NotFound(t *testing.T) {
	svc := NewVerificationService(&fakeVerificationStore{})

	resp, err := svc.VerifyTeacher(context.Background(), "Yaw")
	require.NoError(t, err)
	assert.Equal(t, dto.VerificationNotFound, resp.Status)
}
