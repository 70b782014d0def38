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

type studentFixture struct {
	svc      *StudentService
	students *fakeStudentStore
	parents  *fakeParentStore
	reviews  *fakeReviewCreator
}

func newStudentFixture() *studentFixture {
	students := &fakeStudentStore{}
	parents := &fakeParentStore{}
	reviews := &fakeReviewCreator{}
	schools := &fakeSchoolStore{schools: map[int64]*models.School{
		3: {ID: 3, Name: "Accra Basic School"},
		4: {ID: 4, Name: "Kumasi Basic School"},
	}}
	return &studentFixture{
		svc:      NewStudentService(students, parents, reviews, schools, nil),
		students: students,
		parents:  parents,
		reviews:  reviews,
	}
}

func TestCreateStudent_AssignsIdentifier(t *testing.T) {
	f := newStudentFixture()

	student, conflict, err := f.svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FirstName:   "Ama",
		LastName:    "Mensah",
		DateOfBirth: "2010-01-01",
		Gender:      "F",
		SchoolID:    3,
	}, nil)
	require.NoError(t, err)
	assert.Nil(t, conflict)

	assert.Equal(t, "STD-1", student.Identifier)
	assert.Equal(t, "Ama", student.FirstName)
}

func TestCreateStudent_DuplicateRoutedToReview(t *testing.T) {
	f := newStudentFixture()

	first, _, err := f.svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FirstName:   "Ama",
		LastName:    "Mensah",
		DateOfBirth: "2010-01-01",
		SchoolID:    3,
	}, nil)
	require.NoError(t, err)

	// Same identity under different casing and stray whitespace
	student, conflict, err := f.svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FirstName:   "  AMA ",
		LastName:    "mensah",
		DateOfBirth: "2010-01-01",
		SchoolID:    4,
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateStudent)
	assert.Nil(t, student)
	require.NotNil(t, conflict)
	assert.Equal(t, first.ID, conflict.ExistingStudentID)

	// No second student row; the submission lives on as the review snapshot
	all, err := f.students.GetAll(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.Len(t, f.reviews.reviews, 1)
	review := f.reviews.reviews[0]
	assert.Equal(t, conflict.ReviewID, review.ID)
	assert.Equal(t, first.ID, review.ExistingStudentID)
	assert.Equal(t, "AMA", review.Submission.FirstName)
	assert.Equal(t, int64(4), review.Submission.SchoolID)
}

func TestCreateStudent_InvalidDate(t *testing.T) {
	f := newStudentFixture()

	_, _, err := f.svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FirstName:   "Ama",
		LastName:    "Mensah",
		DateOfBirth: "01/01/2010",
		SchoolID:    3,
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateStudent_UnknownSchool(t *testing.T) {
	f := newStudentFixture()

	_, _, err := f.svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FirstName:   "Ama",
		LastName:    "Mensah",
		DateOfBirth: "2010-01-01",
		SchoolID:    99,
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrSchoolNotFound)
}

func TestCreateStudent_InlineParent(t *testing.T) {
	f := newStudentFixture()

	_, _, err := f.svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FirstName:   "Ama",
		LastName:    "Mensah",
		DateOfBirth: "2010-01-01",
		SchoolID:    3,
		ParentName:  "Kofi Mensah",
		ParentPhone: "0244000000",
	}, nil)
	require.NoError(t, err)

	require.Len(t, f.parents.parents, 1)
	assert.Equal(t, "Kofi Mensah", f.parents.parents[0].FullName)
}

func TestCreateStudent_InlineParentRequiresPhone(t *testing.T) {
	f := newStudentFixture()

	_, _, err := f.svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FirstName:   "Ama",
		LastName:    "Mensah",
		DateOfBirth: "2010-01-01",
		SchoolID:    3,
		ParentName:  "Kofi Mensah",
	}, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, f.parents.parents)
}

func TestTransferStudent_KeepsIdentifier(t *testing.T) {
	f := newStudentFixture()

	student, _, err := f.svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FirstName:   "Ama",
		LastName:    "Mensah",
		DateOfBirth: "2010-01-01",
		SchoolID:    3,
	}, nil)
	require.NoError(t, err)
	identifier := student.Identifier

	require.NoError(t, f.svc.TransferStudent(context.Background(), student.ID, &dto.UpdateStudentSchoolRequest{SchoolID: 4}))

	moved, err := f.svc.GetStudentByID(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), moved.SchoolID)
	assert.Equal(t, identifier, moved.Identifier)

	err = f.svc.TransferStudent(context.Background(), student.ID, &dto.UpdateStudentSchoolRequest{SchoolID: 99})
	assert.ErrorIs(t, err, apperrors.ErrSchoolNotFound)
}

func TestAssignParent_UnknownParent(t *testing.T) {
	f := newStudentFixture()

	student, _, err := f.svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FirstName:   "Ama",
		LastName:    "Mensah",
		DateOfBirth: "2010-01-01",
		SchoolID:    3,
	}, nil)
	require.NoError(t, err)

	err = f.svc.AssignParent(context.Background(), student.ID, &dto.AssignParentRequest{ParentID: 42})
	assert.ErrorIs(t, err, apperrors.ErrParentNotFound)
}

func TestAssignParent_UnknownStudent(t *testing.T) {
	f := newStudentFixture()
	require.NoError(t, f.parents.Create(context.Background(), &models.Parent{FullName: "Kofi Mensah", Phone: "0244000000"}))

	err := f.svc.AssignParent(context.Background(), 99, &dto.AssignParentRequest{ParentID: 1})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
