package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/pkg/apperrors"
)

func buildImportSheet(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestImportStudents_PartitionsOutcomes(t *testing.T) {
	f := newStudentFixture()
	svc := NewImportService(f.svc)

	// Pre-existing student that the second row collides with
	_, _, err := f.svc.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		FirstName:   "Ama",
		LastName:    "Mensah",
		DateOfBirth: "2010-01-01",
		SchoolID:    3,
	}, nil)
	require.NoError(t, err)

	data := buildImportSheet(t, [][]interface{}{
		{"first_name", "last_name", "date_of_birth", "gender", "parent_name", "parent_phone"},
		{"Yaw", "Owusu", "2011-06-15", "M", "Akos Owusu", "0244111111"},
		{"ama", "MENSAH", "2010-01-01", "F", "", ""},
		{"", "Asante", "2012-03-09", "F", "", ""},
	})

	result, err := svc.ImportStudents(context.Background(), 3, data)
	require.NoError(t, err)

	require.Len(t, result.Created, 1)
	assert.Equal(t, 2, result.Created[0].RowNumber)
	assert.NotEmpty(t, result.Created[0].Identifier)

	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, 3, result.Duplicates[0].RowNumber)
	assert.NotZero(t, result.Duplicates[0].ReviewID)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, 4, result.Errors[0].RowNumber)

	// Only the clean row produced a student
	all, err := f.students.GetAll(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestImportStudents_UnreadableFile(t *testing.T) {
	f := newStudentFixture()
	svc := NewImportService(f.svc)

	_, err := svc.ImportStudents(context.Background(), 3, []byte("not a spreadsheet"))
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
