package bulkimport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildSheet(t *testing.T, rows [][]interface{}) []byte {
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

func TestParse_ValidRows(t *testing.T) {
	data := buildSheet(t, [][]interface{}{
		{"first_name", "last_name", "date_of_birth", "gender", "parent_name", "parent_phone"},
		{"Ama", "Mensah", "2010-01-01", "F", "Kofi Mensah", "0244000000"},
		{"Yaw", "Owusu", "2011-06-15", "M", "", ""},
	})

	rows, rowErrs, err := NewReader().Parse(data)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].RowNumber)
	assert.Equal(t, "Ama", rows[0].FirstName)
	assert.Equal(t, "Mensah", rows[0].LastName)
	assert.Equal(t, "2010-01-01", rows[0].DateOfBirth)
	assert.Equal(t, "Kofi Mensah", rows[0].ParentName)
}

func TestParse_RowErrorsDoNotDropValidRows(t *testing.T) {
	data := buildSheet(t, [][]interface{}{
		{"first_name", "last_name", "date_of_birth"},
		{"", "Mensah", "2010-01-01"},
		{"Yaw", "Owusu", "15/06/2011"},
		{"Esi", "Asante", "2012-03-09"},
	})

	rows, rowErrs, err := NewReader().Parse(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Esi", rows[0].FirstName)

	require.Len(t, rowErrs, 2)
	assert.Equal(t, 2, rowErrs[0].RowNumber)
	assert.Equal(t, 3, rowErrs[1].RowNumber)
}

func TestParse_MissingRequiredColumn(t *testing.T) {
	data := buildSheet(t, [][]interface{}{
		{"first_name", "last_name"},
		{"Ama", "Mensah"},
	})

	_, _, err := NewReader().Parse(data)
	assert.ErrorContains(t, err, "date_of_birth")
}

func TestParse_EmptySheet(t *testing.T) {
	data := buildSheet(t, [][]interface{}{
		{"first_name", "last_name", "date_of_birth"},
	})

	_, _, err := NewReader().Parse(data)
	assert.ErrorIs(t, err, ErrInvalidFileFormat)
}
