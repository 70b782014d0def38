package bulkimport

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var (
	ErrInvalidFileFormat = errors.New("invalid or empty spreadsheet")
)

// StudentRow is one parsed row of a student import spreadsheet.
type StudentRow struct {
	RowNumber   int
	FirstName   string
	LastName    string
	DateOfBirth string // YYYY-MM-DD
	Gender      string
	LegacyClass string
	ParentName  string
	ParentPhone string
}

// RowError records a row that failed parsing, keyed by its spreadsheet row number.
type RowError struct {
	RowNumber int    `json:"row"`
	Message   string `json:"message"`
}

var requiredColumns = []string{"first_name", "last_name", "date_of_birth"}

// Reader parses student import spreadsheets.
type Reader struct{}

// NewReader creates a spreadsheet reader
func NewReader() *Reader {
	return &Reader{}
}

// Parse reads an XLSX file into student rows. Rows that fail validation are
// reported in the returned error list; valid rows are still returned.
func (r *Reader) Parse(data []byte) ([]StudentRow, []RowError, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrInvalidFileFormat
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) < 2 { // Header plus at least one data row
		return nil, nil, ErrInvalidFileFormat
	}

	// Map header names to column indices
	columnMap := make(map[string]int)
	for i, col := range rows[0] {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range requiredColumns {
		if _, exists := columnMap[col]; !exists {
			return nil, nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var parsed []StudentRow
	var rowErrors []RowError

	for i, row := range rows[1:] {
		rowNumber := i + 2 // 1-based, after the header

		sr := StudentRow{
			RowNumber:   rowNumber,
			FirstName:   cell(row, columnMap, "first_name"),
			LastName:    cell(row, columnMap, "last_name"),
			DateOfBirth: cell(row, columnMap, "date_of_birth"),
			Gender:      cell(row, columnMap, "gender"),
			LegacyClass: cell(row, columnMap, "legacy_class"),
			ParentName:  cell(row, columnMap, "parent_name"),
			ParentPhone: cell(row, columnMap, "parent_phone"),
		}

		if sr.FirstName == "" || sr.LastName == "" {
			rowErrors = append(rowErrors, RowError{RowNumber: rowNumber, Message: "first_name and last_name are required"})
			continue
		}

		if _, err := time.Parse("2006-01-02", sr.DateOfBirth); err != nil {
			rowErrors = append(rowErrors, RowError{RowNumber: rowNumber, Message: "date_of_birth must be YYYY-MM-DD"})
			continue
		}

		parsed = append(parsed, sr)
	}

	return parsed, rowErrors, nil
}

func cell(row []string, columnMap map[string]int, name string) string {
	idx, ok := columnMap[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
