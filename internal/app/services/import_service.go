package services

import (
	"context"
	"errors"

	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/pkg/apperrors"
	"github.com/osei/edushield/internal/pkg/bulkimport"
	"github.com/osei/edushield/internal/pkg/logger"
)

// ImportService handles bulk student imports from spreadsheets. Every row
// goes through the same duplicate gate as a single-form submission.
type ImportService struct {
	students *StudentService
	reader   *bulkimport.Reader
}

// NewImportService creates a new import service instance
func NewImportService(students *StudentService) *ImportService {
	return &ImportService{
		students: students,
		reader:   bulkimport.NewReader(),
	}
}

// ImportStudents parses the spreadsheet and creates students row by row.
// A bad row never aborts the run: parse failures land in Errors, name+DOB
// collisions land in Duplicates with their review ids, and the rest are
// created normally.
func (s *ImportService) ImportStudents(ctx context.Context, schoolID int64, data []byte) (*dto.ImportResult, error) {
	rows, rowErrors, err := s.reader.Parse(data)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	result := &dto.ImportResult{}
	for _, re := range rowErrors {
		result.Errors = append(result.Errors, dto.ImportRowError{
			RowNumber: re.RowNumber,
			Message:   re.Message,
		})
	}

	for _, row := range rows {
		req := &dto.CreateStudentRequest{
			FirstName:   row.FirstName,
			LastName:    row.LastName,
			DateOfBirth: row.DateOfBirth,
			Gender:      row.Gender,
			SchoolID:    schoolID,
			LegacyClass: row.LegacyClass,
			ParentName:  row.ParentName,
			ParentPhone: row.ParentPhone,
		}

		student, conflict, err := s.students.CreateStudent(ctx, req, nil)
		switch {
		case errors.Is(err, apperrors.ErrDuplicateStudent):
			result.Duplicates = append(result.Duplicates, dto.ImportDuplicate{
				RowNumber: row.RowNumber,
				ReviewID:  conflict.ReviewID,
			})
		case err != nil:
			result.Errors = append(result.Errors, dto.ImportRowError{
				RowNumber: row.RowNumber,
				Message:   err.Error(),
			})
		default:
			result.Created = append(result.Created, dto.ImportedStudent{
				RowNumber:  row.RowNumber,
				StudentID:  student.ID,
				Identifier: student.Identifier,
			})
		}
	}

	logger.Info().
		Int64("schoolId", schoolID).
		Int("created", len(result.Created)).
		Int("duplicates", len(result.Duplicates)).
		Int("errors", len(result.Errors)).
		Msg("Student import completed")

	return result, nil
}
