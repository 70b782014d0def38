package controllers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/app/services"
	"github.com/osei/edushield/internal/middleware"
	"github.com/osei/edushield/internal/pkg/apperrors"
)

// StudentController handles student registry operations
type StudentController struct {
	studentService *services.StudentService
	importService  *services.ImportService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, importService *services.ImportService) *StudentController {
	return &StudentController{
		studentService: studentService,
		importService:  importService,
	}
}

// CreateStudent registers a student
// @Summary Create a student
// @Description Registers a student. A name+DOB collision files a duplicate review and returns 409 with the review id.
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param firstName formData string true "First name"
// @Param lastName formData string true "Last name"
// @Param dateOfBirth formData string true "Date of birth (YYYY-MM-DD)"
// @Param schoolId formData int true "School ID"
// @Param photo formData file false "Student photo"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student created"
// @Failure 409 {object} dto.ErrorResponse "Duplicate routed to review"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	photo, _ := ctx.FormFile("photo")

	student, conflict, err := c.studentService.CreateStudent(ctx, &req, photo)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateStudent) && conflict != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeDuplicateStudent, "A matching student already exists; routed to duplicate review")
			errorDetail = errorDetail.WithDetails(conflict)
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(errorDetail))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// GetStudentByID retrieves a student with the current guardian
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// GetAllStudents lists students visible to the caller
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Student}
// @Router /students [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.studentService.GetAllStudents(ctx, middleware.ScopedSchoolID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      students,
		Timestamp: time.Now(),
	})
}

// TransferStudent moves a student to another school
// @Summary Transfer a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentSchoolRequest true "Target school"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Student or school not found"
// @Router /students/{id}/school [put]
func (c *StudentController) TransferStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentSchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.studentService.TransferStudent(ctx, id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Student transferred"},
		Timestamp: time.Now(),
	})
}

// AssignParent replaces the student's current guardian
// @Summary Assign guardian
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.AssignParentRequest true "Guardian"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Student or parent not found"
// @Router /students/{id}/parent [put]
func (c *StudentController) AssignParent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignParentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.studentService.AssignParent(ctx, id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Guardian assigned"},
		Timestamp: time.Now(),
	})
}

// ImportStudents bulk-creates students from a spreadsheet
// @Summary Import students
// @Description Imports students from an XLSX file. Each row passes through the duplicate gate; the result lists created rows, rows routed to review and rejected rows.
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "XLSX file"
// @Param schoolId formData int true "Target school ID"
// @Success 200 {object} dto.APIResponse{data=dto.ImportResult}
// @Failure 400 {object} dto.ErrorResponse "Unreadable spreadsheet"
// @Router /students/import [post]
func (c *StudentController) ImportStudents(ctx *gin.Context) {
	var form struct {
		SchoolID int64 `form:"schoolId" binding:"required,min=1"`
	}
	if err := ctx.ShouldBind(&form); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A spreadsheet file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result, err := c.importService.ImportStudents(ctx, form.SchoolID, data)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}
