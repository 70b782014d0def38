package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/app/services"
	"github.com/osei/edushield/internal/middleware"
)

// VerificationController handles pre-enrollment and pre-hiring lookups
type VerificationController struct {
	verificationService *services.VerificationService
}

// NewVerificationController creates a new VerificationController
func NewVerificationController(verificationService *services.VerificationService) *VerificationController {
	return &VerificationController{
		verificationService: verificationService,
	}
}

// VerifyStudent runs the student-first lookup
// @Summary Verify a student
// @Description Searches by student name, parent name, parent phone or card number. Returns matched students, their flags and linked parents with an overall status.
// @Tags verification
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Success 200 {object} dto.APIResponse{data=dto.StudentVerificationResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing query"
// @Router /verify/student [get]
func (c *VerificationController) VerifyStudent(ctx *gin.Context) {
	result, err := c.verificationService.VerifyStudent(ctx, ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// VerifyTeacher runs the teacher-first lookup
// @Summary Verify a teacher
// @Description Searches by teacher name or phone. Returns matched teachers with evidence and per-status counts.
// @Tags verification
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Success 200 {object} dto.APIResponse{data=dto.TeacherVerificationResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing query"
// @Router /verify/teacher [get]
func (c *VerificationController) VerifyTeacher(ctx *gin.Context) {
	result, err := c.verificationService.VerifyTeacher(ctx, ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}
