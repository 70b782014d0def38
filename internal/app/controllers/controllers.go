package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/app/services"
)

// Controllers holds all the controller instances
type Controllers struct {
	AuthController         *AuthController
	SchoolController       *SchoolController
	ParentController       *ParentController
	StudentController      *StudentController
	TeacherController      *TeacherController
	FlagController         *FlagController
	ConsentController      *ConsentController
	DisputeController      *DisputeController
	ReviewController       *ReviewController
	VerificationController *VerificationController
}

// NewControllers wires all controllers onto the services
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		AuthController:         NewAuthController(svcs.AuthService),
		SchoolController:       NewSchoolController(svcs.SchoolService),
		ParentController:       NewParentController(svcs.ParentService),
		StudentController:      NewStudentController(svcs.StudentService, svcs.ImportService),
		TeacherController:      NewTeacherController(svcs.TeacherService),
		FlagController:         NewFlagController(svcs.FlagService),
		ConsentController:      NewConsentController(svcs.ConsentService),
		DisputeController:      NewDisputeController(svcs.DisputeService),
		ReviewController:       NewReviewController(svcs.ReviewService),
		VerificationController: NewVerificationController(svcs.VerificationService),
	}
}

// parseIDParam reads a positive numeric path parameter, writing the 400
// response itself on failure
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
