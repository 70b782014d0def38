package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/app/services"
	"github.com/osei/edushield/internal/middleware"
	"github.com/osei/edushield/internal/pkg/apperrors"
)

// DisputeController handles record contestations
type DisputeController struct {
	disputeService *services.DisputeService
}

// NewDisputeController creates a new DisputeController
func NewDisputeController(disputeService *services.DisputeService) *DisputeController {
	return &DisputeController{
		disputeService: disputeService,
	}
}

// RaiseDispute opens a dispute for a student
// @Summary Raise a dispute
// @Description Opens a dispute. A student may carry at most one active dispute; a second attempt returns 409 with the existing dispute id.
// @Tags disputes
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param studentId formData int true "Student ID"
// @Param reason formData string true "Dispute reason"
// @Param proof formData file false "Proof document"
// @Success 201 {object} dto.APIResponse{data=models.Dispute} "Dispute opened"
// @Failure 409 {object} dto.ErrorResponse "Active dispute exists"
// @Router /disputes [post]
func (c *DisputeController) RaiseDispute(ctx *gin.Context) {
	var req dto.CreateDisputeRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	proof, _ := ctx.FormFile("proof")

	dispute, conflict, err := c.disputeService.RaiseDispute(ctx, &req, proof)
	if err != nil {
		if errors.Is(err, apperrors.ErrActiveDisputeExists) && conflict != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeConflict, "Student already has an active dispute")
			errorDetail = errorDetail.WithDetails(conflict)
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(errorDetail))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dispute,
		Timestamp: time.Now(),
	})
}

// GetDisputeByID retrieves a dispute by ID
// @Summary Get dispute by ID
// @Tags disputes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dispute ID"
// @Success 200 {object} dto.APIResponse{data=models.Dispute}
// @Failure 404 {object} dto.ErrorResponse "Dispute not found"
// @Router /disputes/{id} [get]
func (c *DisputeController) GetDisputeByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	dispute, err := c.disputeService.GetDisputeByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dispute,
		Timestamp: time.Now(),
	})
}

// GetDisputes lists disputes, optionally filtered by student
// @Summary List disputes
// @Tags disputes
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Filter by student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Dispute}
// @Router /disputes [get]
func (c *DisputeController) GetDisputes(ctx *gin.Context) {
	var studentID int64
	if raw := ctx.Query("studentId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid studentId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		studentID = parsed
	}

	disputes, err := c.disputeService.GetDisputes(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      disputes,
		Timestamp: time.Now(),
	})
}

// StartReview moves an open dispute under review
// @Summary Start dispute review
// @Tags disputes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dispute ID"
// @Success 200 {object} dto.APIResponse{data=models.Dispute}
// @Failure 409 {object} dto.ErrorResponse "Dispute is not open"
// @Router /disputes/{id}/review [post]
func (c *DisputeController) StartReview(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	dispute, err := c.disputeService.StartReview(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dispute,
		Timestamp: time.Now(),
	})
}

// ResolveDispute closes a dispute under review
// @Summary Resolve a dispute
// @Tags disputes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dispute ID"
// @Param request body dto.ResolveDisputeRequest true "Resolution"
// @Success 200 {object} dto.APIResponse{data=models.Dispute}
// @Failure 409 {object} dto.ErrorResponse "Dispute is not under review"
// @Router /disputes/{id}/resolve [post]
func (c *DisputeController) ResolveDispute(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ResolveDisputeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	dispute, err := c.disputeService.ResolveDispute(ctx, middleware.CurrentActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dispute,
		Timestamp: time.Now(),
	})
}
