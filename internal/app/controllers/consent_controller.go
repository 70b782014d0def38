package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/app/services"
	"github.com/osei/edushield/internal/middleware"
)

// ConsentController handles consent requests over flagged student records
type ConsentController struct {
	consentService *services.ConsentService
}

// NewConsentController creates a new ConsentController
func NewConsentController(consentService *services.ConsentService) *ConsentController {
	return &ConsentController{
		consentService: consentService,
	}
}

// RequestConsent opens a pending consent request
// @Summary Request consent
// @Description Opens a consent request to view a flagged student's obligation detail. Only one pending request per student and school.
// @Tags consents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateConsentRequest true "Consent request"
// @Success 201 {object} dto.APIResponse{data=models.Consent} "Request opened"
// @Failure 409 {object} dto.ErrorResponse "A pending request already exists"
// @Router /consents [post]
func (c *ConsentController) RequestConsent(ctx *gin.Context) {
	var req dto.CreateConsentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	consent, err := c.consentService.RequestConsent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      consent,
		Timestamp: time.Now(),
	})
}

// ApproveConsent grants a pending request
// @Summary Approve consent
// @Tags consents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consent ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Request not found or already processed"
// @Router /consents/{id}/approve [post]
func (c *ConsentController) ApproveConsent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.consentService.ApproveConsent(ctx, middleware.CurrentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Consent granted"},
		Timestamp: time.Now(),
	})
}

// RejectConsent rejects a pending request with a mandatory reason
// @Summary Reject consent
// @Tags consents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Consent ID"
// @Param request body dto.RejectConsentRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing reason"
// @Failure 404 {object} dto.ErrorResponse "Request not found or already processed"
// @Router /consents/{id}/reject [post]
func (c *ConsentController) RejectConsent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RejectConsentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.consentService.RejectConsent(ctx, middleware.CurrentActor(ctx), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Consent rejected"},
		Timestamp: time.Now(),
	})
}

// GetConsents lists consent requests visible to the caller
// @Summary List consents
// @Tags consents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Consent}
// @Router /consents [get]
func (c *ConsentController) GetConsents(ctx *gin.Context) {
	consents, err := c.consentService.GetConsents(ctx, middleware.ScopedSchoolID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      consents,
		Timestamp: time.Now(),
	})
}
