package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/app/services"
	"github.com/osei/edushield/internal/middleware"
)

// FlagController handles the financial-obligation flag ledger
type FlagController struct {
	flagService *services.FlagService
}

// NewFlagController creates a new FlagController
func NewFlagController(flagService *services.FlagService) *FlagController {
	return &FlagController{
		flagService: flagService,
	}
}

// CreateFlag records a flag against a student
// @Summary Create a flag
// @Tags flags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFlagRequest true "Flag information"
// @Success 201 {object} dto.APIResponse{data=models.Flag} "Flag recorded"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /flags [post]
func (c *FlagController) CreateFlag(ctx *gin.Context) {
	var req dto.CreateFlagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	flag, err := c.flagService.CreateFlag(ctx, middleware.CurrentActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      flag,
		Timestamp: time.Now(),
	})
}

// GetFlagByID retrieves a flag by ID
// @Summary Get flag by ID
// @Tags flags
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flag ID"
// @Success 200 {object} dto.APIResponse{data=models.Flag}
// @Failure 404 {object} dto.ErrorResponse "Flag not found"
// @Router /flags/{id} [get]
func (c *FlagController) GetFlagByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	flag, err := c.flagService.GetFlagByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      flag,
		Timestamp: time.Now(),
	})
}

// GetAllFlags lists flags visible to the caller
// @Summary List flags
// @Tags flags
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Flag}
// @Router /flags [get]
func (c *FlagController) GetAllFlags(ctx *gin.Context) {
	flags, err := c.flagService.GetAllFlags(ctx, middleware.ScopedSchoolID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      flags,
		Timestamp: time.Now(),
	})
}

// ClearFlag settles a flag
// @Summary Clear a flag
// @Description Settles a flag. Only the reporting school or a SUPER_ADMIN may clear; a second clear attempt conflicts.
// @Tags flags
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flag ID"
// @Success 200 {object} dto.APIResponse{data=models.Flag}
// @Failure 403 {object} dto.ErrorResponse "Not the reporting school"
// @Failure 409 {object} dto.ErrorResponse "Flag already cleared"
// @Router /flags/{id}/clear [post]
func (c *FlagController) ClearFlag(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	flag, err := c.flagService.ClearFlag(ctx, middleware.CurrentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      flag,
		Timestamp: time.Now(),
	})
}

// GetAuditLog returns the append-only flag history
// @Summary Flag audit log
// @Tags flags
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.FlagAuditLog}
// @Router /flags/audit [get]
func (c *FlagController) GetAuditLog(ctx *gin.Context) {
	log, err := c.flagService.GetAuditLog(ctx, middleware.ScopedSchoolID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      log,
		Timestamp: time.Now(),
	})
}

// GetTotals returns the dashboard aggregation
// @Summary Flag totals
// @Description Monthly totals grouped by currency and status for the caller's school
// @Tags flags
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.FlagTotals}
// @Router /flags/totals [get]
func (c *FlagController) GetTotals(ctx *gin.Context) {
	totals, err := c.flagService.GetTotals(ctx, middleware.ScopedSchoolID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      totals,
		Timestamp: time.Now(),
	})
}
