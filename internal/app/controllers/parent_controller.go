package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/app/services"
	"github.com/osei/edushield/internal/middleware"
)

// ParentController handles parent/guardian operations
type ParentController struct {
	parentService *services.ParentService
}

// NewParentController creates a new ParentController
func NewParentController(parentService *services.ParentService) *ParentController {
	return &ParentController{
		parentService: parentService,
	}
}

// CreateParent creates a parent record
// @Summary Create a parent
// @Description Creates a parent record. A known card number adds a warning to the response but never blocks the write.
// @Tags parents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateParentRequest true "Parent information"
// @Success 201 {object} dto.APIResponse{data=models.Parent} "Parent created"
// @Router /parents [post]
func (c *ParentController) CreateParent(ctx *gin.Context) {
	var req dto.CreateParentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	parent, duplicateCard, err := c.parentService.CreateParent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.APIResponse{
		Data:      parent,
		Timestamp: time.Now(),
	}
	if duplicateCard {
		response.Data = gin.H{
			"parent":  parent,
			"warning": "card number already registered to another parent",
		}
	}

	ctx.JSON(http.StatusCreated, response)
}

// GetParentByID retrieves a parent by ID
// @Summary Get parent by ID
// @Tags parents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Parent ID"
// @Success 200 {object} dto.APIResponse{data=models.Parent}
// @Failure 404 {object} dto.ErrorResponse "Parent not found"
// @Router /parents/{id} [get]
func (c *ParentController) GetParentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	parent, err := c.parentService.GetParentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      parent,
		Timestamp: time.Now(),
	})
}

// GetAllParents lists all parents
// @Summary List parents
// @Tags parents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Parent}
// @Router /parents [get]
func (c *ParentController) GetAllParents(ctx *gin.Context) {
	parents, err := c.parentService.GetAllParents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      parents,
		Timestamp: time.Now(),
	})
}
