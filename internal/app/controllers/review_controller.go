package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/app/services"
	"github.com/osei/edushield/internal/middleware"
)

// ReviewController handles the duplicate-review queue
type ReviewController struct {
	reviewService *services.ReviewService
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService *services.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

// GetReviews lists duplicate reviews
// @Summary List duplicate reviews
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param pending query bool false "Only undecided reviews"
// @Success 200 {object} dto.APIResponse{data=[]models.DuplicateReview}
// @Router /reviews [get]
func (c *ReviewController) GetReviews(ctx *gin.Context) {
	pendingOnly := ctx.Query("pending") == "true"

	reviews, err := c.reviewService.GetReviews(ctx, pendingOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      reviews,
		Timestamp: time.Now(),
	})
}

// GetReviewByID retrieves a duplicate review by ID
// @Summary Get review by ID
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 200 {object} dto.APIResponse{data=models.DuplicateReview}
// @Failure 404 {object} dto.ErrorResponse "Review not found"
// @Router /reviews/{id} [get]
func (c *ReviewController) GetReviewByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	review, err := c.reviewService.GetReviewByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      review,
		Timestamp: time.Now(),
	})
}

// ResolveReview decides a pending duplicate review
// @Summary Resolve a duplicate review
// @Description Decides a pending review. MERGED keeps the existing student; DECLARED_DISTINCT creates a new student from the stored submission.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param request body dto.ResolveReviewRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=models.DuplicateReview}
// @Failure 409 {object} dto.ErrorResponse "Review already decided"
// @Router /reviews/{id}/resolve [post]
func (c *ReviewController) ResolveReview(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ResolveReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	review, err := c.reviewService.ResolveReview(ctx, middleware.CurrentActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      review,
		Timestamp: time.Now(),
	})
}
