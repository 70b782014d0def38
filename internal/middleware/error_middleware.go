package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/pkg/apperrors"
	"github.com/osei/edushield/internal/pkg/auth"
	"github.com/osei/edushield/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the standard error envelope
func HandleAPIError(c *gin.Context, err error) {
	detail, status := classify(err)

	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		if custom.Message != "" {
			detail.Message = custom.Message
		}
		if custom.Details != nil {
			detail = detail.WithDetails(custom.Details)
		}
	}

	if status == 500 {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
	}

	c.JSON(status, dto.APIResponse{Error: detail})
}

func classify(err error) (*dto.ErrorDetail, int) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"), 401
	case errors.Is(err, auth.ErrExpiredToken):
		return dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"), 401
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, apperrors.ErrRefreshTokenInvalid):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"), 401
	case errors.Is(err, apperrors.ErrAccountInactive):
		return dto.NewErrorDetail(dto.ErrorCodeAccountInactive, "Account is not active"), 403
	case errors.Is(err, apperrors.ErrTermsNotAccepted):
		return dto.NewErrorDetail(dto.ErrorCodeForbidden, "Usage terms not accepted"), 403
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"), 403
	case errors.Is(err, apperrors.ErrNotFlagCreator):
		return dto.NewErrorDetail(dto.ErrorCodeForbidden, "Only the flag creator may clear it"), 403
	case errors.Is(err, apperrors.ErrInvalidActivation):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid or used activation token"), 400

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return dto.NewErrorDetail(dto.ErrorCodeConflict, "Email already exists"), 409
	case errors.Is(err, apperrors.ErrDuplicateStudent):
		return dto.NewErrorDetail(dto.ErrorCodeDuplicateStudent, "A matching student already exists; routed to duplicate review"), 409
	case errors.Is(err, apperrors.ErrFlagAlreadyCleared):
		return dto.NewErrorDetail(dto.ErrorCodeConflict, "Flag already cleared"), 409
	case errors.Is(err, apperrors.ErrConsentAlreadyPending):
		return dto.NewErrorDetail(dto.ErrorCodeConflict, "A pending consent request already exists"), 409
	case errors.Is(err, apperrors.ErrActiveDisputeExists):
		return dto.NewErrorDetail(dto.ErrorCodeConflict, "Student already has an active dispute"), 409
	case errors.Is(err, apperrors.ErrReviewAlreadyDecided):
		return dto.NewErrorDetail(dto.ErrorCodeConflict, "Review already decided"), 409
	case errors.Is(err, apperrors.ErrIllegalDisputeTransition):
		return dto.NewErrorDetail(dto.ErrorCodeConflict, "Dispute is not in a state that allows this transition"), 409
	case errors.Is(err, apperrors.ErrConflict):
		return dto.NewErrorDetail(dto.ErrorCodeConflict, "Conflict"), 409

	case errors.Is(err, apperrors.ErrUserNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "User not found"), 404
	case errors.Is(err, apperrors.ErrSchoolNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "School not found"), 404
	case errors.Is(err, apperrors.ErrStudentNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found"), 404
	case errors.Is(err, apperrors.ErrParentNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Parent not found"), 404
	case errors.Is(err, apperrors.ErrTeacherNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Teacher not found"), 404
	case errors.Is(err, apperrors.ErrFlagNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Flag not found"), 404
	case errors.Is(err, apperrors.ErrConsentNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Consent request not found or already processed"), 404
	case errors.Is(err, apperrors.ErrDisputeNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Dispute not found"), 404
	case errors.Is(err, apperrors.ErrReviewNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Review not found"), 404
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found"), 404

	case errors.Is(err, apperrors.ErrValidationFailed):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed"), 400
	case errors.Is(err, apperrors.ErrBadRequest):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Bad request"), 400

	default:
		return dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"), 500
	}
}

// HandleValidationError maps gin binding failures to the validation envelope,
// with one message per failing field when the binding layer reports them
func HandleValidationError(c *gin.Context, err error) {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		messages := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			messages = append(messages, formatFieldError(fe))
		}
		detail = detail.WithDetails(messages)
	} else {
		detail = detail.WithDetails(err.Error())
	}

	c.JSON(400, dto.APIResponse{Error: detail})
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
