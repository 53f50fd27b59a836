package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wareflow/wms_backend/internal/apperrors"
)

// ErrorResponse is the generic error body returned by all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondServiceError translates service-layer errors into HTTP responses.
// Typed errors carry their own message; sentinel wraps keep the wrapped text
// so the caller sees which rule was violated.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	var (
		transitionErr *apperrors.InvalidTransitionError
		validationErr *apperrors.ValidationRequiredError
		externalErr   *apperrors.ExternalServiceError
		appErr        *apperrors.AppError
	)

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, ErrorResponse{Error: transitionErr.Error()})
	case errors.Is(err, apperrors.ErrDuplicateItem):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: validationErr.Error()})
	case errors.As(err, &externalErr):
		logger.Error("ERP call failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "ERP system unavailable: " + externalErr.Error()})
	case errors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.As(err, &appErr):
		if appErr.Code >= http.StatusInternalServerError {
			logger.Error("Request failed", slog.String("error", err.Error()))
			c.JSON(appErr.Code, ErrorResponse{Error: "Internal server error"})
			return
		}
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
