package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fxops/currency_management_app/internal/apperrors"
	"github.com/fxops/currency_management_app/internal/dto"
	"github.com/fxops/currency_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps a service error onto the structured error body. Every
// classified failure is recovered here; anything unclassified becomes a 500
// with no partial-state disclosure.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if appErr, ok := apperrors.AsAppError(err); ok {
		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed", slog.String("code", appErr.Code), slog.String("error", err.Error()))
		} else {
			logger.Warn("request rejected", slog.String("code", appErr.Code), slog.String("error", appErr.Message))
		}
		c.JSON(appErr.Status, dto.NewErrorResponse(appErr.Code, appErr.Message, c.Request.URL.Path))
		return
	}

	logger.Error("request failed", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(apperrors.CodeInternal, "An unexpected error occurred", c.Request.URL.Path))
}

// respondBindingError maps a request binding failure onto a VALIDATION_ERROR
// body, aggregating every field message.
func respondBindingError(c *gin.Context, err error) {
	message := "Validation failed for request parameters"

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fieldMessages := make([]string, len(validationErrs))
		for i, fieldErr := range validationErrs {
			fieldMessages[i] = fieldErr.Field() + " failed on the '" + fieldErr.Tag() + "' rule"
		}
		message += ": " + strings.Join(fieldMessages, ", ")
	} else {
		message += ": " + err.Error()
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("request binding failed", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest,
		dto.NewErrorResponse(apperrors.CodeValidationError, message, c.Request.URL.Path))
}
