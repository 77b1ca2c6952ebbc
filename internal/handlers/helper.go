package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Criterio-inc/mognadsmataren/internal/services"
	"github.com/gin-gonic/gin"
)

func ParseStringParam(c *gin.Context, param string) string {
	value := strings.TrimSpace(c.Param(param))
	if value == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "value cannot be empty",
		})
		return ""
	}
	return value
}

func parseIDParam(c *gin.Context, param string) uint {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: err.Error(),
		})
		return 0
	}
	return uint(id)
}

func parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	valueStr := c.Query(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// handleServiceError maps service errors onto HTTP status codes.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	// Handle custom error types first
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		h.LogWarn(c, "Business rule violated", "rule", businessRuleError.Rule)
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: businessRuleError.Message,
			Details: map[string]interface{}{
				"rule":    businessRuleError.Rule,
				"context": businessRuleError.Context,
			},
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Access denied",
			Details: map[string]interface{}{
				"resource": permissionError.Resource,
				"action":   permissionError.Action,
				"reason":   permissionError.Reason,
			},
		})
		return
	}

	var incomplete *services.IncompleteAssessmentError
	if errors.As(err, &incomplete) {
		h.LogWarn(c, "Completion attempted before all questions were answered",
			"answered", incomplete.Answered, "total", incomplete.Total)
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "Assessment is not complete",
			Details: map[string]interface{}{
				"answered": incomplete.Answered,
				"total":    incomplete.Total,
			},
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Project not found",
		})
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Session not found",
		})
	case errors.Is(err, services.ErrProjectClosed):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Project is closed",
		})
	case errors.Is(err, services.ErrProjectNotActive):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Project is not active",
		})
	case errors.Is(err, services.ErrProjectInvalidStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid project status transition",
		})
	case errors.Is(err, services.ErrProjectHasSessions):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Project cannot be deleted - has completed sessions",
		})
	case errors.Is(err, services.ErrSessionCompleted):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Session is already completed",
		})
	case errors.Is(err, services.ErrSessionNotCompleted):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Session is not completed",
		})
	case errors.Is(err, services.ErrUnknownQuestion):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unknown question id",
		})
	case errors.Is(err, services.ErrAnswerValueOutOfRange):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Answer value must be between 1 and 5",
		})
	case errors.Is(err, services.ErrProjectReportNotReady):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Project report requires at least one completed session",
		})
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Unauthorized access",
		})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden - insufficient permissions",
		})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Resource conflict",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
