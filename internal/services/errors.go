package services

import (
	"errors"
	"fmt"

	apperrors "github.com/Criterio-inc/mognadsmataren/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrConflict         = errors.New("resource conflict")

	// Project specific errors
	ErrProjectNotFound       = errors.New("project not found")
	ErrProjectAccessDenied   = errors.New("access denied to project")
	ErrProjectClosed         = errors.New("project is closed")
	ErrProjectNotActive      = errors.New("project is not active")
	ErrProjectInvalidStatus  = errors.New("invalid project status transition")
	ErrProjectHasSessions    = errors.New("project cannot be deleted - has completed sessions")
	ErrShareCodeExhausted    = errors.New("could not generate a unique share code")
	ErrNoCompletedSessions   = errors.New("project has no completed sessions")
	ErrProjectReportNotReady = errors.New("project report requires at least one completed session")

	// Session specific errors
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionCompleted      = errors.New("session is already completed")
	ErrSessionNotCompleted   = errors.New("session is not completed")
	ErrSessionWrongProject   = errors.New("session does not belong to this project")
	ErrUnknownQuestion       = errors.New("unknown question id")
	ErrAnswerValueOutOfRange = errors.New("answer value must be between 1 and 5")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

type PermissionError struct {
	UserID     string `json:"user_id"`
	ResourceID uint   `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %d - %s",
		pe.UserID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

// IncompleteAssessmentError reports how far a respondent got before trying
// to complete a session.
type IncompleteAssessmentError struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

func (iae *IncompleteAssessmentError) Error() string {
	return fmt.Sprintf("assessment incomplete: %d of %d questions answered", iae.Answered, iae.Total)
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

func NewPermissionError(userID string, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrSessionNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrProjectAccessDenied) {
		return true
	}
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrUnknownQuestion) ||
		errors.Is(err, ErrAnswerValueOutOfRange) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	if errors.As(err, &bre) {
		return true
	}
	var iae *IncompleteAssessmentError
	return errors.As(err, &iae)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrSessionCompleted) ||
		errors.Is(err, ErrProjectClosed) ||
		errors.Is(err, ErrProjectHasSessions)
}
