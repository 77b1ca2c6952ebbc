package utils

import (
	"reflect"
	"strings"

	"github.com/Criterio-inc/mognadsmataren/internal/assessment"
	apperrors "github.com/Criterio-inc/mognadsmataren/internal/errors"
	"github.com/Criterio-inc/mognadsmataren/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the service's custom tags.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	RegisterCustomValidators(validate)
	return &Validator{validate: validate}
}

// Validate validates a struct and returns typed validation errors.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return apperrors.ToValidationErrors(err)
	}
	return nil
}

// Custom validation functions

func ValidateSurveyLocale(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == string(assessment.LocaleSwedish) || value == string(assessment.LocaleEnglish)
}

func ValidateProjectStatus(fl validator.FieldLevel) bool {
	validStatuses := []models.ProjectStatus{
		models.ProjectDraft,
		models.ProjectActive,
		models.ProjectClosed,
	}

	value := fl.Field().String()
	for _, validStatus := range validStatuses {
		if string(validStatus) == value {
			return true
		}
	}
	return false
}

func ValidateAnswerValue(fl validator.FieldLevel) bool {
	value := fl.Field().Int()
	return value >= assessment.MinAnswerValue && value <= assessment.MaxAnswerValue
}

// RegisterCustomValidators registers all custom validators.
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("survey_locale", ValidateSurveyLocale)
	validate.RegisterValidation("project_status", ValidateProjectStatus)
	validate.RegisterValidation("answer_value", ValidateAnswerValue)

	// Register custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
