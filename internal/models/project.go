package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectDraft  ProjectStatus = "draft"
	ProjectActive ProjectStatus = "active"
	ProjectClosed ProjectStatus = "closed"
)

// Project is one maturity assessment engagement a consultant runs for a
// client organization. Respondents reach the survey through the share code.
type Project struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Name        string        `json:"name" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	ClientName  string        `json:"client_name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description *string       `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	Locale      string        `json:"locale" gorm:"default:sv;size:5" validate:"omitempty,survey_locale"`
	Status      ProjectStatus `json:"status" gorm:"default:draft;index" validate:"omitempty,project_status"`
	ShareCode   string        `json:"share_code" gorm:"uniqueIndex;not null;size:16"`

	// Cached aggregated insight bundle across completed sessions. Generated
	// once; cleared when a new session completes.
	InsightBundle datatypes.JSON `json:"insight_bundle,omitempty"`

	CreatedBy string         `json:"created_by" gorm:"not null;size:255;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Sessions []AssessmentSession `json:"sessions,omitempty" gorm:"foreignKey:ProjectID"`

	// Computed fields (not stored)
	SessionCount   int `json:"session_count" gorm:"-"`
	CompletedCount int `json:"completed_count" gorm:"-"`
}

func (Project) TableName() string {
	return "projects"
}
