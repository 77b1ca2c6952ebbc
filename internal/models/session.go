package models

import (
	"time"

	"gorm.io/datatypes"
)

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// AssessmentSession is one respondent's pass through the survey: their answer
// set plus, once completed, the cached score set and insight bundle. A
// completed session is immutable; answer writes are rejected.
type AssessmentSession struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	ProjectID uint          `json:"project_id" gorm:"not null;index"`
	Status    SessionStatus `json:"status" gorm:"default:in_progress;index"`

	RespondentName  *string `json:"respondent_name" gorm:"size:100" validate:"omitempty,max=100"`
	RespondentEmail *string `json:"respondent_email" gorm:"size:255" validate:"omitempty,email"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Final aggregate, persisted at completion. ScoreSet holds the full
	// dimension map as JSON; overall/level are lifted into columns so project
	// aggregation can query them directly.
	OverallScore  *float64       `json:"overall_score"`
	MaturityLevel *int           `json:"maturity_level"`
	ScoreSet      datatypes.JSON `json:"score_set,omitempty"`

	// Cached narrative, generated once per completed session.
	InsightBundle datatypes.JSON `json:"insight_bundle,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Project   Project    `json:"-" gorm:"foreignKey:ProjectID"`
	Responses []Response `json:"responses,omitempty" gorm:"foreignKey:SessionID"`
}

func (AssessmentSession) TableName() string {
	return "assessment_sessions"
}

// Response is one respondent's 1-5 rating of one catalog question. The
// (session, question) pair is unique; later writes overwrite earlier ones.
type Response struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	SessionID  uint `json:"session_id" gorm:"not null;uniqueIndex:uq_session_question"`
	QuestionID int  `json:"question_id" gorm:"not null;uniqueIndex:uq_session_question" validate:"required,min=1,max=32"`
	Value      int  `json:"value" gorm:"not null" validate:"required,answer_value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Response) TableName() string {
	return "responses"
}
