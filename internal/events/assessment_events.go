package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// EventType represents different types of assessment lifecycle events
type EventType string

const (
	// Session events
	EventSessionStarted   EventType = "session.started"
	EventSessionCompleted EventType = "session.completed"

	// Insight events
	EventInsightsGenerated EventType = "insights.generated"

	// Project events
	EventProjectClosed EventType = "project.closed"
)

// AssessmentEvent is the base event structure published to the broker
type AssessmentEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewAssessmentEvent wraps a payload in the shared event envelope.
func NewAssessmentEvent(eventType EventType, data interface{}) *AssessmentEvent {
	return &AssessmentEvent{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "mognadsmataren",
		Version:   "1.0",
		Data:      data,
	}
}

// GenerateEventID returns a unique id for a published event.
func GenerateEventID() string {
	return watermill.NewUUID()
}

// Session event payloads

type SessionStartedEvent struct {
	SessionID   uint      `json:"session_id"`
	ProjectID   uint      `json:"project_id"`
	ProjectName string    `json:"project_name"`
	StartedAt   time.Time `json:"started_at"`
}

type SessionCompletedEvent struct {
	SessionID     uint      `json:"session_id"`
	ProjectID     uint      `json:"project_id"`
	ProjectName   string    `json:"project_name"`
	CompletedAt   time.Time `json:"completed_at"`
	OverallScore  float64   `json:"overall_score"`
	MaturityLevel int       `json:"maturity_level"`
}

type InsightsGeneratedEvent struct {
	ProjectID   uint      `json:"project_id"`
	SessionID   *uint     `json:"session_id,omitempty"` // nil for project-level bundles
	Locale      string    `json:"locale"`
	GeneratedAt time.Time `json:"generated_at"`
}

type ProjectClosedEvent struct {
	ProjectID         uint      `json:"project_id"`
	ProjectName       string    `json:"project_name"`
	ClosedAt          time.Time `json:"closed_at"`
	CompletedSessions int       `json:"completed_sessions"`
}
