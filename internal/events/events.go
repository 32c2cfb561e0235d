package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EnrollmentRequested         EventType = "enrollment.requested"
	EnrollmentApproved          EventType = "enrollment.approved"
	EnrollmentRejected          EventType = "enrollment.rejected"
	JobApplicationSubmitted     EventType = "job.application.submitted"
	JobApplicationStatusChanged EventType = "job.application.status_changed"
	InterviewCompleted          EventType = "interview.completed"
	InsightGenerated            EventType = "insight.generated"
)

const (
	eventSource  = "careerkit-service"
	eventVersion = "1.0"
)

// Event is the envelope published for every domain event
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func NewEvent(eventType EventType, data map[string]interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}
