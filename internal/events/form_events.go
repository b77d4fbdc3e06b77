package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a domain event on the form events topic
type EventType string

const (
	EventFormCreated       EventType = "form.created"
	EventFormUpdated       EventType = "form.updated"
	EventFormDeleted       EventType = "form.deleted"
	EventResponseSubmitted EventType = "response.submitted"
)

const (
	eventSource  = "form-service"
	eventVersion = "1.0"
)

// Event is the envelope published for every domain event
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type FormChangedEvent struct {
	FormID        string `json:"formId"`
	Title         string `json:"title"`
	QuestionCount int    `json:"questionCount"`
}

type FormDeletedEvent struct {
	FormID           string `json:"formId"`
	DeletedResponses int64  `json:"deletedResponses"`
}

type ResponseSubmittedEvent struct {
	ResponseID  string    `json:"responseId"`
	FormID      string    `json:"formId"`
	AnswerCount int       `json:"answerCount"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// NewEvent wraps a payload in an envelope with a fresh ID
func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}
