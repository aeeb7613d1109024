package events

import (
	"time"

	"github.com/campusflow/disruption-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDisruptionCreated  EventType = "disruption_created"
	EventDisruptionResolved EventType = "disruption_resolved"
	EventToneAnnotated      EventType = "tone_annotated"
)

// Event represents a domain event emitted by services. DisruptionID carries
// the business id, StudentID the owning user's local id.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	DisruptionID string      `json:"disruption_id"`
	StudentID    string      `json:"student_id"`
	ActorID      string      `json:"actor_id"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// DisruptionCreatedPayload payload.
type DisruptionCreatedPayload struct {
	Category string                    `json:"category"`
	Priority domain.DisruptionPriority `json:"priority"`
}

// DisruptionResolvedPayload payload.
type DisruptionResolvedPayload struct {
	ResolvedBy  string `json:"resolved_by"`
	Description string `json:"description"`
}

// ToneAnnotatedPayload payload.
type ToneAnnotatedPayload struct {
	Tone       string  `json:"tone"`
	Confidence float64 `json:"confidence"`
}
