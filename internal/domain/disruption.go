package domain

import "time"

// DisruptionStatus enumerates lifecycle states for disruption reports.
// Transitions are forward-only: pending -> in_progress -> resolved, with
// pending allowed to jump straight to resolved. Resolved is terminal.
type DisruptionStatus string

const (
	DisruptionStatusPending    DisruptionStatus = "pending"
	DisruptionStatusInProgress DisruptionStatus = "in_progress"
	DisruptionStatusResolved   DisruptionStatus = "resolved"
)

// DisruptionPriority enumerates caller-supplied urgency.
type DisruptionPriority string

const (
	DisruptionPriorityLow    DisruptionPriority = "low"
	DisruptionPriorityMedium DisruptionPriority = "medium"
	DisruptionPriorityHigh   DisruptionPriority = "high"
)

// ValidPriority reports whether p is one of the documented priority values.
func ValidPriority(p DisruptionPriority) bool {
	switch p {
	case DisruptionPriorityLow, DisruptionPriorityMedium, DisruptionPriorityHigh:
		return true
	}
	return false
}

// ToneAnnotation is the advisory output of the tone analyzer.
type ToneAnnotation struct {
	Tone           string
	Confidence     float64
	Recommendation string
}

// Disruption is the aggregate for a reported campus issue. DisruptionID is the
// caller-chosen, human-facing business id; ID is the storage identity.
type Disruption struct {
	ID           string
	DisruptionID string
	StudentID    string
	StudentName  string
	StudentEmail string
	Category     string
	Priority     DisruptionPriority
	Description  string
	Status       DisruptionStatus
	Tone         *ToneAnnotation
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ResolvedAt   *time.Time
	ResolvedBy   *string
	IsDeleted    bool
}
