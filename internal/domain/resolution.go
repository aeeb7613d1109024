package domain

import "time"

// Resolution is an append-only record of a resolve action. The schema allows
// several per disruption; the lifecycle service rejects re-resolving, so more
// than one indicates manual intervention.
type Resolution struct {
	ID                 string
	DisruptionID       string
	ResolvedBy         string
	Description        string
	ResolutionImageURL *string
	CreatedAt          time.Time
}
