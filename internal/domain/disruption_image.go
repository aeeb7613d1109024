package domain

import "time"

// DisruptionImage is evidence attached to a disruption. Rows are owned by the
// disruption and cascade-deleted with it.
type DisruptionImage struct {
	ID           string
	DisruptionID string
	URL          string
	Filename     string
	Filesize     int64
	UploadedAt   time.Time
}
