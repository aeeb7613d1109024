package domain

import "time"

// AuditAction identifies what an audit entry records.
type AuditAction string

const (
	AuditActionDisruptionCreated  AuditAction = "disruption_created"
	AuditActionDisruptionResolved AuditAction = "disruption_resolved"
	AuditActionAdminCodeRedeemed  AuditAction = "admin_code_redeemed"
)

// AuditLog is an immutable trail entry for privileged or state-changing actions.
type AuditLog struct {
	ID          string
	ActorID     *string
	Action      AuditAction
	TargetTable string
	TargetID    *string
	Meta        map[string]any
	CreatedAt   time.Time
}
