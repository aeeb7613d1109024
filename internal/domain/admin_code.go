package domain

import "time"

// AdminCode is a department-scoped enrollment code. Redeeming an active,
// unexpired code elevates a user to administrator for that department.
// Only the bcrypt hash of the code is stored.
type AdminCode struct {
	ID           string
	DepartmentID string
	CodeHash     string
	CreatedAt    time.Time
	ExpiresAt    *time.Time
	IsActive     bool
}

// Redeemable reports whether the code can still be used at the given instant.
func (c *AdminCode) Redeemable(now time.Time) bool {
	if c == nil || !c.IsActive {
		return false
	}
	return c.ExpiresAt == nil || now.Before(*c.ExpiresAt)
}
