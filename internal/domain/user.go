package domain

import "time"

// UserRole distinguishes students from campus administrators.
type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleAdmin   UserRole = "admin"
)

// User is the local directory record for an externally authenticated identity.
// AuthUID stays nil until the identity provider subject is linked on first sight.
type User struct {
	ID              string
	AuthUID         *string
	Email           string
	Role            UserRole
	AdminDepartment *string
	Name            string
	IsActive        bool
	CreatedAt       time.Time
	LastLogin       *time.Time
}

// IsAdmin reports whether the stored role grants administrator access.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}
