package dto

import (
	"time"

	"github.com/campusflow/disruption-service/internal/domain"
)

// UserResponse is the directory record exposed to its owner.
type UserResponse struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	Role            domain.UserRole `json:"role"`
	AdminDepartment *string         `json:"adminDepartment,omitempty"`
	Name            string          `json:"name"`
}

// RedeemAdminCodeRequest payload.
type RedeemAdminCodeRequest struct {
	Department string `json:"department"`
	Code       string `json:"code"`
}

// NotificationResponse is one in-app notification.
type NotificationResponse struct {
	ID           string    `json:"id"`
	DisruptionID string    `json:"disruptionId"`
	Channel      string    `json:"channel"`
	Payload      string    `json:"payload"`
	IsRead       bool      `json:"isRead"`
	CreatedAt    time.Time `json:"createdAt"`
}
