package dto

import (
	"time"

	"github.com/campusflow/disruption-service/internal/domain"
)

// CreateDisruptionRequest payload.
type CreateDisruptionRequest struct {
	DisruptionID string                    `json:"disruptionId"`
	StudentName  string                    `json:"studentName"`
	StudentEmail string                    `json:"studentEmail"`
	Category     string                    `json:"category"`
	Priority     domain.DisruptionPriority `json:"priority"`
	Description  string                    `json:"description"`
	ImageURLs    []string                  `json:"imageUrls"`
}

// ToneAnalysisResponse is the advisory annotation shape.
type ToneAnalysisResponse struct {
	Tone           string  `json:"tone"`
	Confidence     float64 `json:"confidence"`
	Recommendation string  `json:"recommendation"`
}

// CreateDisruptionResponse confirms creation.
type CreateDisruptionResponse struct {
	Message      string                `json:"message"`
	DisruptionID string                `json:"disruptionId"`
	ToneAnalysis *ToneAnalysisResponse `json:"aiToneAnalysis,omitempty"`
}

// DisruptionDetailResponse is the full record. StudentEmail is omitted on
// the anonymous read path.
type DisruptionDetailResponse struct {
	DisruptionID string                    `json:"disruptionId"`
	StudentID    string                    `json:"studentId"`
	StudentName  string                    `json:"studentName"`
	StudentEmail string                    `json:"studentEmail,omitempty"`
	Category     string                    `json:"category"`
	Priority     domain.DisruptionPriority `json:"priority"`
	Description  string                    `json:"description"`
	Status       domain.DisruptionStatus   `json:"status"`
	ToneAnalysis *ToneAnalysisResponse     `json:"aiToneAnalysis,omitempty"`
	ImageURLs    []string                  `json:"imageUrls"`
	CreatedAt    time.Time                 `json:"createdAt"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
	ResolvedAt   *time.Time                `json:"resolvedAt,omitempty"`
	ResolvedBy   *string                   `json:"resolvedBy,omitempty"`
}

// StudentDisruptionSummary is the owner-facing list item.
type StudentDisruptionSummary struct {
	DisruptionID string                    `json:"disruptionId"`
	Category     string                    `json:"category"`
	Priority     domain.DisruptionPriority `json:"priority"`
	Status       domain.DisruptionStatus   `json:"status"`
	CreatedAt    time.Time                 `json:"createdAt"`
}

// CategoryDisruptionSummary is the admin-facing list item.
type CategoryDisruptionSummary struct {
	DisruptionID string                    `json:"disruptionId"`
	StudentName  string                    `json:"studentName"`
	Priority     domain.DisruptionPriority `json:"priority"`
	Status       domain.DisruptionStatus   `json:"status"`
	CreatedAt    time.Time                 `json:"createdAt"`
}

// ResolveDisruptionRequest payload.
type ResolveDisruptionRequest struct {
	ResolutionDescription string  `json:"resolutionDescription"`
	ResolutionImage       *string `json:"resolutionImage,omitempty"`
}

// ResolutionResponse is one entry of the resolution history.
type ResolutionResponse struct {
	ID                 string    `json:"id"`
	ResolvedBy         string    `json:"resolvedBy"`
	Description        string    `json:"resolutionDescription"`
	ResolutionImageURL *string   `json:"resolutionImage,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// AnalyzeToneRequest payload.
type AnalyzeToneRequest struct {
	Description string `json:"description"`
}

// DepartmentResponse is one category entry.
type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
