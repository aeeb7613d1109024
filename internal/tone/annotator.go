// Package tone analyzes disruption descriptions and produces advisory
// annotations. Annotators are best-effort collaborators: callers treat any
// error as "no annotation available" and proceed.
package tone

import (
	"context"

	"github.com/campusflow/disruption-service/internal/domain"
)

// Annotator analyzes free text and returns a tone annotation.
type Annotator interface {
	Analyze(ctx context.Context, text string) (*domain.ToneAnnotation, error)
}

// Recommendations maps each tone label to its handling advice.
var Recommendations = map[string]string{
	"urgent":     "This disruption appears to be urgent. Consider prioritizing for quick response.",
	"frustrated": "This disruption appears to be frustrated. Consider prioritizing for quick response.",
	"neutral":    "This disruption appears to be neutral. Standard handling procedure applies.",
	"polite":     "This disruption appears to be polite. Standard handling procedure applies.",
	"angry":      "This disruption appears to be angry. Consider careful handling with immediate response.",
	"confused":   "This disruption appears to be confused. Consider reaching out for clarification.",
}

// RecommendationFor returns the advice for a tone label.
func RecommendationFor(tone string) string {
	if rec, ok := Recommendations[tone]; ok {
		return rec
	}
	return "No specific recommendation available."
}
