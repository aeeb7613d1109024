package tone

import (
	"context"
	"strings"

	"github.com/campusflow/disruption-service/internal/domain"
)

// LexiconAnnotator scores text against small keyword lexicons. It is
// deterministic, needs no network, and is the default annotator.
type LexiconAnnotator struct{}

// NewLexiconAnnotator returns the default annotator.
func NewLexiconAnnotator() *LexiconAnnotator {
	return &LexiconAnnotator{}
}

var lexicons = map[string][]string{
	"urgent":     {"urgent", "immediately", "asap", "emergency", "leak", "flood", "fire", "danger"},
	"frustrated": {"again", "still", "weeks", "nobody", "ignored", "fed up", "ridiculous"},
	"angry":      {"unacceptable", "furious", "outrage", "terrible", "worst", "disgrace"},
	"polite":     {"please", "thank", "kindly", "appreciate", "would you", "grateful"},
	"confused":   {"not sure", "confused", "unclear", "don't know", "what is", "how do"},
}

// Analyze picks the tone whose lexicon matches the text most strongly,
// falling back to neutral when nothing matches.
func (a *LexiconAnnotator) Analyze(_ context.Context, text string) (*domain.ToneAnnotation, error) {
	lowered := strings.ToLower(text)

	best := "neutral"
	bestHits := 0
	for tone, words := range lexicons {
		hits := 0
		for _, word := range words {
			if strings.Contains(lowered, word) {
				hits++
			}
		}
		if hits > bestHits || (hits == bestHits && hits > 0 && tone < best) {
			best = tone
			bestHits = hits
		}
	}

	confidence := 0.70
	if bestHits > 0 {
		confidence += 0.05 * float64(bestHits)
		if confidence > 0.95 {
			confidence = 0.95
		}
	}

	return &domain.ToneAnnotation{
		Tone:           best,
		Confidence:     confidence,
		Recommendation: RecommendationFor(best),
	}, nil
}
