package tone

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexiconAnnotator(t *testing.T) {
	annotator := NewLexiconAnnotator()

	cases := []struct {
		name string
		text string
		tone string
	}{
		{"urgent", "URGENT: water flooding the basement, respond immediately", "urgent"},
		{"frustrated", "Still broken after weeks, nobody responded and my emails were ignored", "frustrated"},
		{"angry", "Absolutely unacceptable, the worst service, a disgrace", "angry"},
		{"polite", "Could you please look into this? Thank you, I'd appreciate it", "polite"},
		{"confused", "I'm not sure what is going on or how do I report this", "confused"},
		{"neutral", "The projector in room 204 shows a green tint", "neutral"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			annotation, err := annotator.Analyze(context.Background(), tc.text)
			require.NoError(t, err)
			require.NotNil(t, annotation)
			assert.Equal(t, tc.tone, annotation.Tone)
			assert.Equal(t, RecommendationFor(tc.tone), annotation.Recommendation)
		})
	}
}

func TestLexiconConfidenceBounds(t *testing.T) {
	annotator := NewLexiconAnnotator()

	neutral, err := annotator.Analyze(context.Background(), "nothing remarkable here")
	require.NoError(t, err)
	assert.InDelta(t, 0.70, neutral.Confidence, 0.001)

	loaded, err := annotator.Analyze(context.Background(),
		"urgent emergency fire flood leak danger, come immediately asap")
	require.NoError(t, err)
	assert.Equal(t, "urgent", loaded.Tone)
	assert.LessOrEqual(t, loaded.Confidence, 0.95)
	assert.Greater(t, loaded.Confidence, 0.70)
}

func TestRecommendationForUnknownTone(t *testing.T) {
	assert.Equal(t, "No specific recommendation available.", RecommendationFor("sarcastic"))
}
