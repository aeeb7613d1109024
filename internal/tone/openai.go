package tone

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/campusflow/disruption-service/internal/domain"
)

// OpenAIAnnotator asks a chat model to classify tone. Enabled only when an
// API key is configured; any failure is swallowed at the call site.
type OpenAIAnnotator struct {
	client *openai.Client
}

// NewOpenAIAnnotator builds the annotator.
func NewOpenAIAnnotator(apiKey string) *OpenAIAnnotator {
	return &OpenAIAnnotator{client: openai.NewClient(apiKey)}
}

type openAIResult struct {
	Tone       string  `json:"tone"`
	Confidence float64 `json:"confidence"`
}

// Analyze classifies the text into one of the known tone labels.
func (a *OpenAIAnnotator) Analyze(ctx context.Context, text string) (*domain.ToneAnnotation, error) {
	if a.client == nil {
		return nil, fmt.Errorf("openai client not initialized")
	}

	prompt := fmt.Sprintf(`Classify the tone of the following campus issue report.
Answer with JSON only: {"tone": "<one of urgent, frustrated, neutral, polite, angry, confused>", "confidence": <0..1>}

Report:
%s`, text)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty response")
	}

	var result openAIResult
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("parse openai response: %w", err)
	}
	if _, known := Recommendations[result.Tone]; !known {
		result.Tone = "neutral"
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		result.Confidence = 0.7
	}

	return &domain.ToneAnnotation{
		Tone:           result.Tone,
		Confidence:     result.Confidence,
		Recommendation: RecommendationFor(result.Tone),
	}, nil
}
