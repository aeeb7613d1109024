package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusflow/disruption-service/internal/api/dto"
	"github.com/campusflow/disruption-service/internal/service"
	apperrors "github.com/campusflow/disruption-service/pkg/util"
)

// ToneHandler serves ad-hoc tone analysis.
type ToneHandler struct {
	tone *service.ToneService
}

// NewToneHandler constructs handler.
func NewToneHandler(toneService *service.ToneService) *ToneHandler {
	return &ToneHandler{tone: toneService}
}

// Analyze POST /api/analyze-tone. Annotator failure degrades to a neutral
// answer rather than an error.
func (h *ToneHandler) Analyze(c *fiber.Ctx) error {
	var req dto.AnalyzeToneRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Description == "" {
		return apperrors.NewValidationError("description required", nil)
	}

	annotation := h.tone.Annotate(c.UserContext(), req.Description)
	if annotation == nil {
		return c.JSON(dto.ToneAnalysisResponse{
			Tone:           "neutral",
			Confidence:     0,
			Recommendation: "No specific recommendation available.",
		})
	}
	return c.JSON(dto.ToneAnalysisResponse{
		Tone:           annotation.Tone,
		Confidence:     annotation.Confidence,
		Recommendation: annotation.Recommendation,
	})
}
