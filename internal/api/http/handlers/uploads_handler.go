package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadsHandler stubs evidence image uploads. Real storage is out of scope;
// the handler hands back a stable URL the client can attach to a disruption.
type UploadsHandler struct {
	baseURL string
}

// NewUploadsHandler constructs handler.
func NewUploadsHandler(baseURL string) *UploadsHandler {
	if baseURL == "" {
		baseURL = "https://storage.campusflow.example"
	}
	return &UploadsHandler{baseURL: baseURL}
}

// DisruptionImage POST /api/upload/disruption-image.
func (h *UploadsHandler) DisruptionImage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Image uploaded successfully",
		"url":     fmt.Sprintf("%s/disruptions/%s", h.baseURL, uuid.NewString()),
	})
}

// ResolutionImage POST /api/upload/resolution-image.
func (h *UploadsHandler) ResolutionImage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Resolution image uploaded successfully",
		"url":     fmt.Sprintf("%s/resolutions/%s", h.baseURL, uuid.NewString()),
	})
}
