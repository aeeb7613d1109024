package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/campusflow/disruption-service/internal/api/dto"
	"github.com/campusflow/disruption-service/internal/auth"
	"github.com/campusflow/disruption-service/internal/domain"
	"github.com/campusflow/disruption-service/internal/service"
	apperrors "github.com/campusflow/disruption-service/pkg/util"
)

// DisruptionsHandler serves the disruption lifecycle endpoints.
type DisruptionsHandler struct {
	service *service.DisruptionService
}

// NewDisruptionsHandler constructs handler.
func NewDisruptionsHandler(disruptionService *service.DisruptionService) *DisruptionsHandler {
	return &DisruptionsHandler{service: disruptionService}
}

// Create POST /api/disruptions.
func (h *DisruptionsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateDisruptionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.DisruptionCreateInput{
		DisruptionID: req.DisruptionID,
		StudentName:  req.StudentName,
		StudentEmail: req.StudentEmail,
		Category:     req.Category,
		Priority:     req.Priority,
		Description:  req.Description,
		ImageURLs:    req.ImageURLs,
	}
	disruption, err := h.service.Create(c.UserContext(), principal.User, input)
	if err != nil {
		return err
	}

	resp := dto.CreateDisruptionResponse{
		Message:      "Disruption created successfully",
		DisruptionID: disruption.DisruptionID,
		ToneAnalysis: toneResponse(disruption.Tone),
	}
	return c.Status(http.StatusCreated).JSON(resp)
}

// Get GET /api/disruptions/:disruptionID. Anonymous read; the student's
// email address is withheld from this surface.
func (h *DisruptionsHandler) Get(c *fiber.Ctx) error {
	disruption, images, err := h.service.GetByDisruptionID(c.UserContext(), c.Params("disruptionID"))
	if err != nil {
		return err
	}
	return c.JSON(disruptionDetail(disruption, images, false))
}

// ListByStudent GET /api/disruptions/student/:studentRef.
func (h *DisruptionsHandler) ListByStudent(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	disruptions, err := h.service.ListByStudent(c.UserContext(), principal.User, principal.Admin, c.Params("studentRef"))
	if err != nil {
		return err
	}

	items := make([]dto.StudentDisruptionSummary, 0, len(disruptions))
	for i := range disruptions {
		items = append(items, dto.StudentDisruptionSummary{
			DisruptionID: disruptions[i].DisruptionID,
			Category:     disruptions[i].Category,
			Priority:     disruptions[i].Priority,
			Status:       disruptions[i].Status,
			CreatedAt:    disruptions[i].CreatedAt,
		})
	}
	return c.JSON(items)
}

// ListByCategory GET /api/disruptions/admin/:category.
func (h *DisruptionsHandler) ListByCategory(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	disruptions, err := h.service.ListByCategory(c.UserContext(), principal.Admin, c.Params("category"))
	if err != nil {
		return err
	}

	items := make([]dto.CategoryDisruptionSummary, 0, len(disruptions))
	for i := range disruptions {
		items = append(items, dto.CategoryDisruptionSummary{
			DisruptionID: disruptions[i].DisruptionID,
			StudentName:  disruptions[i].StudentName,
			Priority:     disruptions[i].Priority,
			Status:       disruptions[i].Status,
			CreatedAt:    disruptions[i].CreatedAt,
		})
	}
	return c.JSON(items)
}

// Resolve PATCH /api/disruptions/:disruptionID/resolve.
func (h *DisruptionsHandler) Resolve(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ResolveDisruptionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	disruption, err := h.service.Resolve(c.UserContext(), principal.User, principal.Admin, c.Params("disruptionID"), req.ResolutionDescription, req.ResolutionImage)
	if err != nil {
		return err
	}
	return c.JSON(disruptionDetail(disruption, nil, true))
}

// ListResolutions GET /api/disruptions/:disruptionID/resolutions.
func (h *DisruptionsHandler) ListResolutions(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	resolutions, err := h.service.ListResolutions(c.UserContext(), principal.Admin, c.Params("disruptionID"))
	if err != nil {
		return err
	}

	items := make([]dto.ResolutionResponse, 0, len(resolutions))
	for i := range resolutions {
		items = append(items, dto.ResolutionResponse{
			ID:                 resolutions[i].ID,
			ResolvedBy:         resolutions[i].ResolvedBy,
			Description:        resolutions[i].Description,
			ResolutionImageURL: resolutions[i].ResolutionImageURL,
			CreatedAt:          resolutions[i].CreatedAt,
		})
	}
	return c.JSON(items)
}

// ListCategories GET /api/departments.
func (h *DisruptionsHandler) ListCategories(c *fiber.Ctx) error {
	departments, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.DepartmentResponse, 0, len(departments))
	for i := range departments {
		items = append(items, dto.DepartmentResponse{ID: departments[i].ID, Name: departments[i].Name})
	}
	return c.JSON(items)
}

func toneResponse(annotation *domain.ToneAnnotation) *dto.ToneAnalysisResponse {
	if annotation == nil {
		return nil
	}
	return &dto.ToneAnalysisResponse{
		Tone:           annotation.Tone,
		Confidence:     annotation.Confidence,
		Recommendation: annotation.Recommendation,
	}
}

func disruptionDetail(disruption *domain.Disruption, images []domain.DisruptionImage, includeEmail bool) dto.DisruptionDetailResponse {
	urls := make([]string, 0, len(images))
	for i := range images {
		urls = append(urls, images[i].URL)
	}
	resp := dto.DisruptionDetailResponse{
		DisruptionID: disruption.DisruptionID,
		StudentID:    disruption.StudentID,
		StudentName:  disruption.StudentName,
		Category:     disruption.Category,
		Priority:     disruption.Priority,
		Description:  disruption.Description,
		Status:       disruption.Status,
		ToneAnalysis: toneResponse(disruption.Tone),
		ImageURLs:    urls,
		CreatedAt:    disruption.CreatedAt,
		UpdatedAt:    disruption.UpdatedAt,
		ResolvedAt:   disruption.ResolvedAt,
		ResolvedBy:   disruption.ResolvedBy,
	}
	if includeEmail {
		resp.StudentEmail = disruption.StudentEmail
	}
	return resp
}
