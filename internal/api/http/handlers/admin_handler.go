package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusflow/disruption-service/internal/api/dto"
	"github.com/campusflow/disruption-service/internal/auth"
	"github.com/campusflow/disruption-service/internal/service"
	apperrors "github.com/campusflow/disruption-service/pkg/util"
)

// AdminHandler serves admin enrollment.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

// RedeemCode POST /api/admin/redeem-code.
func (h *AdminHandler) RedeemCode(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.RedeemAdminCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.admin.RedeemCode(c.UserContext(), principal.User, req.Department, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		Role:            user.Role,
		AdminDepartment: user.AdminDepartment,
		Name:            user.Name,
	})
}
