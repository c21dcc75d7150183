package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/healthhive/internal/api/dto"
	"github.com/spec-kit/healthhive/internal/service"
)

// RolesHandler serves the role reference data.
type RolesHandler struct {
	roles *service.RoleService
}

// NewRolesHandler constructs handler.
func NewRolesHandler(roleService *service.RoleService) *RolesHandler {
	return &RolesHandler{roles: roleService}
}

// List handles GET /roles.
func (h *RolesHandler) List(c *fiber.Ctx) error {
	roles, err := h.roles.ListActive(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewRoleResponses(roles))
}
