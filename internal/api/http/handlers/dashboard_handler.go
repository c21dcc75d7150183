package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/healthhive/internal/auth"
	"github.com/spec-kit/healthhive/internal/service"
	apperrors "github.com/spec-kit/healthhive/pkg/util/errorutil"
)

// DashboardHandler serves the role-dispatched dashboard endpoint.
type DashboardHandler struct {
	dashboards *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboards *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Get handles GET /dashboard.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing session")
	}

	content, err := h.dashboards.ForSession(session)
	if err != nil {
		return err
	}
	return c.JSON(content)
}
