package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dashboard"
)

// DashboardHandler owner and admin landing pages.
type DashboardHandler struct {
	uc *dashboard.DashboardUseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *dashboard.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Store godoc
// @Summary      Today's sales, product and low-stock counts of the caller's store
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StoreDashboardResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/store [get]
func (h *DashboardHandler) Store(c *fiber.Ctx) error {
	out, err := h.uc.StoreSummary(c.Context(), GetCaller(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Admin godoc
// @Summary      Platform overview (admin)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdminDashboardResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/admin [get]
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	out, err := h.uc.AdminSummary(c.Context(), GetCaller(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
