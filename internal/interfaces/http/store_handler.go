package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/store"
)

// StoreHandler store listing and activation.
type StoreHandler struct {
	uc *store.StoreUseCase
}

// NewStoreHandler builds the handler.
func NewStoreHandler(uc *store.StoreUseCase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// List godoc
// @Summary      All stores, newest first (admin)
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StoreResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stores [get]
func (h *StoreHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetCaller(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Mine godoc
// @Summary      Store owned by the caller
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StoreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/mine [get]
func (h *StoreHandler) Mine(c *fiber.Ctx) error {
	out, err := h.uc.Mine(c.Context(), GetCaller(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Deactivate a store (admin)
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Store ID"
// @Success      200  {object}  dto.StoreResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id}/deactivate [patch]
func (h *StoreHandler) Deactivate(c *fiber.Ctx) error {
	return h.setActive(c, false)
}

// Activate godoc
// @Summary      Reactivate a store (admin)
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Store ID"
// @Success      200  {object}  dto.StoreResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id}/activate [patch]
func (h *StoreHandler) Activate(c *fiber.Ctx) error {
	return h.setActive(c, true)
}

func (h *StoreHandler) setActive(c *fiber.Ctx, active bool) error {
	out, err := h.uc.SetActive(c.Context(), GetCaller(c), c.Params("id"), active)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
