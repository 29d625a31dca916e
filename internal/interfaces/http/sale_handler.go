package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/checkout"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dto"
)

// SaleHandler checkout and sales history.
type SaleHandler struct {
	uc *checkout.CheckoutUseCase
}

// NewSaleHandler builds the handler.
func NewSaleHandler(uc *checkout.CheckoutUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Complete godoc
// @Summary      Complete a sale
// @Description  Records the sale and its items and decrements stock in one transaction.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        storeID  path  string                  true  "Store ID"
// @Param        body     body  dto.CompleteSaleRequest  true  "Cart lines, customer, payment, discount"
// @Success      201  {object}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeID}/sales [post]
func (h *SaleHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CompleteSale(c.Context(), GetCaller(c), c.Params("storeID"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Sales of a store, newest first
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        storeID  path   string  true   "Store ID"
// @Param        limit    query  int     false  "Limit"   default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/stores/{storeID}/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListSales(c.Context(), GetCaller(c), c.Params("storeID"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
