package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/invoice"
)

// InvoiceHandler renderings of a completed sale.
type InvoiceHandler struct {
	uc *invoice.InvoiceUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(uc *invoice.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Invoice godoc
// @Summary      Invoice view of a sale
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Sale ID"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/invoice [get]
func (h *InvoiceHandler) Invoice(c *fiber.Ctx) error {
	out, err := h.uc.GetInvoice(c.Context(), GetCaller(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Fixed-width text receipt for thermal printers
// @Tags         invoices
// @Security     Bearer
// @Produce      plain
// @Param        id   path  string  true  "Sale ID"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *InvoiceHandler) Receipt(c *fiber.Ctx) error {
	out, err := h.uc.Receipt(c.Context(), GetCaller(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(out)
}

// PDF godoc
// @Summary      A4 tax invoice PDF
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "Sale ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/invoice.pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	doc, filename, err := h.uc.PDF(c.Context(), GetCaller(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(doc)
}
