package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/catalog"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dto"
)

// ProductHandler store catalog endpoints.
type ProductHandler struct {
	uc *catalog.CatalogUseCase
}

// NewProductHandler builds the handler.
func NewProductHandler(uc *catalog.CatalogUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      List or search products of a store
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        storeID  path   string  true   "Store ID"
// @Param        q        query  string  false  "Matches name, sku or barcode"
// @Param        limit    query  int     false  "Limit"   default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ProductListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeID}/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetCaller(c), c.Params("storeID"), c.Query("q"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sellable godoc
// @Summary      Active products in stock, by name (POS grid)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        storeID  path  string  true  "Store ID"
// @Success      200  {array}   dto.ProductResponse
// @Router       /api/stores/{storeID}/products/sellable [get]
func (h *ProductHandler) Sellable(c *fiber.Ctx) error {
	out, err := h.uc.ListSellable(c.Context(), GetCaller(c), c.Params("storeID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Create a product
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        storeID  path  string                    true  "Store ID"
// @Param        body     body  dto.CreateProductRequest  true  "Product"
// @Success      201  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeID}/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetCaller(c), c.Params("storeID"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// QuickAdd godoc
// @Summary      Quick-add a product from name, price and stock
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        storeID  path  string                      true  "Store ID"
// @Param        body     body  dto.QuickAddProductRequest  true  "Product"
// @Success      201  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeID}/products/quick [post]
func (h *ProductHandler) QuickAdd(c *fiber.Ctx) error {
	var in dto.QuickAddProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.QuickAdd(c.Context(), GetCaller(c), c.Params("storeID"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get a product
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Product ID"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetCaller(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Partially update a product
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Product ID"
// @Param        body  body  dto.UpdateProductRequest  true  "Fields to change"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetCaller(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a product
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "Product ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetCaller(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
