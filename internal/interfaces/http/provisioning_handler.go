package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dto"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/provisioning"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
	"github.com/AppHatchery-01/kirana-pos-easy/pkg/jwt"
)

// ProvisioningHandler serves POST /create-store-owner. Its error bodies are
// {"error": "..."} rather than dto.ErrorResponse.
type ProvisioningHandler struct {
	uc        *provisioning.ProvisioningUseCase
	jwtSecret string
}

// NewProvisioningHandler builds the handler.
func NewProvisioningHandler(uc *provisioning.ProvisioningUseCase, jwtSecret string) *ProvisioningHandler {
	return &ProvisioningHandler{uc: uc, jwtSecret: jwtSecret}
}

func errorBody(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// CreateStoreOwner godoc
// @Summary      Provision a store owner account and its store (admin)
// @Tags         provisioning
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProvisionStoreOwnerRequest  true  "Store and owner"
// @Success      200   {object}  dto.ProvisionStoreOwnerResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      405   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /create-store-owner [post]
func (h *ProvisioningHandler) CreateStoreOwner(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return errorBody(c, fiber.StatusMethodNotAllowed, "Method not allowed")
	}
	tok, ok := bearerToken(c)
	if !ok {
		return errorBody(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := jwt.Parse(h.jwtSecret, tok)
	if err != nil {
		return errorBody(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	// role first: a non-admin never learns anything about its body
	if err := h.uc.Authorize(c.Context(), id.UserID); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return errorBody(c, fiber.StatusForbidden, "Forbidden")
		}
		return errorBody(c, fiber.StatusInternalServerError, "Role check failed")
	}

	var in dto.ProvisionStoreOwnerRequest
	if err := c.BodyParser(&in); err != nil {
		return errorBody(c, fiber.StatusBadRequest, "Invalid request body")
	}

	out, err := h.uc.Provision(c.Context(), id.UserID, in)
	switch {
	case err == nil:
		return c.JSON(out)
	case errors.Is(err, provisioning.ErrMissingFields):
		return errorBody(c, fiber.StatusBadRequest, "Missing required fields")
	case provisioning.IsClientError(err):
		return errorBody(c, fiber.StatusBadRequest, err.Error())
	default:
		return errorBody(c, fiber.StatusInternalServerError, err.Error())
	}
}
