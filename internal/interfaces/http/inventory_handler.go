package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frankopalmi/gridmanager-api/internal/application/dto"
	"github.com/frankopalmi/gridmanager-api/internal/application/inventory"
	"github.com/frankopalmi/gridmanager-api/internal/domain"
)

// InventoryHandler maneja ajustes manuales de stock y el ledger de movimientos (protegido).
type InventoryHandler struct {
	uc *inventory.AdjustmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.AdjustmentUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterAdjustment registra un ajuste manual (delta firmado, no cero).
// POST /api/inventory/adjustments
func (h *InventoryHandler) RegisterAdjustment(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	userID := GetUserID(c)
	var in dto.RegisterAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.Quantity == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y quantity distinto de cero son requeridos"})
	}
	if err := h.uc.RegisterAdjustment(c.Context(), tenantID, userID, in); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if err == domain.ErrInsufficientStock {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "el ajuste dejaría el stock negativo"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusCreated)
}

// ListMovements lista el ledger de stock del tenant, con filtro opcional ?product_id=.
// GET /api/inventory/movements
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	limit, offset := pageParams(c)
	productID := c.Query("product_id")
	out, err := h.uc.ListMovements(c.Context(), tenantID, productID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
