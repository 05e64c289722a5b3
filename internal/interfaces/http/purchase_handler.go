package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frankopalmi/gridmanager-api/internal/application/dto"
	"github.com/frankopalmi/gridmanager-api/internal/application/purchases"
)

// PurchaseHandler maneja las peticiones HTTP de compras (protegido).
type PurchaseHandler struct {
	uc *purchases.PurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchases.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create crea una compra en estado DRAFT.
// POST /api/purchases
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	userID := GetUserID(c)
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreatePurchase(c.Context(), tenantID, userID, in)
	if err != nil {
		return saleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una compra con sus líneas.
// GET /api/purchases/:id
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	out, err := h.uc.GetPurchase(c.Context(), tenantID, c.Params("id"))
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(out)
}

// List lista compras del tenant, con filtro opcional ?status=.
// GET /api/purchases
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	limit, offset := pageParams(c)
	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}
	out, err := h.uc.ListPurchases(c.Context(), tenantID, status, limit, offset)
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus transiciona el estado de la compra: recibir suma stock y
// saldo del proveedor, cancelar desde RECEIVED revierte ambos.
// PATCH /api/purchases/:id/status
func (h *PurchaseHandler) UpdateStatus(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	userID := GetUserID(c)
	var in dto.UpdatePurchaseStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStatus(c.Context(), tenantID, userID, c.Params("id"), in.Status)
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(out)
}
