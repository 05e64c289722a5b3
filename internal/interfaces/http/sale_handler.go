package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frankopalmi/gridmanager-api/internal/application/dto"
	"github.com/frankopalmi/gridmanager-api/internal/application/sales"
	"github.com/frankopalmi/gridmanager-api/internal/domain"
)

// SaleHandler maneja las peticiones HTTP de ventas (protegido).
type SaleHandler struct {
	uc    *sales.SaleUseCase
	pdfUC *sales.PDFUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase, pdfUC *sales.PDFUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, pdfUC: pdfUC}
}

// Create crea una venta en estado DRAFT. No toca stock ni saldos.
// POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	userID := GetUserID(c)
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateSale(c.Context(), tenantID, userID, in)
	if err != nil {
		return saleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una venta con sus líneas.
// GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	out, err := h.uc.GetSale(c.Context(), tenantID, c.Params("id"))
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(out)
}

// List lista ventas del tenant, con filtro opcional ?status=.
// GET /api/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	limit, offset := pageParams(c)
	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}
	out, err := h.uc.ListSales(c.Context(), tenantID, status, limit, offset)
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus transiciona el estado de la venta. Es el punto de entrada
// del manejador de transiciones: confirma (descuenta stock, sube saldo del
// cliente) o cancela (revierte) en una sola transacción.
// PATCH /api/sales/:id/status
func (h *SaleHandler) UpdateStatus(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	userID := GetUserID(c)
	var in dto.UpdateSaleStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStatus(c.Context(), tenantID, userID, c.Params("id"), in.Status)
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(out)
}

// Receipt genera el comprobante PDF de la venta.
// GET /api/sales/:id/pdf
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	pdfBytes, err := h.pdfUC.GenerateReceipt(c.Context(), tenantID, c.Params("id"))
	if err != nil {
		return saleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="comprobante.pdf"`)
	return c.Send(pdfBytes)
}

// saleError mapea errores de dominio a códigos HTTP.
func saleError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case domain.ErrInvalidTransition:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
