package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/frankopalmi/gridmanager-api/internal/application/dto"
	"github.com/frankopalmi/gridmanager-api/internal/domain"
	"github.com/frankopalmi/gridmanager-api/internal/domain/entity"
	"github.com/frankopalmi/gridmanager-api/internal/domain/repository"
)

// UpdateStatus aplica una transición de estado sobre la venta con sus efectos sobre
// stock y saldo del cliente, todo dentro de una transacción.
//
// Reglas:
//   - DRAFT → CONFIRMED: por cada línea descuenta stock, registra movimiento OUT con
//     cantidad negativa referenciando el número de venta, y suma el total al saldo del cliente.
//   - CONFIRMED → CANCELLED: revierte exactamente lo anterior (stock +, movimiento IN, saldo -).
//   - DRAFT → CANCELLED: solo cambia el estado, sin efectos.
//   - Pedir el estado actual, un valor desconocido o reabrir un estado terminal se rechaza
//     con ErrInvalidTransition. Los efectos se aplican a lo sumo una vez.
//
// La cabecera se bloquea con SELECT FOR UPDATE: dos transiciones concurrentes sobre la misma
// venta se serializan y la segunda ve el estado ya cambiado.
func (uc *SaleUseCase) UpdateStatus(ctx context.Context, tenantID, userID, saleID, requested string) (*dto.SaleResponse, error) {
	if !entity.ValidSaleStatus(requested) {
		return nil, domain.ErrInvalidTransition
	}

	var updated *entity.Sale
	var oldStatus string

	err := uc.txRunner.RunSales(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		customerRepo repository.CustomerRepository,
	) error {
		sale, err := saleRepo.GetByIDForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil || sale.TenantID != tenantID {
			return domain.ErrNotFound
		}
		if !entity.CanTransitionSale(sale.Status, requested) {
			return domain.ErrInvalidTransition
		}
		items, err := saleRepo.GetItems(saleID)
		if err != nil {
			return err
		}

		now := time.Now()
		switch {
		case requested == entity.SaleStatusConfirmed:
			// Solo alcanzable desde DRAFT: descuenta stock y suma saldo una única vez
			if err := uc.applyConfirm(productRepo, movRepo, sale, items, userID, now); err != nil {
				return err
			}
			if err := customerRepo.AdjustBalance(sale.CustomerID, sale.Total); err != nil {
				return err
			}
		case requested == entity.SaleStatusCancelled && sale.Status == entity.SaleStatusConfirmed:
			// Reversa exacta de la confirmación
			if err := uc.applyCancelConfirmed(productRepo, movRepo, sale, items, userID, now); err != nil {
				return err
			}
			if err := customerRepo.AdjustBalance(sale.CustomerID, sale.Total.Neg()); err != nil {
				return err
			}
			// DRAFT → CANCELLED: sin efectos sobre stock ni saldo
		}

		if err := saleRepo.UpdateStatus(saleID, requested, now); err != nil {
			return err
		}
		oldStatus = sale.Status
		sale.Status = requested
		sale.UpdatedAt = now
		sale.Items = items
		updated = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit(tenantID, userID, updated.ID, oldStatus, updated.Status)
	return toSaleResponse(updated, ""), nil
}

// applyConfirm descuenta stock por línea y registra un movimiento OUT por cada una.
// El producto se bloquea antes de verificar disponibilidad.
func (uc *SaleUseCase) applyConfirm(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	sale *entity.Sale,
	items []*entity.SaleItem,
	userID string,
	now time.Time,
) error {
	for _, item := range items {
		product, err := productRepo.GetForUpdate(item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Stock < item.Quantity {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.AdjustStock(item.ProductID, -item.Quantity); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			TenantID:  sale.TenantID,
			ProductID: item.ProductID,
			Type:      entity.MovementTypeOUT,
			Quantity:  -item.Quantity,
			Reference: sale.Number,
			CreatedAt: now,
			CreatedBy: userID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
	}
	return nil
}

// applyCancelConfirmed devuelve el stock y registra movimientos IN por cada línea.
func (uc *SaleUseCase) applyCancelConfirmed(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	sale *entity.Sale,
	items []*entity.SaleItem,
	userID string,
	now time.Time,
) error {
	for _, item := range items {
		product, err := productRepo.GetForUpdate(item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := productRepo.AdjustStock(item.ProductID, item.Quantity); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			TenantID:  sale.TenantID,
			ProductID: item.ProductID,
			Type:      entity.MovementTypeIN,
			Quantity:  item.Quantity,
			Reference: sale.Number,
			CreatedAt: now,
			CreatedBy: userID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
	}
	return nil
}

// audit registra la transición en el log de auditoría. Es best effort: un fallo acá
// no revierte la transición ya commiteada, solo se loguea.
func (uc *SaleUseCase) audit(tenantID, userID, saleID, oldStatus, newStatus string) {
	entry := &entity.AuditLog{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		UserID:     userID,
		Action:     "sale.status",
		EntityType: "sale",
		EntityID:   saleID,
		OldValue:   oldStatus,
		NewValue:   newStatus,
		CreatedAt:  time.Now(),
	}
	if err := uc.auditRepo.Create(entry); err != nil {
		log.Warn().Err(err).Str("sale_id", saleID).Msg("no se pudo registrar la auditoría")
	}
}
