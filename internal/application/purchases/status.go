package purchases

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

// UpdateStatus aplica una transición de estado sobre la compra dentro de una transacción.
//
// Reglas:
//   - DRAFT → RECEIVED: por cada línea suma stock, registra movimiento IN referenciando
//     el número de compra, y suma el total al saldo del proveedor.
//   - RECEIVED → CANCELLED: revierte exactamente lo anterior (stock -, movimiento OUT, saldo -).
//   - DRAFT → CANCELLED: solo cambia el estado, sin efectos.
//   - Pedir el estado actual, un valor desconocido o reabrir un estado terminal se rechaza
//     con ErrInvalidTransition.
func (uc *PurchaseUseCase) UpdateStatus(ctx context.Context, tenantID, userID, purchaseID, requested string) (*dto.PurchaseResponse, error) {
	if !entity.ValidPurchaseStatus(requested) {
		return nil, domain.ErrInvalidTransition
	}

	var updated *entity.Purchase
	var oldStatus string

	err := uc.txRunner.RunPurchases(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		supplierRepo repository.SupplierRepository,
	) error {
		purchase, err := purchaseRepo.GetByIDForUpdate(purchaseID)
		if err != nil {
			return err
		}
		if purchase == nil || purchase.TenantID != tenantID {
			return domain.ErrNotFound
		}
		if !entity.CanTransitionPurchase(purchase.Status, requested) {
			return domain.ErrInvalidTransition
		}
		items, err := purchaseRepo.GetItems(purchaseID)
		if err != nil {
			return err
		}

		now := time.Now()
		switch {
		case requested == entity.PurchaseStatusReceived:
			// Solo alcanzable desde DRAFT: ingresa mercadería y suma deuda al proveedor
			if err := uc.applyReceive(productRepo, movRepo, purchase, items, userID, now); err != nil {
				return err
			}
			if err := supplierRepo.AdjustBalance(purchase.SupplierID, purchase.Total); err != nil {
				return err
			}
		case requested == entity.PurchaseStatusCancelled && purchase.Status == entity.PurchaseStatusReceived:
			// Reversa exacta de la recepción
			if err := uc.applyCancelReceived(productRepo, movRepo, purchase, items, userID, now); err != nil {
				return err
			}
			if err := supplierRepo.AdjustBalance(purchase.SupplierID, purchase.Total.Neg()); err != nil {
				return err
			}
			// DRAFT → CANCELLED: sin efectos sobre stock ni saldo
		}

		if err := purchaseRepo.UpdateStatus(purchaseID, requested, now); err != nil {
			return err
		}
		oldStatus = purchase.Status
		purchase.Status = requested
		purchase.UpdatedAt = now
		purchase.Items = items
		updated = purchase
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit(tenantID, userID, updated.ID, oldStatus, updated.Status)
	return toPurchaseResponse(updated, ""), nil
}

// applyReceive suma stock por línea y registra un movimiento IN por cada una.
func (uc *PurchaseUseCase) applyReceive(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	purchase *entity.Purchase,
	items []*entity.PurchaseItem,
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
			TenantID:  purchase.TenantID,
			ProductID: item.ProductID,
			Type:      entity.MovementTypeIN,
			Quantity:  item.Quantity,
			Reference: purchase.Number,
			CreatedAt: now,
			CreatedBy: userID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
	}
	return nil
}

// applyCancelReceived descuenta el stock ingresado y registra movimientos OUT.
func (uc *PurchaseUseCase) applyCancelReceived(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	purchase *entity.Purchase,
	items []*entity.PurchaseItem,
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
			TenantID:  purchase.TenantID,
			ProductID: item.ProductID,
			Type:      entity.MovementTypeOUT,
			Quantity:  -item.Quantity,
			Reference: purchase.Number,
			CreatedAt: now,
			CreatedBy: userID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
	}
	return nil
}

// audit registra la transición, best effort.
func (uc *PurchaseUseCase) audit(tenantID, userID, purchaseID, oldStatus, newStatus string) {
	entry := &entity.AuditLog{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		UserID:     userID,
		Action:     "purchase.status",
		EntityType: "purchase",
		EntityID:   purchaseID,
		OldValue:   oldStatus,
		NewValue:   newStatus,
		CreatedAt:  time.Now(),
	}
	if err := uc.auditRepo.Create(entry); err != nil {
		log.Warn().Err(err).Str("purchase_id", purchaseID).Msg("no se pudo registrar la auditoría")
	}
}
