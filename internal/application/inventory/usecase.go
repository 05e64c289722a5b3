package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/frankopalmi/gridmanager-api/internal/application/dto"
	"github.com/frankopalmi/gridmanager-api/internal/domain"
	"github.com/frankopalmi/gridmanager-api/internal/domain/entity"
	"github.com/frankopalmi/gridmanager-api/internal/domain/repository"
)

// AdjustmentUseCase registra ajustes manuales de stock de forma transaccional:
// bloqueo de fila, mutación atómica y fila de ledger en la misma tx.
type AdjustmentUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{txRunner: txRunner, productRepo: productRepo, movRepo: movRepo}
}

// RegisterAdjustment aplica un delta firmado al stock de un producto.
// Un delta negativo que deje el stock por debajo de cero se rechaza.
func (uc *AdjustmentUseCase) RegisterAdjustment(ctx context.Context, tenantID, userID string, in dto.RegisterAdjustmentRequest) error {
	if in.ProductID == "" || in.Quantity == 0 {
		return domain.ErrInvalidInput
	}

	// Validar que el producto exista y sea del tenant
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}
	if product.TenantID != tenantID {
		return domain.ErrNotFound
	}

	now := time.Now()
	return uc.txRunner.RunInventory(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		locked, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if in.Quantity < 0 && locked.Stock+in.Quantity < 0 {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.AdjustStock(in.ProductID, in.Quantity); err != nil {
			return err
		}
		reference := in.Notes
		if reference == "" {
			reference = "ajuste manual"
		}
		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			TenantID:  tenantID,
			ProductID: in.ProductID,
			Type:      entity.MovementTypeADJUSTMENT,
			Quantity:  in.Quantity,
			Reference: reference,
			CreatedAt: now,
			CreatedBy: userID,
		}
		return movRepo.Create(mov)
	})
}

// ListMovements lista el ledger de stock del tenant, opcionalmente filtrado por producto.
func (uc *AdjustmentUseCase) ListMovements(ctx context.Context, tenantID, productID string, limit, offset int) ([]*dto.StockMovementResponse, error) {
	var list []*entity.StockMovement
	var err error
	if productID != "" {
		product, perr := uc.productRepo.GetByID(productID)
		if perr != nil || product == nil || product.TenantID != tenantID {
			return nil, domain.ErrNotFound
		}
		list, err = uc.movRepo.ListByProduct(productID, limit, offset)
	} else {
		list, err = uc.movRepo.ListByTenant(tenantID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, &dto.StockMovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reference: m.Reference,
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		})
	}
	return out, nil
}
