package purchases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frankopalmi/gridmanager-api/internal/application/dto"
	"github.com/frankopalmi/gridmanager-api/internal/domain"
	"github.com/frankopalmi/gridmanager-api/internal/domain/entity"
	"github.com/frankopalmi/gridmanager-api/internal/domain/repository"
	"github.com/frankopalmi/gridmanager-api/pkg/config"
)

// PurchaseUseCase crea y consulta compras y ejecuta sus transiciones de estado.
type PurchaseUseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	auditRepo    repository.AuditLogRepository
	system       config.SystemConfig
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditLogRepository,
	system config.SystemConfig,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		auditRepo:    auditRepo,
		system:       system,
	}
}

var oneHundred = decimal.NewFromInt(100)

// CreatePurchase crea una compra en DRAFT con totales calculados una sola vez.
func (uc *PurchaseUseCase) CreatePurchase(ctx context.Context, tenantID, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil || supplier == nil {
		return nil, domain.ErrNotFound
	}
	if supplier.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}

	productsByID := make(map[string]*entity.Product)
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		if product.TenantID != tenantID {
			return nil, domain.ErrNotFound
		}
		productsByID[item.ProductID] = product
	}

	now := time.Now()
	currency := in.Currency
	if currency == "" {
		currency = uc.system.DefaultCurrency
	}

	purchase := &entity.Purchase{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		Number:     fmt.Sprintf("C-%d", now.UnixNano()),
		SupplierID: in.SupplierID,
		Date:       now,
		Status:     entity.PurchaseStatusDraft,
		Currency:   currency,
		Notes:      in.Notes,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var subtotal, taxTotal decimal.Decimal
	for _, item := range in.Items {
		product := productsByID[item.ProductID]
		qty := decimal.NewFromInt(item.Quantity)
		lineSubtotal := item.UnitPrice.Mul(qty)
		lineTax := lineSubtotal.Mul(product.TaxRate).Div(oneHundred)
		subtotal = subtotal.Add(lineSubtotal)
		taxTotal = taxTotal.Add(lineTax)

		purchase.Items = append(purchase.Items, &entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TaxRate:    product.TaxRate,
			Subtotal:   lineSubtotal,
		})
	}
	purchase.Subtotal = subtotal
	purchase.TaxTotal = taxTotal
	purchase.Total = subtotal.Add(taxTotal)

	err = uc.txRunner.RunPurchases(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
		_ repository.SupplierRepository,
	) error {
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		for _, item := range purchase.Items {
			if err := purchaseRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toPurchaseResponse(purchase, supplier.Name), nil
}

// GetPurchase obtiene una compra con sus líneas.
func (uc *PurchaseUseCase) GetPurchase(ctx context.Context, tenantID, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil || purchase.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.purchaseRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	purchase.Items = items
	supplierName := ""
	if supplier, _ := uc.supplierRepo.GetByID(purchase.SupplierID); supplier != nil {
		supplierName = supplier.Name
	}
	return toPurchaseResponse(purchase, supplierName), nil
}

// ListPurchases lista compras del tenant con filtro opcional por estado.
func (uc *PurchaseUseCase) ListPurchases(ctx context.Context, tenantID string, status *string, limit, offset int) ([]*dto.PurchaseResponse, error) {
	if status != nil && !entity.ValidPurchaseStatus(*status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.purchaseRepo.ListByTenant(tenantID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPurchaseResponse(p, ""))
	}
	return out, nil
}

func toPurchaseResponse(purchase *entity.Purchase, supplierName string) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:           purchase.ID,
		Number:       purchase.Number,
		SupplierID:   purchase.SupplierID,
		SupplierName: supplierName,
		Date:         purchase.Date.Format("2006-01-02"),
		Status:       purchase.Status,
		Currency:     purchase.Currency,
		Subtotal:     purchase.Subtotal,
		TaxTotal:     purchase.TaxTotal,
		Total:        purchase.Total,
		Notes:        purchase.Notes,
		Items:        make([]dto.PurchaseItemResponse, 0, len(purchase.Items)),
	}
	for _, item := range purchase.Items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			TaxRate:   item.TaxRate,
			Subtotal:  item.Subtotal,
		})
	}
	return resp
}
