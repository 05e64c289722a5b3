package sales

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

// SaleUseCase crea y consulta ventas y ejecuta sus transiciones de estado.
// Toda mutación de stock y saldo corre dentro de una transacción (TxRunner).
type SaleUseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	auditRepo    repository.AuditLogRepository
	system       config.SystemConfig
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditLogRepository,
	system config.SystemConfig,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		auditRepo:    auditRepo,
		system:       system,
	}
}

var oneHundred = decimal.NewFromInt(100)

// CreateSale crea una venta en DRAFT. Los totales (subtotal, impuestos, total) se calculan
// acá, una sola vez; las transiciones de estado no los recalculan.
func (uc *SaleUseCase) CreateSale(ctx context.Context, tenantID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Validar cliente y que sea del tenant
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}

	// Validar productos y precios (fuera de la tx, solo lectura)
	productsByID := make(map[string]*entity.Product)
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || item.Quantity <= 0 {
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
		if item.UnitPrice != nil && item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	currency := in.Currency
	if currency == "" {
		currency = uc.system.DefaultCurrency
	}

	sale := &entity.Sale{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		Number:     fmt.Sprintf("V-%d", now.UnixNano()),
		CustomerID: in.CustomerID,
		Date:       now,
		Status:     entity.SaleStatusDraft,
		Currency:   currency,
		Notes:      in.Notes,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Impuesto por línea: precio * cantidad * tasa/100. La tasa viene del producto.
	var subtotal, taxTotal decimal.Decimal
	for _, item := range in.Items {
		product := productsByID[item.ProductID]
		unitPrice := product.Price
		if item.UnitPrice != nil {
			unitPrice = *item.UnitPrice
		}
		qty := decimal.NewFromInt(item.Quantity)
		lineSubtotal := unitPrice.Mul(qty)
		lineTax := lineSubtotal.Mul(product.TaxRate).Div(oneHundred)
		subtotal = subtotal.Add(lineSubtotal)
		taxTotal = taxTotal.Add(lineTax)

		sale.Items = append(sale.Items, &entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			TaxRate:   product.TaxRate,
			Subtotal:  lineSubtotal,
		})
	}
	sale.Subtotal = subtotal
	sale.TaxTotal = taxTotal
	sale.Total = subtotal.Add(taxTotal)

	// Persistir cabecera y líneas en una sola transacción
	err = uc.txRunner.RunSales(ctx, func(
		saleRepo repository.SaleRepository,
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
		_ repository.CustomerRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range sale.Items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toSaleResponse(sale, customer.Name), nil
}

// GetSale obtiene una venta con sus líneas.
func (uc *SaleUseCase) GetSale(ctx context.Context, tenantID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(sale.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return toSaleResponse(sale, customerName), nil
}

// ListSales lista ventas del tenant con filtro opcional por estado.
func (uc *SaleUseCase) ListSales(ctx context.Context, tenantID string, status *string, limit, offset int) ([]*dto.SaleResponse, error) {
	if status != nil && !entity.ValidSaleStatus(*status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.saleRepo.ListByTenant(tenantID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s, ""))
	}
	return out, nil
}

func toSaleResponse(sale *entity.Sale, customerName string) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:           sale.ID,
		Number:       sale.Number,
		CustomerID:   sale.CustomerID,
		CustomerName: customerName,
		Date:         sale.Date.Format("2006-01-02"),
		Status:       sale.Status,
		Currency:     sale.Currency,
		Subtotal:     sale.Subtotal,
		TaxTotal:     sale.TaxTotal,
		Total:        sale.Total,
		Notes:        sale.Notes,
		Items:        make([]dto.SaleItemResponse, 0, len(sale.Items)),
	}
	for _, item := range sale.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
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
