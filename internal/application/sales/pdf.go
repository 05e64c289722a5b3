package sales

import (
	"context"

	"github.com/frankopalmi/gridmanager-api/internal/domain"
	"github.com/frankopalmi/gridmanager-api/internal/domain/repository"
)

// PDFUseCase genera el comprobante PDF de una venta.
type PDFUseCase struct {
	saleRepo     repository.SaleRepository
	tenantRepo   repository.TenantRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	generator    ReceiptGenerator
}

// NewPDFUseCase construye el caso de uso de PDF.
func NewPDFUseCase(
	saleRepo repository.SaleRepository,
	tenantRepo repository.TenantRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	generator ReceiptGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		saleRepo:     saleRepo,
		tenantRepo:   tenantRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// GenerateReceipt arma los datos de la venta y delega en el generador Maroto.
func (uc *PDFUseCase) GenerateReceipt(ctx context.Context, tenantID, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItems(saleID)
	if err != nil {
		return nil, err
	}
	sale.Items = items

	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil || tenant == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(sale.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}

	lines := make([]ReceiptLine, 0, len(items))
	for _, it := range items {
		// Si el producto ya no existe se imprime el ID como descripción.
		desc := it.ProductID
		if product, err := uc.productRepo.GetByID(it.ProductID); err == nil && product != nil {
			desc = product.Name
		}
		lines = append(lines, ReceiptLine{
			Description: desc,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Subtotal:    it.Subtotal,
		})
	}

	return uc.generator.GenerateSaleReceipt(ctx, sale, tenant, customer, lines)
}
