package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankopalmi/gridmanager-api/internal/application/dto"
	"github.com/frankopalmi/gridmanager-api/internal/application/sales"
	"github.com/frankopalmi/gridmanager-api/internal/domain"
	"github.com/frankopalmi/gridmanager-api/internal/domain/entity"
	"github.com/frankopalmi/gridmanager-api/internal/domain/repository"
	"github.com/frankopalmi/gridmanager-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// memStore guarda todo el estado compartido por los repos fake.
type memStore struct {
	sales     map[string]*entity.Sale
	items     map[string][]*entity.SaleItem
	products  map[string]*entity.Product
	customers map[string]*entity.Customer
	movements []*entity.StockMovement
	audits    []*entity.AuditLog
}

func newMemStore() *memStore {
	return &memStore{
		sales:     map[string]*entity.Sale{},
		items:     map[string][]*entity.SaleItem{},
		products:  map[string]*entity.Product{},
		customers: map[string]*entity.Customer{},
	}
}

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}
func (r *memSaleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	r.s.items[item.SaleID] = append(r.s.items[item.SaleID], &cp)
	return nil
}
func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}
func (r *memSaleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) { return r.GetByID(id) }
func (r *memSaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	return r.s.items[saleID], nil
}
func (r *memSaleRepo) ListByTenant(tenantID string, status *string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.s.sales {
		if s.TenantID != tenantID {
			continue
		}
		if status != nil && s.Status != *status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
func (r *memSaleRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	sale, ok := r.s.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	sale.Status = status
	sale.UpdatedAt = updatedAt
	return nil
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *memProductRepo) GetByTenantAndSKU(tenantID, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.TenantID == tenantID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *memProductRepo) Update(p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }
func (r *memProductRepo) AdjustStock(id string, delta int64) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += delta
	return nil
}

type memCustomerRepo struct{ s *memStore }

func (r *memCustomerRepo) Create(c *entity.Customer) error {
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}
func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}
func (r *memCustomerRepo) GetByTenantAndTaxID(tenantID, taxID string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.TenantID == tenantID && c.TaxID == taxID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *memCustomerRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *memCustomerRepo) Update(c *entity.Customer) error {
	if _, ok := r.s.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}
func (r *memCustomerRepo) Delete(id string) error {
	delete(r.s.customers, id)
	return nil
}
func (r *memCustomerRepo) AdjustBalance(id string, delta decimal.Decimal) error {
	c, ok := r.s.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.CurrentBalance = c.CurrentBalance.Add(delta)
	return nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}
func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *memMovementRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.TenantID == tenantID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memAuditRepo struct{ s *memStore }

func (r *memAuditRepo) Create(l *entity.AuditLog) error {
	cp := *l
	r.s.audits = append(r.s.audits, &cp)
	return nil
}
func (r *memAuditRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.AuditLog, error) {
	return r.s.audits, nil
}

// memTxRunner ejecuta el callback directamente sobre los repos en memoria.
// No simula rollback: los tests que esperan error usan escenarios de una sola línea.
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) RunSales(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return fn(&memSaleRepo{r.s}, &memProductRepo{r.s}, &memMovementRepo{r.s}, &memCustomerRepo{r.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	tenantA  = "tenant-a"
	tenantB  = "tenant-b"
	userTest = "user-1"
)

func testSystem() config.SystemConfig {
	return config.SystemConfig{
		DefaultCurrency:   "ARS",
		DefaultTaxRate:    decimal.NewFromInt(21),
		LowStockThreshold: 5,
	}
}

func newTestUseCase(s *memStore) *sales.SaleUseCase {
	return sales.NewSaleUseCase(
		&memTxRunner{s},
		&memSaleRepo{s},
		&memCustomerRepo{s},
		&memProductRepo{s},
		&memAuditRepo{s},
		testSystem(),
	)
}

func seedCustomer(s *memStore) *entity.Customer {
	c := &entity.Customer{ID: "cust-1", TenantID: tenantA, Name: "Ferretería Sur", TaxID: "20-11111111-1"}
	s.customers[c.ID] = c
	return c
}

func seedProduct(s *memStore, id string, price float64, taxRate float64, stock int64) *entity.Product {
	p := &entity.Product{
		ID:       id,
		TenantID: tenantA,
		SKU:      "SKU-" + id,
		Name:     "Producto " + id,
		Price:    decimal.NewFromFloat(price),
		TaxRate:  decimal.NewFromFloat(taxRate),
		Stock:    stock,
	}
	s.products[p.ID] = p
	return p
}

// createDraftSale crea una venta DRAFT vía el caso de uso y devuelve su ID.
func createDraftSale(t *testing.T, uc *sales.SaleUseCase, items []dto.SaleItemRequest) string {
	t.Helper()
	out, err := uc.CreateSale(context.Background(), tenantA, userTest, dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Items:      items,
	})
	require.NoError(t, err)
	require.Equal(t, entity.SaleStatusDraft, out.Status)
	return out.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones: confirmación
// ──────────────────────────────────────────────────────────────────────────────

// Confirmar una venta descuenta stock por línea, registra movimientos OUT con
// cantidad negativa referenciando el número de venta, y suma el total al saldo del cliente.
func TestUpdateStatus_ConfirmarAplicaEfectos(t *testing.T) {
	s := newMemStore()
	seedCustomer(s)
	seedProduct(s, "prod-1", 100, 21, 10)
	seedProduct(s, "prod-2", 50, 21, 4)
	uc := newTestUseCase(s)

	// 2 x $100 + 1 x $50 = $250 neto, IVA 21% = $52.50, total $302.50
	saleID := createDraftSale(t, uc, []dto.SaleItemRequest{
		{ProductID: "prod-1", Quantity: 2},
		{ProductID: "prod-2", Quantity: 1},
	})

	out, err := uc.UpdateStatus(context.Background(), tenantA, userTest, saleID, entity.SaleStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusConfirmed, out.Status)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("302.5")), "total %s", out.Total)

	// Stock descontado por línea
	assert.Equal(t, int64(8), s.products["prod-1"].Stock)
	assert.Equal(t, int64(3), s.products["prod-2"].Stock)

	// Un movimiento OUT por línea, cantidad negativa, referencia al número de venta
	require.Len(t, s.movements, 2)
	number := s.sales[saleID].Number
	for _, m := range s.movements {
		assert.Equal(t, entity.MovementTypeOUT, m.Type)
		assert.Negative(t, m.Quantity)
		assert.Equal(t, number, m.Reference)
		assert.Equal(t, userTest, m.CreatedBy)
	}

	// Saldo del cliente sube por el total
	assert.True(t, s.customers["cust-1"].CurrentBalance.Equal(decimal.RequireFromString("302.5")))

	// Auditoría best effort registrada
	require.Len(t, s.audits, 1)
	assert.Equal(t, entity.SaleStatusDraft, s.audits[0].OldValue)
	assert.Equal(t, entity.SaleStatusConfirmed, s.audits[0].NewValue)
}

// Confirmar con stock insuficiente falla con ErrInsufficientStock y no deja efectos.
func TestUpdateStatus_ConfirmarSinStock(t *testing.T) {
	s := newMemStore()
	seedCustomer(s)
	seedProduct(s, "prod-1", 100, 21, 1)
	uc := newTestUseCase(s)

	saleID := createDraftSale(t, uc, []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 5}})

	_, err := uc.UpdateStatus(context.Background(), tenantA, userTest, saleID, entity.SaleStatusConfirmed)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada cambió: la venta sigue en DRAFT, stock y saldo intactos, ledger vacío
	assert.Equal(t, entity.SaleStatusDraft, s.sales[saleID].Status)
	assert.Equal(t, int64(1), s.products["prod-1"].Stock)
	assert.True(t, s.customers["cust-1"].CurrentBalance.IsZero())
	assert.Empty(t, s.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones: cancelación
// ──────────────────────────────────────────────────────────────────────────────

// Confirmar y luego cancelar restaura stock y saldo exactamente al estado inicial,
// dejando el rastro completo en el ledger (OUT + IN por línea).
func TestUpdateStatus_ConfirmarYCancelarRestaura(t *testing.T) {
	s := newMemStore()
	seedCustomer(s)
	seedProduct(s, "prod-1", 100, 21, 10)
	uc := newTestUseCase(s)

	saleID := createDraftSale(t, uc, []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 3}})

	_, err := uc.UpdateStatus(context.Background(), tenantA, userTest, saleID, entity.SaleStatusConfirmed)
	require.NoError(t, err)
	out, err := uc.UpdateStatus(context.Background(), tenantA, userTest, saleID, entity.SaleStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, out.Status)

	assert.Equal(t, int64(10), s.products["prod-1"].Stock, "el stock vuelve al valor inicial")
	assert.True(t, s.customers["cust-1"].CurrentBalance.IsZero(), "el saldo vuelve a cero")

	// El ledger conserva ambos movimientos: no se borra, se compensa
	require.Len(t, s.movements, 2)
	assert.Equal(t, entity.MovementTypeOUT, s.movements[0].Type)
	assert.Equal(t, int64(-3), s.movements[0].Quantity)
	assert.Equal(t, entity.MovementTypeIN, s.movements[1].Type)
	assert.Equal(t, int64(3), s.movements[1].Quantity)
}

// Cancelar desde DRAFT solo cambia el estado: sin movimientos ni saldo.
func TestUpdateStatus_CancelarDraftSinEfectos(t *testing.T) {
	s := newMemStore()
	seedCustomer(s)
	seedProduct(s, "prod-1", 100, 21, 10)
	uc := newTestUseCase(s)

	saleID := createDraftSale(t, uc, []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 2}})

	out, err := uc.UpdateStatus(context.Background(), tenantA, userTest, saleID, entity.SaleStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, out.Status)
	assert.Equal(t, int64(10), s.products["prod-1"].Stock)
	assert.True(t, s.customers["cust-1"].CurrentBalance.IsZero())
	assert.Empty(t, s.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones inválidas
// ──────────────────────────────────────────────────────────────────────────────

// Pedir el estado actual se rechaza, incluso si la transición "de ida" sería legal.
func TestUpdateStatus_NoOpRechazado(t *testing.T) {
	s := newMemStore()
	seedCustomer(s)
	seedProduct(s, "prod-1", 100, 21, 10)
	uc := newTestUseCase(s)

	saleID := createDraftSale(t, uc, []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 1}})

	_, err := uc.UpdateStatus(context.Background(), tenantA, userTest, saleID, entity.SaleStatusDraft)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Confirmar dos veces aplica los efectos una sola vez: la segunda es rechazada.
func TestUpdateStatus_DobleConfirmacionRechazada(t *testing.T) {
	s := newMemStore()
	seedCustomer(s)
	seedProduct(s, "prod-1", 100, 21, 10)
	uc := newTestUseCase(s)

	saleID := createDraftSale(t, uc, []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 2}})

	_, err := uc.UpdateStatus(context.Background(), tenantA, userTest, saleID, entity.SaleStatusConfirmed)
	require.NoError(t, err)
	_, err = uc.UpdateStatus(context.Background(), tenantA, userTest, saleID, entity.SaleStatusConfirmed)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Efectos exactamente una vez
	assert.Equal(t, int64(8), s.products["prod-1"].Stock)
	require.Len(t, s.movements, 1)
	assert.True(t, s.customers["cust-1"].CurrentBalance.Equal(decimal.RequireFromString("242")))
}

// CANCELLED es terminal: no se puede confirmar ni volver a DRAFT.
func TestUpdateStatus_CanceladaEsTerminal(t *testing.T) {
	s := newMemStore()
	seedCustomer(s)
	seedProduct(s, "prod-1", 100, 21, 10)
	uc := newTestUseCase(s)

	saleID := createDraftSale(t, uc, []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 1}})
	_, err := uc.UpdateStatus(context.Background(), tenantA, userTest, saleID, entity.SaleStatusCancelled)
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), tenantA, userTest, saleID, entity.SaleStatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = uc.UpdateStatus(context.Background(), tenantA, userTest, saleID, entity.SaleStatusDraft)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Reabrir una venta confirmada (CONFIRMED → DRAFT) se rechaza.
func TestUpdateStatus_ReaperturaRechazada(t *testing.T) {
	s := newMemStore()
	seedCustomer(s)
	seedProduct(s, "prod-1", 100, 21, 10)
	uc := newTestUseCase(s)

	saleID := createDraftSale(t, uc, []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 1}})
	_, err := uc.UpdateStatus(context.Background(), tenantA, userTest, saleID, entity.SaleStatusConfirmed)
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), tenantA, userTest, saleID, entity.SaleStatusDraft)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Un estado desconocido se rechaza antes de tocar la base.
func TestUpdateStatus_EstadoDesconocido(t *testing.T) {
	s := newMemStore()
	uc := newTestUseCase(s)

	_, err := uc.UpdateStatus(context.Background(), tenantA, userTest, "sale-x", "SHIPPED")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento por tenant
// ──────────────────────────────────────────────────────────────────────────────

// Una venta de otro tenant devuelve ErrNotFound, sin filtrar que el recurso existe.
func TestUpdateStatus_OtroTenantEsNotFound(t *testing.T) {
	s := newMemStore()
	seedCustomer(s)
	seedProduct(s, "prod-1", 100, 21, 10)
	uc := newTestUseCase(s)

	saleID := createDraftSale(t, uc, []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 1}})

	_, err := uc.UpdateStatus(context.Background(), tenantB, userTest, saleID, entity.SaleStatusConfirmed)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, entity.SaleStatusDraft, s.sales[saleID].Status)
}
