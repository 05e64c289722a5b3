package purchases_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankopalmi/gridmanager-api/internal/application/dto"
	"github.com/frankopalmi/gridmanager-api/internal/application/purchases"
	"github.com/frankopalmi/gridmanager-api/internal/domain"
	"github.com/frankopalmi/gridmanager-api/internal/domain/entity"
	"github.com/frankopalmi/gridmanager-api/internal/domain/repository"
	"github.com/frankopalmi/gridmanager-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	purchases map[string]*entity.Purchase
	items     map[string][]*entity.PurchaseItem
	products  map[string]*entity.Product
	suppliers map[string]*entity.Supplier
	movements []*entity.StockMovement
	audits    []*entity.AuditLog
}

func newMemStore() *memStore {
	return &memStore{
		purchases: map[string]*entity.Purchase{},
		items:     map[string][]*entity.PurchaseItem{},
		products:  map[string]*entity.Product{},
		suppliers: map[string]*entity.Supplier{},
	}
}

type memPurchaseRepo struct{ s *memStore }

func (r *memPurchaseRepo) Create(p *entity.Purchase) error {
	cp := *p
	r.s.purchases[p.ID] = &cp
	return nil
}
func (r *memPurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	cp := *item
	r.s.items[item.PurchaseID] = append(r.s.items[item.PurchaseID], &cp)
	return nil
}
func (r *memPurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *memPurchaseRepo) GetByIDForUpdate(id string) (*entity.Purchase, error) { return r.GetByID(id) }
func (r *memPurchaseRepo) GetItems(purchaseID string) ([]*entity.PurchaseItem, error) {
	return r.s.items[purchaseID], nil
}
func (r *memPurchaseRepo) ListByTenant(tenantID string, status *string, limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.s.purchases {
		if p.TenantID != tenantID {
			continue
		}
		if status != nil && p.Status != *status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
func (r *memPurchaseRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	p, ok := r.s.purchases[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = updatedAt
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
	return nil, nil
}
func (r *memProductRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) Update(p *entity.Product) error                  { return nil }
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }
func (r *memProductRepo) AdjustStock(id string, delta int64) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += delta
	return nil
}

type memSupplierRepo struct{ s *memStore }

func (r *memSupplierRepo) Create(sp *entity.Supplier) error {
	cp := *sp
	r.s.suppliers[sp.ID] = &cp
	return nil
}
func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *sp
	return &cp, nil
}
func (r *memSupplierRepo) GetByTenantAndTaxID(tenantID, taxID string) (*entity.Supplier, error) {
	return nil, nil
}
func (r *memSupplierRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Supplier, error) {
	return nil, nil
}
func (r *memSupplierRepo) Update(sp *entity.Supplier) error { return nil }
func (r *memSupplierRepo) Delete(id string) error           { return nil }
func (r *memSupplierRepo) AdjustBalance(id string, delta decimal.Decimal) error {
	sp, ok := r.s.suppliers[id]
	if !ok {
		return domain.ErrNotFound
	}
	sp.CurrentBalance = sp.CurrentBalance.Add(delta)
	return nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}
func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *memMovementRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.StockMovement, error) {
	return r.s.movements, nil
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

type memTxRunner struct{ s *memStore }

func (r *memTxRunner) RunPurchases(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	return fn(&memPurchaseRepo{r.s}, &memProductRepo{r.s}, &memMovementRepo{r.s}, &memSupplierRepo{r.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	tenantA  = "tenant-a"
	tenantB  = "tenant-b"
	userTest = "user-1"
)

func newTestUseCase(s *memStore) *purchases.PurchaseUseCase {
	return purchases.NewPurchaseUseCase(
		&memTxRunner{s},
		&memPurchaseRepo{s},
		&memSupplierRepo{s},
		&memProductRepo{s},
		&memAuditRepo{s},
		config.SystemConfig{DefaultCurrency: "ARS", DefaultTaxRate: decimal.NewFromInt(21)},
	)
}

func seedSupplier(s *memStore) {
	s.suppliers["sup-1"] = &entity.Supplier{ID: "sup-1", TenantID: tenantA, Name: "Distribuidora Norte"}
}

func seedProduct(s *memStore, id string, taxRate float64, stock int64) {
	s.products[id] = &entity.Product{
		ID:       id,
		TenantID: tenantA,
		Name:     "Producto " + id,
		TaxRate:  decimal.NewFromFloat(taxRate),
		Stock:    stock,
	}
}

func createDraftPurchase(t *testing.T, uc *purchases.PurchaseUseCase, items []dto.PurchaseItemRequest) string {
	t.Helper()
	out, err := uc.CreatePurchase(context.Background(), tenantA, userTest, dto.CreatePurchaseRequest{
		SupplierID: "sup-1",
		Items:      items,
	})
	require.NoError(t, err)
	require.Equal(t, entity.PurchaseStatusDraft, out.Status)
	return out.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones
// ──────────────────────────────────────────────────────────────────────────────

// Recibir una compra suma stock, registra movimientos IN y sube la deuda con el proveedor.
func TestUpdateStatus_RecibirAplicaEfectos(t *testing.T) {
	s := newMemStore()
	seedSupplier(s)
	seedProduct(s, "prod-1", 21, 5)
	uc := newTestUseCase(s)

	// 10 x $40 = 400 neto, IVA 21% = 84, total 484
	purchaseID := createDraftPurchase(t, uc, []dto.PurchaseItemRequest{
		{ProductID: "prod-1", Quantity: 10, UnitPrice: decimal.RequireFromString("40")},
	})

	out, err := uc.UpdateStatus(context.Background(), tenantA, userTest, purchaseID, entity.PurchaseStatusReceived)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusReceived, out.Status)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("484")), "total %s", out.Total)

	assert.Equal(t, int64(15), s.products["prod-1"].Stock)
	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.MovementTypeIN, s.movements[0].Type)
	assert.Equal(t, int64(10), s.movements[0].Quantity)
	assert.Equal(t, s.purchases[purchaseID].Number, s.movements[0].Reference)
	assert.True(t, s.suppliers["sup-1"].CurrentBalance.Equal(decimal.RequireFromString("484")))
}

// Cancelar una compra recibida revierte stock y deuda; el ledger compensa con OUT.
func TestUpdateStatus_CancelarRecibidaRevierte(t *testing.T) {
	s := newMemStore()
	seedSupplier(s)
	seedProduct(s, "prod-1", 21, 5)
	uc := newTestUseCase(s)

	purchaseID := createDraftPurchase(t, uc, []dto.PurchaseItemRequest{
		{ProductID: "prod-1", Quantity: 10, UnitPrice: decimal.RequireFromString("40")},
	})
	_, err := uc.UpdateStatus(context.Background(), tenantA, userTest, purchaseID, entity.PurchaseStatusReceived)
	require.NoError(t, err)

	out, err := uc.UpdateStatus(context.Background(), tenantA, userTest, purchaseID, entity.PurchaseStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusCancelled, out.Status)

	assert.Equal(t, int64(5), s.products["prod-1"].Stock, "el stock vuelve al valor inicial")
	assert.True(t, s.suppliers["sup-1"].CurrentBalance.IsZero(), "la deuda vuelve a cero")
	require.Len(t, s.movements, 2)
	assert.Equal(t, entity.MovementTypeOUT, s.movements[1].Type)
	assert.Equal(t, int64(-10), s.movements[1].Quantity)
}

// Si la mercadería recibida ya salió (stock insuficiente), la cancelación se rechaza.
func TestUpdateStatus_CancelarRecibidaSinStock(t *testing.T) {
	s := newMemStore()
	seedSupplier(s)
	seedProduct(s, "prod-1", 21, 0)
	uc := newTestUseCase(s)

	purchaseID := createDraftPurchase(t, uc, []dto.PurchaseItemRequest{
		{ProductID: "prod-1", Quantity: 10, UnitPrice: decimal.RequireFromString("40")},
	})
	_, err := uc.UpdateStatus(context.Background(), tenantA, userTest, purchaseID, entity.PurchaseStatusReceived)
	require.NoError(t, err)

	// Simular que la mercadería se vendió entre medio
	s.products["prod-1"].Stock = 3

	_, err = uc.UpdateStatus(context.Background(), tenantA, userTest, purchaseID, entity.PurchaseStatusCancelled)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, entity.PurchaseStatusReceived, s.purchases[purchaseID].Status)
}

// Cancelar desde DRAFT no tiene efectos.
func TestUpdateStatus_CancelarDraftSinEfectos(t *testing.T) {
	s := newMemStore()
	seedSupplier(s)
	seedProduct(s, "prod-1", 21, 5)
	uc := newTestUseCase(s)

	purchaseID := createDraftPurchase(t, uc, []dto.PurchaseItemRequest{
		{ProductID: "prod-1", Quantity: 2, UnitPrice: decimal.RequireFromString("40")},
	})

	out, err := uc.UpdateStatus(context.Background(), tenantA, userTest, purchaseID, entity.PurchaseStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusCancelled, out.Status)
	assert.Equal(t, int64(5), s.products["prod-1"].Stock)
	assert.True(t, s.suppliers["sup-1"].CurrentBalance.IsZero())
	assert.Empty(t, s.movements)
}

// Recibir dos veces aplica efectos una sola vez; reabrir o pedir el estado actual se rechaza.
func TestUpdateStatus_TransicionesInvalidas(t *testing.T) {
	s := newMemStore()
	seedSupplier(s)
	seedProduct(s, "prod-1", 21, 5)
	uc := newTestUseCase(s)
	ctx := context.Background()

	purchaseID := createDraftPurchase(t, uc, []dto.PurchaseItemRequest{
		{ProductID: "prod-1", Quantity: 10, UnitPrice: decimal.RequireFromString("40")},
	})

	_, err := uc.UpdateStatus(ctx, tenantA, userTest, purchaseID, entity.PurchaseStatusDraft)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no-op rechazado")

	_, err = uc.UpdateStatus(ctx, tenantA, userTest, purchaseID, entity.PurchaseStatusReceived)
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, tenantA, userTest, purchaseID, entity.PurchaseStatusReceived)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "doble recepción rechazada")
	_, err = uc.UpdateStatus(ctx, tenantA, userTest, purchaseID, entity.PurchaseStatusDraft)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "reapertura rechazada")

	assert.Equal(t, int64(15), s.products["prod-1"].Stock, "efectos una sola vez")
	require.Len(t, s.movements, 1)

	_, err = uc.UpdateStatus(ctx, tenantA, userTest, purchaseID, "SHIPPED")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "estado desconocido rechazado")
}

// Una compra de otro tenant devuelve ErrNotFound.
func TestUpdateStatus_OtroTenantEsNotFound(t *testing.T) {
	s := newMemStore()
	seedSupplier(s)
	seedProduct(s, "prod-1", 21, 5)
	uc := newTestUseCase(s)

	purchaseID := createDraftPurchase(t, uc, []dto.PurchaseItemRequest{
		{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.RequireFromString("40")},
	})

	_, err := uc.UpdateStatus(context.Background(), tenantB, userTest, purchaseID, entity.PurchaseStatusReceived)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, entity.PurchaseStatusDraft, s.purchases[purchaseID].Status)
}
