package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankopalmi/gridmanager-api/internal/application/dto"
	"github.com/frankopalmi/gridmanager-api/internal/application/inventory"
	"github.com/frankopalmi/gridmanager-api/internal/domain"
	"github.com/frankopalmi/gridmanager-api/internal/domain/entity"
	"github.com/frankopalmi/gridmanager-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	tenantA  = "11111111-1111-1111-1111-111111111111"
	tenantB  = "22222222-2222-2222-2222-222222222222"
	userTest = "99999999-9999-9999-9999-999999999999"
)

type memStore struct {
	products  map[string]*entity.Product
	movements []*entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{products: make(map[string]*entity.Product)}
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
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
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *memProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}
func (r *memProductRepo) AdjustStock(id string, delta int64) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += delta
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
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *memMovementRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.TenantID == tenantID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// memTxRunner ejecuta fn directo sobre los repos en memoria.
// No simula rollback: los tests que esperan error usan escenarios donde la
// validación falla antes de mutar nada.
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) RunInventory(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(&memProductRepo{s: r.s}, &memMovementRepo{s: r.s})
}

func newTestUseCase(s *memStore) *inventory.AdjustmentUseCase {
	return inventory.NewAdjustmentUseCase(&memTxRunner{s: s}, &memProductRepo{s: s}, &memMovementRepo{s: s})
}

func seedProduct(s *memStore, id string, stock int64) {
	s.products[id] = &entity.Product{
		ID:       id,
		TenantID: tenantA,
		SKU:      "SKU-" + id,
		Name:     "Producto " + id,
		Price:    decimal.NewFromInt(100),
		TaxRate:  decimal.NewFromInt(21),
		Stock:    stock,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Un ajuste positivo suma stock y deja una fila ADJUSTMENT con la cantidad firmada.
func TestRegisterAdjustment_DeltaPositivo(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", 10)
	uc := newTestUseCase(s)

	err := uc.RegisterAdjustment(context.Background(), tenantA, userTest, dto.RegisterAdjustmentRequest{
		ProductID: "prod-1",
		Quantity:  5,
		Notes:     "conteo físico",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(15), s.products["prod-1"].Stock)
	require.Len(t, s.movements, 1)
	mov := s.movements[0]
	assert.Equal(t, entity.MovementTypeADJUSTMENT, mov.Type)
	assert.Equal(t, int64(5), mov.Quantity)
	assert.Equal(t, "conteo físico", mov.Reference)
	assert.Equal(t, userTest, mov.CreatedBy)
}

// Un ajuste negativo resta stock; sin nota, la referencia cae al texto por defecto.
func TestRegisterAdjustment_DeltaNegativo(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", 10)
	uc := newTestUseCase(s)

	err := uc.RegisterAdjustment(context.Background(), tenantA, userTest, dto.RegisterAdjustmentRequest{
		ProductID: "prod-1",
		Quantity:  -4,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(6), s.products["prod-1"].Stock)
	require.Len(t, s.movements, 1)
	assert.Equal(t, int64(-4), s.movements[0].Quantity)
	assert.Equal(t, "ajuste manual", s.movements[0].Reference)
}

// Un ajuste que dejaría el stock negativo se rechaza sin mutar nada.
func TestRegisterAdjustment_StockNegativoRechazado(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", 3)
	uc := newTestUseCase(s)

	err := uc.RegisterAdjustment(context.Background(), tenantA, userTest, dto.RegisterAdjustmentRequest{
		ProductID: "prod-1",
		Quantity:  -5,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(3), s.products["prod-1"].Stock, "el stock no debe cambiar")
	assert.Empty(t, s.movements, "no debe quedar fila en el ledger")
}

// Delta cero o producto vacío: error de entrada.
func TestRegisterAdjustment_EntradasInvalidas(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", 3)
	uc := newTestUseCase(s)
	ctx := context.Background()

	err := uc.RegisterAdjustment(ctx, tenantA, userTest, dto.RegisterAdjustmentRequest{ProductID: "prod-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "delta cero")

	err = uc.RegisterAdjustment(ctx, tenantA, userTest, dto.RegisterAdjustmentRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "product_id requerido")
}

// Producto de otro tenant: ErrNotFound, sin filtrar existencia.
func TestRegisterAdjustment_OtroTenantEsNotFound(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", 10)
	uc := newTestUseCase(s)

	err := uc.RegisterAdjustment(context.Background(), tenantB, userTest, dto.RegisterAdjustmentRequest{
		ProductID: "prod-1",
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(10), s.products["prod-1"].Stock)
}

// ListMovements filtra por producto y valida el tenant del producto.
func TestListMovements_FiltroPorProducto(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "prod-1", 10)
	seedProduct(s, "prod-2", 10)
	uc := newTestUseCase(s)
	ctx := context.Background()

	require.NoError(t, uc.RegisterAdjustment(ctx, tenantA, userTest, dto.RegisterAdjustmentRequest{ProductID: "prod-1", Quantity: 2}))
	require.NoError(t, uc.RegisterAdjustment(ctx, tenantA, userTest, dto.RegisterAdjustmentRequest{ProductID: "prod-2", Quantity: 3}))

	byProduct, err := uc.ListMovements(ctx, tenantA, "prod-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, byProduct, 1)
	assert.Equal(t, "prod-1", byProduct[0].ProductID)

	all, err := uc.ListMovements(ctx, tenantA, "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = uc.ListMovements(ctx, tenantB, "prod-1", 20, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto de otro tenant")
}
