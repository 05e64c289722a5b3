package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/frankopalmi/gridmanager-api/internal/domain"
	"github.com/frankopalmi/gridmanager-api/internal/domain/entity"
	"github.com/frankopalmi/gridmanager-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)
var _ repository.AccountMovementRepository = (*AccountMovementRepo)(nil)

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de persistencia para cuentas. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, tenant_id, name, type, currency, balance, active, created_at, updated_at`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(&a.ID, &a.TenantID, &a.Name, &a.Type, &a.Currency, &a.Balance, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &a, nil
}

// Create persiste una nueva cuenta.
func (r *AccountRepo) Create(account *entity.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.TenantID, account.Name, account.Type, account.Currency,
		account.Balance, account.Active, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(id string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate bloquea la fila de la cuenta hasta el fin de la transacción.
func (r *AccountRepo) GetForUpdate(id string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`
	return scanAccount(r.q.QueryRow(context.Background(), query, id))
}

// ListByTenant devuelve las cuentas del tenant paginadas.
func (r *AccountRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []*entity.Account
	for rows.Next() {
		var a entity.Account
		if err := rows.Scan(&a.ID, &a.TenantID, &a.Name, &a.Type, &a.Currency, &a.Balance, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// AdjustBalance suma delta al saldo en un solo UPDATE atómico.
func (r *AccountRepo) AdjustBalance(id string, delta decimal.Decimal) error {
	query := `UPDATE accounts SET balance = balance + $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, delta)
	if err != nil {
		return fmt.Errorf("adjust account balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AccountMovementRepo implementación del ledger de movimientos de cuenta sobre PostgreSQL.
type AccountMovementRepo struct {
	q Querier
}

// NewAccountMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountMovementRepository(q Querier) *AccountMovementRepo {
	return &AccountMovementRepo{q: q}
}

// Create inserta un movimiento de cuenta.
func (r *AccountMovementRepo) Create(m *entity.AccountMovement) error {
	query := `
		INSERT INTO account_movements (id, account_id, type, amount, description, reference, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.AccountID, m.Type, m.Amount, m.Description, m.Reference, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert account movement: %w", err)
	}
	return nil
}

// ListByAccount devuelve los movimientos de la cuenta, más recientes primero.
func (r *AccountMovementRepo) ListByAccount(accountID string, limit, offset int) ([]*entity.AccountMovement, error) {
	query := `
		SELECT id, account_id, type, amount, description, reference, created_at, created_by
		FROM account_movements WHERE account_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list account movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.AccountMovement
	for rows.Next() {
		var m entity.AccountMovement
		if err := rows.Scan(&m.ID, &m.AccountID, &m.Type, &m.Amount, &m.Description, &m.Reference, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan account movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
