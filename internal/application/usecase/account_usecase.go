package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frankopalmi/gridmanager-api/internal/application/dto"
	"github.com/frankopalmi/gridmanager-api/internal/domain"
	"github.com/frankopalmi/gridmanager-api/internal/domain/entity"
	"github.com/frankopalmi/gridmanager-api/internal/domain/repository"
)

// AccountTxRunner ejecuta una función dentro de una transacción de BD con repos de cuentas atados a esa tx.
type AccountTxRunner interface {
	RunAccounts(ctx context.Context, fn func(
		accountRepo repository.AccountRepository,
		movRepo repository.AccountMovementRepository,
	) error) error
}

// AccountUseCase cuentas de dinero: alta, consulta y movimientos (depósitos/extracciones).
type AccountUseCase struct {
	txRunner    AccountTxRunner
	accountRepo repository.AccountRepository
	movRepo     repository.AccountMovementRepository
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(
	txRunner AccountTxRunner,
	accountRepo repository.AccountRepository,
	movRepo repository.AccountMovementRepository,
) *AccountUseCase {
	return &AccountUseCase{txRunner: txRunner, accountRepo: accountRepo, movRepo: movRepo}
}

// Create valida y persiste una cuenta con su saldo inicial.
func (uc *AccountUseCase) Create(tenantID string, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.AccountTypeCash && in.Type != entity.AccountTypeBank {
		return nil, domain.ErrInvalidInput
	}
	if in.Balance.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	account := &entity.Account{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      in.Name,
		Type:      in.Type,
		Currency:  in.Currency,
		Balance:   in.Balance,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.accountRepo.Create(account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// List lista cuentas del tenant.
func (uc *AccountUseCase) List(tenantID string, limit, offset int) ([]*dto.AccountResponse, error) {
	list, err := uc.accountRepo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AccountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAccountResponse(a))
	}
	return out, nil
}

// RegisterMovement aplica un depósito o extracción sobre la cuenta en una transacción:
// bloqueo de fila, verificación de fondos en extracciones, ajuste atómico y fila de ledger.
func (uc *AccountUseCase) RegisterMovement(ctx context.Context, tenantID, userID, accountID string, in dto.RegisterAccountMovementRequest) (*dto.AccountMovementResponse, error) {
	if in.Type != entity.AccountMovementDeposit && in.Type != entity.AccountMovementWithdrawal {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	account, err := uc.accountRepo.GetByID(accountID)
	if err != nil || account == nil {
		return nil, domain.ErrNotFound
	}
	if account.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	mov := &entity.AccountMovement{
		ID:          uuid.New().String(),
		AccountID:   accountID,
		Type:        in.Type,
		Amount:      in.Amount,
		Description: in.Description,
		Reference:   in.Reference,
		CreatedAt:   now,
		CreatedBy:   userID,
	}

	err = uc.txRunner.RunAccounts(ctx, func(
		accountRepo repository.AccountRepository,
		movRepo repository.AccountMovementRepository,
	) error {
		locked, err := accountRepo.GetForUpdate(accountID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		delta := in.Amount
		if in.Type == entity.AccountMovementWithdrawal {
			if locked.Balance.LessThan(in.Amount) {
				return domain.ErrInvalidInput
			}
			delta = in.Amount.Neg()
		}
		if err := accountRepo.AdjustBalance(accountID, delta); err != nil {
			return err
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}

	return toAccountMovementResponse(mov), nil
}

// ListMovements lista el ledger de una cuenta del tenant.
func (uc *AccountUseCase) ListMovements(tenantID, accountID string, limit, offset int) ([]*dto.AccountMovementResponse, error) {
	account, err := uc.accountRepo.GetByID(accountID)
	if err != nil || account == nil || account.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movRepo.ListByAccount(accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AccountMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toAccountMovementResponse(m))
	}
	return out, nil
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Type:      a.Type,
		Currency:  a.Currency,
		Balance:   a.Balance,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
	}
}

func toAccountMovementResponse(m *entity.AccountMovement) *dto.AccountMovementResponse {
	return &dto.AccountMovementResponse{
		ID:          m.ID,
		AccountID:   m.AccountID,
		Type:        m.Type,
		Amount:      m.Amount,
		Description: m.Description,
		Reference:   m.Reference,
		CreatedAt:   m.CreatedAt,
	}
}
