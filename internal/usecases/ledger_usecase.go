package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"sellhub.backend/internal/domain/entities"
	domainerrors "sellhub.backend/internal/domain/errors"
	"sellhub.backend/internal/domain/repositories"
	"sellhub.backend/pkg/logger"
	"sellhub.backend/pkg/utils"
)

// LedgerUsecase owns every balance mutation. All call sites go through
// PostTransaction / BlockFunds / UnblockFunds / SettleWithdrawal so the
// append-only invariant and the per-account atomic unit cannot be bypassed.
type LedgerUsecase struct {
	accountRepo repositories.SellerAccountRepository
	ledgerRepo  repositories.LedgerTransactionRepository
	uow         repositories.UnitOfWork
}

// NewLedgerUsecase creates a new ledger usecase
func NewLedgerUsecase(
	accountRepo repositories.SellerAccountRepository,
	ledgerRepo repositories.LedgerTransactionRepository,
	uow repositories.UnitOfWork,
) *LedgerUsecase {
	return &LedgerUsecase{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		uow:         uow,
	}
}

// PostTransactionInput describes one ledger posting
type PostTransactionInput struct {
	AccountID    uuid.UUID
	Type         entities.TransactionType
	Amount       decimal.Decimal // always positive; the type carries the sign
	OrderID      *uuid.UUID
	WithdrawalID *uuid.UUID
	Description  string
	ActorID      null.String
}

// EnsureAccount returns the account owned by userID, lazily provisioning an
// active one on first use.
func (u *LedgerUsecase) EnsureAccount(ctx context.Context, userID uuid.UUID) (*entities.SellerAccount, error) {
	account, err := u.accountRepo.GetByUserID(ctx, userID)
	if err == nil {
		return account, nil
	}
	if err != domainerrors.ErrAccountNotFound {
		return nil, err
	}

	account = &entities.SellerAccount{
		ID:             utils.GenerateUUIDv7(),
		UserID:         userID,
		Balance:        decimal.Zero,
		BlockedBalance: decimal.Zero,
		TotalReceived:  decimal.Zero,
		TotalWithdrawn: decimal.Zero,
		Status:         entities.AccountStatusActive,
		KYCStatus:      entities.KYCStatusPending,
	}
	if err := u.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Seller account provisioned",
		zap.String("account_id", account.ID.String()),
		zap.String("user_id", userID.String()))
	return account, nil
}

// PostTransaction appends a COMPLETED transaction and updates the account
// balance as one atomic unit. Credits increase balance and totalReceived;
// an ADJUSTMENT_DEBIT decreases both and must not exceed the balance.
func (u *LedgerUsecase) PostTransaction(ctx context.Context, in PostTransactionInput) (*entities.LedgerTransaction, error) {
	if !in.Amount.IsPositive() {
		return nil, domainerrors.BadRequest("amount must be positive")
	}

	var txn *entities.LedgerTransaction
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		account, err := u.accountRepo.GetByID(lockCtx, in.AccountID)
		if err != nil {
			return err
		}
		if !account.CanPost() {
			return domainerrors.ErrAccountNotActive
		}

		amount := in.Amount.Round(2)
		before := account.Balance

		switch in.Type {
		case entities.TransactionTypeCredit, entities.TransactionTypeAdjustmentCredit:
			account.Balance = account.Balance.Add(amount)
			account.TotalReceived = account.TotalReceived.Add(amount)
		case entities.TransactionTypeAdjustmentDebit:
			if amount.GreaterThan(account.Balance) {
				return domainerrors.ErrInsufficientBalance
			}
			account.Balance = account.Balance.Sub(amount)
			account.TotalReceived = account.TotalReceived.Sub(amount)
			amount = amount.Neg()
		default:
			return domainerrors.BadRequest("unsupported transaction type for posting")
		}

		txn = &entities.LedgerTransaction{
			ID:            utils.GenerateUUIDv7(),
			AccountID:     account.ID,
			Type:          in.Type,
			Amount:        amount,
			BalanceBefore: before,
			BalanceAfter:  account.Balance,
			Status:        entities.TransactionStatusCompleted,
			OrderID:       in.OrderID,
			WithdrawalID:  in.WithdrawalID,
			Description:   in.Description,
			ActorID:       in.ActorID,
		}
		if err := u.ledgerRepo.Create(lockCtx, txn); err != nil {
			return err
		}
		return u.accountRepo.Save(lockCtx, account)
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// BlockFunds atomically moves amount from balance to blockedBalance and
// appends a PENDING withdrawal reservation.
func (u *LedgerUsecase) BlockFunds(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, withdrawalID uuid.UUID) (*entities.LedgerTransaction, error) {
	if !amount.IsPositive() {
		return nil, domainerrors.BadRequest("amount must be positive")
	}

	var txn *entities.LedgerTransaction
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		account, err := u.accountRepo.GetByID(lockCtx, accountID)
		if err != nil {
			return err
		}
		if !account.CanPost() {
			return domainerrors.ErrAccountNotActive
		}
		if amount.GreaterThan(account.Balance) {
			return domainerrors.ErrInsufficientBalance
		}

		before := account.Balance
		account.Balance = account.Balance.Sub(amount)
		account.BlockedBalance = account.BlockedBalance.Add(amount)

		txn = &entities.LedgerTransaction{
			ID:            utils.GenerateUUIDv7(),
			AccountID:     account.ID,
			Type:          entities.TransactionTypeWithdrawal,
			Amount:        amount.Neg(),
			BalanceBefore: before,
			BalanceAfter:  account.Balance,
			Status:        entities.TransactionStatusPending,
			WithdrawalID:  &withdrawalID,
			Description:   "withdrawal reservation",
		}
		if err := u.ledgerRepo.Create(lockCtx, txn); err != nil {
			return err
		}
		return u.accountRepo.Save(lockCtx, account)
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// UnblockFunds moves amount back from blockedBalance to balance and cancels
// the PENDING reservation of the withdrawal. Used on rejection.
func (u *LedgerUsecase) UnblockFunds(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, withdrawalID uuid.UUID) error {
	if !amount.IsPositive() {
		return domainerrors.BadRequest("amount must be positive")
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		account, err := u.accountRepo.GetByID(lockCtx, accountID)
		if err != nil {
			return err
		}
		if amount.GreaterThan(account.BlockedBalance) {
			return domainerrors.ErrInsufficientBalance
		}

		account.BlockedBalance = account.BlockedBalance.Sub(amount)
		account.Balance = account.Balance.Add(amount)

		if reservation, err := u.ledgerRepo.GetPendingByWithdrawal(lockCtx, withdrawalID); err == nil {
			if err := u.ledgerRepo.UpdateStatus(lockCtx, reservation.ID, entities.TransactionStatusCancelled); err != nil {
				return err
			}
		} else if err != domainerrors.ErrNotFound {
			return err
		}

		return u.accountRepo.Save(lockCtx, account)
	})
}

// SettleWithdrawal debits blocked funds after a confirmed payout: blocked
// balance drops, totalWithdrawn grows and the reservation completes.
func (u *LedgerUsecase) SettleWithdrawal(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, withdrawalID uuid.UUID) error {
	if !amount.IsPositive() {
		return domainerrors.BadRequest("amount must be positive")
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		account, err := u.accountRepo.GetByID(lockCtx, accountID)
		if err != nil {
			return err
		}
		if amount.GreaterThan(account.BlockedBalance) {
			return domainerrors.ErrInsufficientBalance
		}

		account.BlockedBalance = account.BlockedBalance.Sub(amount)
		account.TotalWithdrawn = account.TotalWithdrawn.Add(amount)

		if reservation, err := u.ledgerRepo.GetPendingByWithdrawal(lockCtx, withdrawalID); err == nil {
			if err := u.ledgerRepo.UpdateStatus(lockCtx, reservation.ID, entities.TransactionStatusCompleted); err != nil {
				return err
			}
		} else if err != domainerrors.ErrNotFound {
			return err
		}

		return u.accountRepo.Save(lockCtx, account)
	})
}

// GetBalance returns the latest committed balance snapshot. Reads are
// allowed for suspended and closed accounts.
func (u *LedgerUsecase) GetBalance(ctx context.Context, accountID uuid.UUID) (*entities.BalanceSnapshot, error) {
	account, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &entities.BalanceSnapshot{
		AccountID:      account.ID,
		Balance:        account.Balance,
		BlockedBalance: account.BlockedBalance,
		TotalReceived:  account.TotalReceived,
		TotalWithdrawn: account.TotalWithdrawn,
	}, nil
}

// GetTransactions returns an account's transaction history, newest-first
func (u *LedgerUsecase) GetTransactions(ctx context.Context, accountID uuid.UUID, page, limit int) ([]*entities.LedgerTransaction, int64, error) {
	if _, err := u.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, 0, err
	}
	p := utils.GetPaginationParams(page, limit)
	return u.ledgerRepo.ListByAccount(ctx, accountID, p.Limit, p.CalculateOffset())
}

// ManualAdjustment posts an admin adjustment. Actor identity and a reason
// are mandatory.
func (u *LedgerUsecase) ManualAdjustment(ctx context.Context, accountID uuid.UUID, typ entities.TransactionType, amount decimal.Decimal, actorID, reason string) (*entities.LedgerTransaction, error) {
	if typ != entities.TransactionTypeAdjustmentCredit && typ != entities.TransactionTypeAdjustmentDebit {
		return nil, domainerrors.BadRequest("adjustment type must be ADJUSTMENT_CREDIT or ADJUSTMENT_DEBIT")
	}
	if actorID == "" {
		return nil, domainerrors.BadRequest("actor is required for adjustments")
	}
	if reason == "" {
		return nil, domainerrors.BadRequest("reason is required for adjustments")
	}

	return u.PostTransaction(ctx, PostTransactionInput{
		AccountID:   accountID,
		Type:        typ,
		Amount:      amount,
		Description: reason,
		ActorID:     null.StringFrom(actorID),
	})
}
