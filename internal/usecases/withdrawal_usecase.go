package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"sellhub.backend/internal/config"
	"sellhub.backend/internal/domain/entities"
	domainerrors "sellhub.backend/internal/domain/errors"
	"sellhub.backend/internal/domain/repositories"
	"sellhub.backend/internal/infrastructure/payout"
	"sellhub.backend/pkg/logger"
	"sellhub.backend/pkg/utils"
)

// PayoutProvider abstracts the external transfer rail
type PayoutProvider interface {
	CreateTransfer(ctx context.Context, req payout.TransferRequest) (*payout.TransferResult, error)
	GetTransfer(ctx context.Context, idempotencyKey string) (*payout.TransferResult, error)
}

// WithdrawalUsecase drives the withdrawal state machine:
// PENDING -> APPROVED -> PROCESSING -> COMPLETED, with REJECTED reachable
// from PENDING and APPROVED only. The provider call happens outside any
// database transaction; money state changes only before (block) and after
// (settle or revert) the call.
type WithdrawalUsecase struct {
	withdrawalRepo repositories.WithdrawalRepository
	ledger         *LedgerUsecase
	provider       PayoutProvider
	uow            repositories.UnitOfWork
	cfg            config.SettlementConfig
}

// NewWithdrawalUsecase creates a new withdrawal usecase
func NewWithdrawalUsecase(
	withdrawalRepo repositories.WithdrawalRepository,
	ledger *LedgerUsecase,
	provider PayoutProvider,
	uow repositories.UnitOfWork,
	cfg config.SettlementConfig,
) *WithdrawalUsecase {
	return &WithdrawalUsecase{
		withdrawalRepo: withdrawalRepo,
		ledger:         ledger,
		provider:       provider,
		uow:            uow,
		cfg:            cfg,
	}
}

// Request validates and opens a withdrawal: funds move to blockedBalance
// and a PENDING ledger reservation is appended, all in one transaction.
func (u *WithdrawalUsecase) Request(ctx context.Context, in entities.CreateWithdrawalInput) (*entities.Withdrawal, error) {
	accountID, err := uuid.Parse(in.AccountID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid account id")
	}
	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid amount")
	}
	if !amount.IsPositive() {
		return nil, domainerrors.BadRequest("amount must be positive")
	}
	if u.cfg.WithdrawalMinAmount.IsPositive() && amount.LessThan(u.cfg.WithdrawalMinAmount) {
		return nil, domainerrors.BadRequest(fmt.Sprintf("amount below minimum of %s", u.cfg.WithdrawalMinAmount))
	}

	withdrawal := &entities.Withdrawal{
		ID:            utils.GenerateUUIDv7(),
		AccountID:     accountID,
		Amount:        amount.Round(2),
		Status:        entities.WithdrawalStatusPending,
		PaymentMethod: in.PaymentMethod,
		PixKey:        in.PixKey,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.withdrawalRepo.Create(txCtx, withdrawal); err != nil {
			return err
		}
		_, err := u.ledger.BlockFunds(txCtx, accountID, withdrawal.Amount, withdrawal.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Withdrawal requested",
		zap.String("withdrawal_id", withdrawal.ID.String()),
		zap.String("account_id", accountID.String()),
		zap.String("amount", withdrawal.Amount.String()))
	return withdrawal, nil
}

// Approve moves a PENDING withdrawal to APPROVED
func (u *WithdrawalUsecase) Approve(ctx context.Context, id uuid.UUID) (*entities.Withdrawal, error) {
	var withdrawal *entities.Withdrawal
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		var err error
		withdrawal, err = u.withdrawalRepo.GetByID(lockCtx, id)
		if err != nil {
			return err
		}
		if withdrawal.Status != entities.WithdrawalStatusPending {
			return domainerrors.ErrInvalidTransition
		}
		withdrawal.Status = entities.WithdrawalStatusApproved
		return u.withdrawalRepo.Save(lockCtx, withdrawal)
	})
	if err != nil {
		return nil, err
	}
	return withdrawal, nil
}

// Reject terminates a PENDING or APPROVED withdrawal: blocked funds return
// to the available balance and the ledger reservation is cancelled.
func (u *WithdrawalUsecase) Reject(ctx context.Context, id uuid.UUID, reason string) (*entities.Withdrawal, error) {
	if reason == "" {
		return nil, domainerrors.BadRequest("rejection reason is required")
	}

	var withdrawal *entities.Withdrawal
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		var err error
		withdrawal, err = u.withdrawalRepo.GetByID(lockCtx, id)
		if err != nil {
			return err
		}
		if withdrawal.Status != entities.WithdrawalStatusPending &&
			withdrawal.Status != entities.WithdrawalStatusApproved {
			return domainerrors.ErrInvalidTransition
		}

		withdrawal.Status = entities.WithdrawalStatusRejected
		withdrawal.RejectionReason = null.StringFrom(reason)
		if err := u.withdrawalRepo.Save(lockCtx, withdrawal); err != nil {
			return err
		}
		return u.ledger.UnblockFunds(txCtx, withdrawal.AccountID, withdrawal.Amount, withdrawal.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Withdrawal rejected",
		zap.String("withdrawal_id", id.String()),
		zap.String("reason", reason))
	return withdrawal, nil
}

// ExecutePayout runs the provider transfer for an APPROVED withdrawal.
//
// The withdrawal first flips to PROCESSING in its own transaction, then the
// provider is called outside any transaction. On success, or when the
// provider reports the idempotency key as already processed, the money
// settles and the withdrawal completes. On failure it returns to APPROVED
// with the reason recorded, so an operator can retry.
func (u *WithdrawalUsecase) ExecutePayout(ctx context.Context, id uuid.UUID) (*entities.Withdrawal, error) {
	var withdrawal *entities.Withdrawal
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		var err error
		withdrawal, err = u.withdrawalRepo.GetByID(lockCtx, id)
		if err != nil {
			return err
		}
		switch withdrawal.Status {
		case entities.WithdrawalStatusApproved:
		case entities.WithdrawalStatusProcessing:
			// A stuck attempt may be retried; the provider idempotency key
			// makes the retry safe.
		default:
			return domainerrors.ErrInvalidTransition
		}
		withdrawal.Status = entities.WithdrawalStatusProcessing
		return u.withdrawalRepo.Save(lockCtx, withdrawal)
	})
	if err != nil {
		return nil, err
	}

	result, err := u.provider.CreateTransfer(ctx, payout.TransferRequest{
		IdempotencyKey: withdrawal.IdempotencyKey(),
		Amount:         withdrawal.Amount,
		PaymentMethod:  withdrawal.PaymentMethod,
		PixKey:         withdrawal.PixKey,
		Description:    fmt.Sprintf("withdrawal %s", withdrawal.ID),
	})
	switch {
	case err == nil:
	case errors.Is(err, domainerrors.ErrTransferDuplicate):
		// The transfer already went through on a previous attempt
		logger.Warn(ctx, "Provider reported duplicate transfer, completing",
			zap.String("withdrawal_id", withdrawal.ID.String()))
	default:
		if revertErr := u.revertToApproved(ctx, withdrawal.ID, err.Error()); revertErr != nil {
			logger.Error(ctx, "Failed to revert withdrawal after provider failure", zap.Error(revertErr),
				zap.String("withdrawal_id", withdrawal.ID.String()))
		}
		return nil, err
	}

	if err := u.complete(ctx, withdrawal, result); err != nil {
		return nil, err
	}
	return withdrawal, nil
}

// complete settles the money and finishes the withdrawal atomically. The
// withdrawal is re-read under lock first: ExecutePayout retries and the
// reconcile job can both resolve the same PROCESSING withdrawal, and the
// blocked funds must settle exactly once.
func (u *WithdrawalUsecase) complete(ctx context.Context, withdrawal *entities.Withdrawal, result *payout.TransferResult) error {
	return u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		current, err := u.withdrawalRepo.GetByID(lockCtx, withdrawal.ID)
		if err != nil {
			return err
		}
		if current.Status == entities.WithdrawalStatusCompleted {
			*withdrawal = *current
			logger.Info(txCtx, "Withdrawal already settled by another resolution path",
				zap.String("withdrawal_id", current.ID.String()))
			return nil
		}

		if err := u.ledger.SettleWithdrawal(txCtx, current.AccountID, current.Amount, current.ID); err != nil {
			return err
		}

		now := time.Now()
		current.Status = entities.WithdrawalStatusCompleted
		current.ProcessedAt = &now
		if result != nil && result.TransactionID != "" {
			current.TransactionID = null.StringFrom(result.TransactionID)
		}
		if err := u.withdrawalRepo.Save(lockCtx, current); err != nil {
			return err
		}
		*withdrawal = *current

		logger.Info(txCtx, "Withdrawal completed",
			zap.String("withdrawal_id", current.ID.String()),
			zap.String("provider_tx_id", current.TransactionID.String))
		return nil
	})
}

func (u *WithdrawalUsecase) revertToApproved(ctx context.Context, id uuid.UUID, reason string) error {
	return u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		withdrawal, err := u.withdrawalRepo.GetByID(lockCtx, id)
		if err != nil {
			return err
		}
		if withdrawal.Status != entities.WithdrawalStatusProcessing {
			return nil
		}
		withdrawal.Status = entities.WithdrawalStatusApproved
		withdrawal.FailureReason = null.StringFrom(reason)
		return u.withdrawalRepo.Save(lockCtx, withdrawal)
	})
}

// Get returns one withdrawal
func (u *WithdrawalUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Withdrawal, error) {
	return u.withdrawalRepo.GetByID(ctx, id)
}

// ListByAccount returns an account's withdrawals, newest-first
func (u *WithdrawalUsecase) ListByAccount(ctx context.Context, accountID uuid.UUID, page, limit int) ([]*entities.Withdrawal, int64, error) {
	p := utils.GetPaginationParams(page, limit)
	return u.withdrawalRepo.ListByAccount(ctx, accountID, p.Limit, p.CalculateOffset())
}

// ReconcileProcessing resolves withdrawals stuck in PROCESSING longer than
// the configured threshold by asking the provider what actually happened.
// Completed transfers settle; unknown transfers revert to APPROVED.
func (u *WithdrawalUsecase) ReconcileProcessing(ctx context.Context) error {
	cutoff := time.Now().Add(-u.cfg.PayoutStuckThreshold)
	stuck, err := u.withdrawalRepo.ListStuckProcessing(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, withdrawal := range stuck {
		result, err := u.provider.GetTransfer(ctx, withdrawal.IdempotencyKey())
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			// The provider never saw the transfer, safe to retry
			if err := u.revertToApproved(ctx, withdrawal.ID, "transfer not found at provider"); err != nil {
				logger.Error(ctx, "Failed to revert stuck withdrawal", zap.Error(err),
					zap.String("withdrawal_id", withdrawal.ID.String()))
			}
		case errors.Is(err, domainerrors.ErrTransferFailed) && result != nil:
			if err := u.revertToApproved(ctx, withdrawal.ID, "provider reported transfer failed"); err != nil {
				logger.Error(ctx, "Failed to revert stuck withdrawal", zap.Error(err),
					zap.String("withdrawal_id", withdrawal.ID.String()))
			}
		case errors.Is(err, domainerrors.ErrTransferDuplicate):
			if err := u.complete(ctx, withdrawal, result); err != nil {
				logger.Error(ctx, "Failed to complete reconciled withdrawal", zap.Error(err),
					zap.String("withdrawal_id", withdrawal.ID.String()))
			}
		case err != nil:
			// Transient query failure, leave the withdrawal for the next tick
			logger.Warn(ctx, "Provider status query failed",
				zap.String("withdrawal_id", withdrawal.ID.String()),
				zap.Error(err))
		case result.Status == payout.TransferStatusCompleted:
			if err := u.complete(ctx, withdrawal, result); err != nil {
				logger.Error(ctx, "Failed to complete reconciled withdrawal", zap.Error(err),
					zap.String("withdrawal_id", withdrawal.ID.String()))
			}
		default:
			// Still in flight on the provider side, check again next tick
		}
	}
	return nil
}
