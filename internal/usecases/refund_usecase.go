package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"sellhub.backend/internal/domain/entities"
	domainerrors "sellhub.backend/internal/domain/errors"
	"sellhub.backend/internal/domain/repositories"
	"sellhub.backend/pkg/logger"
	"sellhub.backend/pkg/utils"
)

// RefundUsecase reconciles confirmed gateway refunds against the ledger.
// The gateway's refund id is the idempotency anchor: the same confirmation
// delivered twice applies exactly once.
type RefundUsecase struct {
	refundRepo  repositories.RefundRepository
	paymentRepo repositories.PaymentRepository
	orderRepo   repositories.OrderRepository
	ledgerRepo  repositories.LedgerTransactionRepository
	ledger      *LedgerUsecase
	affiliate   *AffiliateUsecase
	uow         repositories.UnitOfWork
}

// NewRefundUsecase creates a new refund usecase
func NewRefundUsecase(
	refundRepo repositories.RefundRepository,
	paymentRepo repositories.PaymentRepository,
	orderRepo repositories.OrderRepository,
	ledgerRepo repositories.LedgerTransactionRepository,
	ledger *LedgerUsecase,
	affiliate *AffiliateUsecase,
	uow repositories.UnitOfWork,
) *RefundUsecase {
	return &RefundUsecase{
		refundRepo:  refundRepo,
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		ledgerRepo:  ledgerRepo,
		ledger:      ledger,
		affiliate:   affiliate,
		uow:         uow,
	}
}

// HandleRefundConfirmed applies one confirmed gateway refund. For a refund
// covering the whole payment, all in one transaction: record the refund row,
// mark the payment REFUNDED, cancel the order once no approved payment
// remains, cancel the affiliate sale unless already PAID, and post one
// ADJUSTMENT_DEBIT offsetting each seller credit of the order. The original
// credit rows are never touched. A partial refund only records the refund
// row; order, payment and postings stay as they are.
func (u *RefundUsecase) HandleRefundConfirmed(ctx context.Context, gatewayRefundID, gatewayPaymentID string, amount decimal.Decimal) (*entities.Refund, error) {
	if gatewayRefundID == "" {
		return nil, domainerrors.BadRequest("gateway refund id is required")
	}
	if !amount.IsPositive() {
		return nil, domainerrors.BadRequest("amount must be positive")
	}

	if existing, err := u.refundRepo.GetByGatewayRefundID(ctx, gatewayRefundID); err == nil {
		logger.Info(ctx, "Refund already applied, skipping",
			zap.String("gateway_refund_id", gatewayRefundID))
		return existing, nil
	} else if err != domainerrors.ErrNotFound {
		return nil, err
	}

	payment, err := u.paymentRepo.GetByGatewayID(ctx, gatewayPaymentID)
	if err != nil {
		return nil, err
	}

	var refund *entities.Refund
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		refund, err = u.apply(txCtx, gatewayRefundID, payment, amount.Round(2), nil)
		return err
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			// A concurrent delivery won the unique index race
			return u.refundRepo.GetByGatewayRefundID(ctx, gatewayRefundID)
		}
		return nil, err
	}
	return refund, nil
}

// AdminRefundInput represents input for an admin-initiated refund
type AdminRefundInput struct {
	PaymentID string `json:"paymentId" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// AdminRefund applies a refund initiated from the back office rather than a
// gateway webhook. A synthetic refund id keeps the idempotency machinery
// uniform; actor and reason are recorded on the refund row.
func (u *RefundUsecase) AdminRefund(ctx context.Context, in AdminRefundInput, actorID string) (*entities.Refund, error) {
	if actorID == "" {
		return nil, domainerrors.BadRequest("actor is required")
	}
	paymentID, err := uuid.Parse(in.PaymentID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid payment id")
	}
	amount, err := decimal.NewFromString(in.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, domainerrors.BadRequest("invalid amount")
	}

	payment, err := u.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	note := fmt.Sprintf("admin refund by %s: %s", actorID, in.Reason)
	var refund *entities.Refund
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		refund, err = u.apply(txCtx, "admin-"+utils.GenerateUUIDv7().String(), payment, amount.Round(2), &note)
		return err
	})
	if err != nil {
		return nil, err
	}
	return refund, nil
}

func (u *RefundUsecase) apply(ctx context.Context, gatewayRefundID string, payment *entities.Payment, amount decimal.Decimal, note *string) (*entities.Refund, error) {
	if amount.GreaterThan(payment.Amount) {
		return nil, domainerrors.UnprocessableEntity("refund amount exceeds payment amount")
	}

	var notes []string
	if note != nil {
		notes = append(notes, *note)
	}

	// Only a refund covering the whole payment unwinds the order: payment
	// and order flip to REFUNDED/CANCELLED, the affiliate sale is cancelled,
	// and the seller credits are reversed. A partial refund is recorded but
	// everything stays as posted; disputes of partial amounts go through
	// manual adjustments.
	if amount.Equal(payment.Amount) {
		if payment.Status == entities.PaymentStatusApproved {
			if err := u.paymentRepo.UpdateStatus(ctx, payment.ID, entities.PaymentStatusRefunded); err != nil {
				return nil, err
			}
		}

		remaining, err := u.paymentRepo.CountApprovedByOrder(ctx, payment.OrderID)
		if err != nil {
			return nil, err
		}
		if remaining == 0 {
			if err := u.orderRepo.UpdateStatus(ctx, payment.OrderID, entities.OrderStatusCancelled); err != nil {
				return nil, err
			}
			if err := u.orderRepo.UpdatePaymentStatus(ctx, payment.OrderID, entities.PaymentStatusRefunded); err != nil {
				return nil, err
			}
		}

		paidGap, err := u.affiliate.CancelForOrder(ctx, payment.OrderID)
		if err != nil {
			return nil, err
		}
		if paidGap != nil {
			notes = append(notes, fmt.Sprintf(
				"affiliate sale %s already PAID at refund time, needs manual reconciliation", paidGap.ID))
			logger.Warn(ctx, "Refund hit an already paid affiliate commission",
				zap.String("order_id", payment.OrderID.String()),
				zap.String("sale_id", paidGap.ID.String()))
		}

		reversalNotes, err := u.reverseSellerCredits(ctx, payment.OrderID)
		if err != nil {
			return nil, err
		}
		notes = append(notes, reversalNotes...)
	} else {
		notes = append(notes, "partial refund, seller credits left as posted")
	}

	refund := &entities.Refund{
		ID:                 utils.GenerateUUIDv7(),
		PaymentID:          payment.ID,
		OrderID:            payment.OrderID,
		GatewayRefundID:    gatewayRefundID,
		Amount:             amount,
		ReconciliationNote: strings.Join(notes, "; "),
	}
	if err := u.refundRepo.Create(ctx, refund); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Refund applied",
		zap.String("refund_id", refund.ID.String()),
		zap.String("order_id", payment.OrderID.String()),
		zap.String("amount", amount.String()))
	return refund, nil
}

// reverseSellerCredits posts one offsetting ADJUSTMENT_DEBIT per seller
// credit of the order. A seller who already withdrew the money cannot be
// debited below zero; those accounts are flagged instead of forced negative.
func (u *RefundUsecase) reverseSellerCredits(ctx context.Context, orderID uuid.UUID) ([]string, error) {
	credits, err := u.ledgerRepo.ListCreditsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var notes []string
	for _, credit := range credits {
		_, err := u.ledger.PostTransaction(ctx, PostTransactionInput{
			AccountID:   credit.AccountID,
			Type:        entities.TransactionTypeAdjustmentDebit,
			Amount:      credit.Amount,
			OrderID:     &orderID,
			Description: fmt.Sprintf("refund reversal of order %s", orderID),
		})
		switch {
		case err == nil:
		case errors.Is(err, domainerrors.ErrInsufficientBalance),
			errors.Is(err, domainerrors.ErrAccountNotActive):
			notes = append(notes, fmt.Sprintf(
				"could not debit account %s for %s (%v)", credit.AccountID, credit.Amount, err))
			logger.Warn(ctx, "Refund reversal skipped for account",
				zap.String("account_id", credit.AccountID.String()),
				zap.String("amount", credit.Amount.String()),
				zap.Error(err))
		default:
			return nil, err
		}
	}
	return notes, nil
}
