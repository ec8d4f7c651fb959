package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"sellhub.backend/internal/config"
	"sellhub.backend/internal/domain/entities"
	domainerrors "sellhub.backend/internal/domain/errors"
	"sellhub.backend/internal/domain/repositories"
	"sellhub.backend/pkg/logger"
	"sellhub.backend/pkg/utils"
)

// AffiliateUsecase tracks affiliate commissions through
// PENDING -> CONFIRMED -> PAID and pays them out through the ledger.
type AffiliateUsecase struct {
	saleRepo   repositories.AffiliateSaleRepository
	orderRepo  repositories.OrderRepository
	ledger     *LedgerUsecase
	withdrawal *WithdrawalUsecase
	uow        repositories.UnitOfWork
	cfg        config.SettlementConfig
}

// NewAffiliateUsecase creates a new affiliate usecase
func NewAffiliateUsecase(
	saleRepo repositories.AffiliateSaleRepository,
	orderRepo repositories.OrderRepository,
	ledger *LedgerUsecase,
	withdrawal *WithdrawalUsecase,
	uow repositories.UnitOfWork,
	cfg config.SettlementConfig,
) *AffiliateUsecase {
	return &AffiliateUsecase{
		saleRepo:   saleRepo,
		orderRepo:  orderRepo,
		ledger:     ledger,
		withdrawal: withdrawal,
		uow:        uow,
		cfg:        cfg,
	}
}

// HandleOrderDelivered confirms the order's affiliate sale and starts the
// grace window: availableAt = deliveredAt + grace. A redelivered event is a
// no-op and never re-extends an already running window.
func (u *AffiliateUsecase) HandleOrderDelivered(ctx context.Context, orderID uuid.UUID, deliveredAt time.Time) error {
	return u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		order, err := u.orderRepo.GetByID(lockCtx, orderID)
		if err != nil {
			return err
		}
		if order.Status != entities.OrderStatusDelivered {
			if err := u.orderRepo.MarkDelivered(lockCtx, orderID, deliveredAt); err != nil {
				return err
			}
		}

		sale, err := u.saleRepo.GetByOrderID(lockCtx, orderID)
		if err != nil {
			if err == domainerrors.ErrNotFound {
				return nil
			}
			return err
		}
		if sale.Status != entities.AffiliateSaleStatusPending {
			logger.Debug(txCtx, "Affiliate sale already confirmed, skipping",
				zap.String("sale_id", sale.ID.String()),
				zap.String("status", string(sale.Status)))
			return nil
		}

		availableAt := deliveredAt.Add(u.cfg.AffiliateGracePeriod)
		sale.Status = entities.AffiliateSaleStatusConfirmed
		sale.ConfirmedAt = &deliveredAt
		sale.AvailableAt = &availableAt
		if err := u.saleRepo.Save(lockCtx, sale); err != nil {
			return err
		}

		logger.Info(txCtx, "Affiliate sale confirmed",
			zap.String("sale_id", sale.ID.String()),
			zap.String("order_id", orderID.String()),
			zap.Time("available_at", availableAt))
		return nil
	})
}

// CancelForOrder cancels the order's affiliate sale after a refund. A sale
// already PAID cannot be clawed back here; the caller records the gap for
// out-of-band reconciliation.
func (u *AffiliateUsecase) CancelForOrder(ctx context.Context, orderID uuid.UUID) (paidGap *entities.AffiliateSale, err error) {
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		sale, err := u.saleRepo.GetByOrderID(lockCtx, orderID)
		if err != nil {
			if err == domainerrors.ErrNotFound {
				return nil
			}
			return err
		}

		switch sale.Status {
		case entities.AffiliateSaleStatusCancelled:
			return nil
		case entities.AffiliateSaleStatusPaid:
			paidGap = sale
			return nil
		}

		sale.Status = entities.AffiliateSaleStatusCancelled
		if err := u.saleRepo.Save(lockCtx, sale); err != nil {
			return err
		}
		logger.Info(txCtx, "Affiliate sale cancelled",
			zap.String("sale_id", sale.ID.String()),
			zap.String("order_id", orderID.String()))
		return nil
	})
	return paidGap, err
}

// ListSales returns an affiliate's sales, newest-first
func (u *AffiliateUsecase) ListSales(ctx context.Context, affiliateID uuid.UUID, page, limit int) ([]*entities.AffiliateSale, int64, error) {
	p := utils.GetPaginationParams(page, limit)
	return u.saleRepo.ListByAffiliate(ctx, affiliateID, p.Limit, p.CalculateOffset())
}

// GetSummary aggregates an affiliate's commission buckets. Availability is
// computed against now, not stored.
func (u *AffiliateUsecase) GetSummary(ctx context.Context, affiliateID uuid.UUID, now time.Time) (*entities.AffiliateCommissionSummary, error) {
	summary := &entities.AffiliateCommissionSummary{
		AffiliateID: affiliateID,
		Pending:     decimal.Zero,
		Confirmed:   decimal.Zero,
		Available:   decimal.Zero,
		Paid:        decimal.Zero,
	}

	const pageSize = 200
	for offset := 0; ; offset += pageSize {
		sales, total, err := u.saleRepo.ListByAffiliate(ctx, affiliateID, pageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, sale := range sales {
			switch {
			case sale.Status == entities.AffiliateSaleStatusPending:
				summary.Pending = summary.Pending.Add(sale.CommissionAmount)
			case sale.IsAvailable(now):
				summary.Available = summary.Available.Add(sale.CommissionAmount)
			case sale.Status == entities.AffiliateSaleStatusConfirmed:
				summary.Confirmed = summary.Confirmed.Add(sale.CommissionAmount)
			case sale.Status == entities.AffiliateSaleStatusPaid:
				summary.Paid = summary.Paid.Add(sale.CommissionAmount)
			}
		}
		if int64(offset+pageSize) >= total {
			break
		}
	}
	return summary, nil
}

// RequestPayout pays out every commission available at now: the sales flip
// to PAID, the sum lands on the affiliate's account as a credit, and a
// withdrawal request enters the normal approval machine.
func (u *AffiliateUsecase) RequestPayout(ctx context.Context, affiliateID uuid.UUID, pixKey string, now time.Time) (*entities.Withdrawal, error) {
	var withdrawal *entities.Withdrawal
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		sales, err := u.saleRepo.ListAvailable(lockCtx, affiliateID, now)
		if err != nil {
			return err
		}
		if len(sales) == 0 {
			return domainerrors.ErrCommissionNotAvailable
		}

		total := decimal.Zero
		for _, sale := range sales {
			sale.Status = entities.AffiliateSaleStatusPaid
			if err := u.saleRepo.Save(lockCtx, sale); err != nil {
				return err
			}
			total = total.Add(sale.CommissionAmount)
		}

		account, err := u.ledger.EnsureAccount(txCtx, affiliateID)
		if err != nil {
			return err
		}
		if _, err := u.ledger.PostTransaction(txCtx, PostTransactionInput{
			AccountID:   account.ID,
			Type:        entities.TransactionTypeCredit,
			Amount:      total,
			Description: fmt.Sprintf("affiliate commission payout (%d sales)", len(sales)),
		}); err != nil {
			return err
		}

		withdrawal, err = u.withdrawal.Request(txCtx, entities.CreateWithdrawalInput{
			AccountID:     account.ID.String(),
			Amount:        total.String(),
			PaymentMethod: "pix",
			PixKey:        pixKey,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return withdrawal, nil
}
