package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"sellhub.backend/internal/domain/entities"
	domainerrors "sellhub.backend/internal/domain/errors"
	"sellhub.backend/internal/domain/repositories"
	"sellhub.backend/pkg/logger"
	"sellhub.backend/pkg/utils"
)

// OrderUsecase handles order intake and payment settlement
type OrderUsecase struct {
	orderRepo         repositories.OrderRepository
	paymentRepo       repositories.PaymentRepository
	affiliateSaleRepo repositories.AffiliateSaleRepository
	calculator        *CommissionCalculator
	ledger            *LedgerUsecase
	uow               repositories.UnitOfWork
}

// NewOrderUsecase creates a new order usecase
func NewOrderUsecase(
	orderRepo repositories.OrderRepository,
	paymentRepo repositories.PaymentRepository,
	affiliateSaleRepo repositories.AffiliateSaleRepository,
	calculator *CommissionCalculator,
	ledger *LedgerUsecase,
	uow repositories.UnitOfWork,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:         orderRepo,
		paymentRepo:       paymentRepo,
		affiliateSaleRepo: affiliateSaleRepo,
		calculator:        calculator,
		ledger:            ledger,
		uow:               uow,
	}
}

// CreateOrder validates the request, computes the commission split of every
// line and persists the order PENDING. Monetary results are rounded to 2
// decimal places here, at the persistence boundary.
func (u *OrderUsecase) CreateOrder(ctx context.Context, in *entities.CreateOrderInput) (*entities.Order, error) {
	order := &entities.Order{
		ID:            utils.GenerateUUIDv7(),
		CustomerRef:   in.CustomerRef,
		Status:        entities.OrderStatusPending,
		PaymentStatus: entities.PaymentStatusPending,
		AffiliateRate: decimal.Zero,
	}

	if in.AffiliateID != "" {
		affiliateID, err := uuid.Parse(in.AffiliateID)
		if err != nil {
			return nil, domainerrors.BadRequest("invalid affiliate id")
		}
		rate, err := decimal.NewFromString(in.AffiliateRate)
		if err != nil {
			return nil, domainerrors.BadRequest("invalid affiliate rate")
		}
		if rate.IsNegative() || rate.GreaterThan(oneHundred) {
			return nil, domainerrors.BadRequest("affiliate rate must be between 0 and 100")
		}
		order.AffiliateID = &affiliateID
		order.AffiliateRate = rate
	}

	total := decimal.Zero
	for i, itemIn := range in.Items {
		item, err := u.buildItem(order.ID, itemIn)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		total = total.Add(item.LineTotal())
		order.Items = append(order.Items, item)
	}
	order.Total = total.Round(2)

	if err := u.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("total", order.Total.String()),
		zap.Int("items", len(order.Items)))
	return order, nil
}

func (u *OrderUsecase) buildItem(orderID uuid.UUID, in entities.CreateOrderItemInput) (*entities.OrderItem, error) {
	sellerID, err := uuid.Parse(in.SellerID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid seller id")
	}
	unitPrice, err := decimal.NewFromString(in.UnitPrice)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid unit price")
	}

	itemType := entities.ItemType(in.ItemType)
	if itemType != entities.ItemTypeOwn && itemType != entities.ItemTypeDropship {
		return nil, domainerrors.BadRequest("item type must be OWN or DROPSHIP")
	}

	rate := decimal.Zero
	if in.CommissionRate != "" {
		if rate, err = decimal.NewFromString(in.CommissionRate); err != nil {
			return nil, domainerrors.BadRequest("invalid commission rate")
		}
	}

	var sourceBasePrice decimal.Decimal
	if itemType == entities.ItemTypeDropship {
		if in.SourceBasePrice == "" {
			return nil, domainerrors.BadRequest("source base price is required for dropshipping lines")
		}
		if sourceBasePrice, err = decimal.NewFromString(in.SourceBasePrice); err != nil {
			return nil, domainerrors.BadRequest("invalid source base price")
		}
		// A reseller cannot price below the source cost base: the markup
		// would go negative and the split would pay the seller to sell.
		if unitPrice.LessThan(sourceBasePrice) {
			return nil, domainerrors.UnprocessableEntity("resale price below source base price")
		}
	}

	split, err := u.calculator.CalculateLine(LineInput{
		ItemType:          itemType,
		UnitPrice:         unitPrice,
		Quantity:          in.Quantity,
		CommissionPercent: rate,
		SourceBasePrice:   sourceBasePrice,
	})
	if err != nil {
		return nil, err
	}

	item := &entities.OrderItem{
		ID:               utils.GenerateUUIDv7(),
		OrderID:          orderID,
		SellerID:         sellerID,
		ProductRef:       in.ProductRef,
		ItemType:         itemType,
		UnitPrice:        unitPrice,
		Quantity:         in.Quantity,
		CommissionRate:   split.CommissionRate,
		CommissionAmount: split.CommissionAmount.Round(2),
		SellerRevenue:    split.SellerRevenue.Round(2),
	}
	if itemType == entities.ItemTypeDropship {
		item.SourceBasePrice = &sourceBasePrice
	}
	return item, nil
}

// GetOrder returns an order with its items
func (u *OrderUsecase) GetOrder(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	return u.orderRepo.GetByID(ctx, id)
}

// HandlePaymentApproved settles an approved gateway payment: it records the
// payment, marks the order PAID, credits every seller's ledger with the
// revenue of their lines and opens a PENDING affiliate sale when the order
// carries an attribution.
//
// Redelivery of the same gateway payment id is a no-op. The unique index on
// gateway_payment_id closes the race between concurrent deliveries.
func (u *OrderUsecase) HandlePaymentApproved(ctx context.Context, orderID uuid.UUID, gatewayPaymentID string, amount decimal.Decimal) error {
	if _, err := u.paymentRepo.GetByGatewayID(ctx, gatewayPaymentID); err == nil {
		logger.Info(ctx, "Payment already settled, skipping",
			zap.String("gateway_payment_id", gatewayPaymentID))
		return nil
	} else if err != domainerrors.ErrNotFound {
		return err
	}

	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status == entities.OrderStatusCancelled {
		return domainerrors.UnprocessableEntity("order is cancelled")
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		payment := &entities.Payment{
			ID:               utils.GenerateUUIDv7(),
			OrderID:          order.ID,
			GatewayPaymentID: gatewayPaymentID,
			Amount:           amount.Round(2),
			Status:           entities.PaymentStatusApproved,
		}
		if err := u.paymentRepo.Create(txCtx, payment); err != nil {
			if err == domainerrors.ErrAlreadyExists {
				return nil
			}
			return err
		}

		if err := u.orderRepo.UpdateStatus(txCtx, order.ID, entities.OrderStatusPaid); err != nil {
			return err
		}
		if err := u.orderRepo.UpdatePaymentStatus(txCtx, order.ID, entities.PaymentStatusApproved); err != nil {
			return err
		}

		for sellerID, revenue := range revenueBySeller(order.Items) {
			account, err := u.ledger.EnsureAccount(txCtx, sellerID)
			if err != nil {
				return err
			}
			if _, err := u.ledger.PostTransaction(txCtx, PostTransactionInput{
				AccountID:   account.ID,
				Type:        entities.TransactionTypeCredit,
				Amount:      revenue,
				OrderID:     &order.ID,
				Description: fmt.Sprintf("sale revenue for order %s", order.ID),
			}); err != nil {
				return err
			}
		}

		if order.AffiliateID != nil {
			commission := order.Total.Mul(order.AffiliateRate).Div(oneHundred).Round(2)
			sale := &entities.AffiliateSale{
				ID:               utils.GenerateUUIDv7(),
				AffiliateID:      *order.AffiliateID,
				OrderID:          order.ID,
				OrderTotal:       order.Total,
				CommissionRate:   order.AffiliateRate,
				CommissionAmount: commission,
				Status:           entities.AffiliateSaleStatusPending,
			}
			if err := u.affiliateSaleRepo.Create(txCtx, sale); err != nil && err != domainerrors.ErrAlreadyExists {
				return err
			}
		}

		logger.Info(txCtx, "Payment settled",
			zap.String("order_id", order.ID.String()),
			zap.String("gateway_payment_id", gatewayPaymentID))
		return nil
	})
}

// revenueBySeller aggregates item revenue into one credit per seller
func revenueBySeller(items []*entities.OrderItem) map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal, len(items))
	for _, item := range items {
		out[item.SellerID] = out[item.SellerID].Add(item.SellerRevenue)
	}
	return out
}
