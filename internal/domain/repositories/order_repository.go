package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"sellhub.backend/internal/domain/entities"
)

// OrderRepository defines order data operations
type OrderRepository interface {
	// Create persists the order together with its items
	Create(ctx context.Context, order *entities.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error
	// MarkDelivered sets the order DELIVERED and records the delivery time
	MarkDelivered(ctx context.Context, id uuid.UUID, at time.Time) error
}

// PaymentRepository defines gateway payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByGatewayID(ctx context.Context, gatewayPaymentID string) (*entities.Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error
	// CountApprovedByOrder counts payments still APPROVED on the order
	CountApprovedByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
}

// RefundRepository defines refund record data operations
type RefundRepository interface {
	Create(ctx context.Context, refund *entities.Refund) error
	GetByGatewayRefundID(ctx context.Context, gatewayRefundID string) (*entities.Refund, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*entities.Refund, error)
}
