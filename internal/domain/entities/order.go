package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// PaymentStatus represents the payment state of an order payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusApproved PaymentStatus = "APPROVED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// ItemType classifies an order line's commercial model
type ItemType string

const (
	// ItemTypeOwn is the seller's own inventory; the seller pays the
	// platform a commission on the line total.
	ItemTypeOwn ItemType = "OWN"
	// ItemTypeDropship is platform-sourced inventory resold at a markup;
	// the seller earns a commission on the source cost base.
	ItemTypeDropship ItemType = "DROPSHIP"
)

// Order represents a marketplace order
type Order struct {
	ID            uuid.UUID       `json:"id"`
	CustomerRef   string          `json:"customerRef"`
	Total         decimal.Decimal `json:"total"`
	Status        OrderStatus     `json:"status"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	AffiliateID   *uuid.UUID      `json:"affiliateId,omitempty"`
	AffiliateRate decimal.Decimal `json:"affiliateRate"`
	DeliveredAt   *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`

	Items []*OrderItem `json:"items,omitempty"`
}

// OrderItem is one order line. The commission fields are computed once at
// order creation by the calculator and are read-only afterwards.
type OrderItem struct {
	ID               uuid.UUID        `json:"id"`
	OrderID          uuid.UUID        `json:"orderId"`
	SellerID         uuid.UUID        `json:"sellerId"`
	ProductRef       string           `json:"productRef"`
	ItemType         ItemType         `json:"itemType"`
	UnitPrice        decimal.Decimal  `json:"unitPrice"`
	Quantity         int              `json:"quantity"`
	SourceBasePrice  *decimal.Decimal `json:"sourceBasePrice,omitempty"`
	CommissionRate   decimal.Decimal  `json:"commissionRate"`
	CommissionAmount decimal.Decimal  `json:"commissionAmount"`
	SellerRevenue    decimal.Decimal  `json:"sellerRevenue"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// LineTotal returns unit price times quantity
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Payment represents one gateway payment attached to an order
type Payment struct {
	ID               uuid.UUID       `json:"id"`
	OrderID          uuid.UUID       `json:"orderId"`
	GatewayPaymentID string          `json:"gatewayPaymentId"`
	Amount           decimal.Decimal `json:"amount"`
	Status           PaymentStatus   `json:"status"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// Refund records one applied gateway refund. The unique gateway refund id is
// the idempotency anchor for webhook redelivery.
type Refund struct {
	ID                 uuid.UUID       `json:"id"`
	PaymentID          uuid.UUID       `json:"paymentId"`
	OrderID            uuid.UUID       `json:"orderId"`
	GatewayRefundID    string          `json:"gatewayRefundId"`
	Amount             decimal.Decimal `json:"amount"`
	ReconciliationNote string          `json:"reconciliationNote,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// CreateOrderInput represents input for creating an order
type CreateOrderInput struct {
	CustomerRef   string                 `json:"customerRef" binding:"required"`
	AffiliateID   string                 `json:"affiliateId,omitempty"`
	AffiliateRate string                 `json:"affiliateRate,omitempty"`
	Items         []CreateOrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderItemInput represents one line of an order creation request
type CreateOrderItemInput struct {
	SellerID        string `json:"sellerId" binding:"required"`
	ProductRef      string `json:"productRef" binding:"required"`
	ItemType        string `json:"itemType" binding:"required"`
	UnitPrice       string `json:"unitPrice" binding:"required"`
	Quantity        int    `json:"quantity" binding:"required"`
	CommissionRate  string `json:"commissionRate,omitempty"`
	SourceBasePrice string `json:"sourceBasePrice,omitempty"`
}
