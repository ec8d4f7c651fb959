package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerRef   string          `gorm:"type:varchar(100);not null;index"`
	Total         decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	PaymentStatus string          `gorm:"type:varchar(20);not null;index"`
	AffiliateID   *uuid.UUID      `gorm:"type:uuid;index"`
	AffiliateRate decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DeliveredAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID        `gorm:"type:uuid;not null;index"`
	SellerID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductRef       string           `gorm:"type:varchar(100);not null"`
	ItemType         string           `gorm:"type:varchar(20);not null"`
	UnitPrice        decimal.Decimal  `gorm:"type:decimal(20,2);not null"`
	Quantity         int              `gorm:"not null"`
	SourceBasePrice  *decimal.Decimal `gorm:"type:decimal(20,2)"`
	CommissionRate   decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	CommissionAmount decimal.Decimal  `gorm:"type:decimal(20,2);not null"`
	SellerRevenue    decimal.Decimal  `gorm:"type:decimal(20,2);not null"`
	CreatedAt        time.Time
}

func (OrderItem) TableName() string {
	return "order_items"
}

type Payment struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	GatewayPaymentID string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Amount           decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Status           string          `gorm:"type:varchar(20);not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Payment) TableName() string {
	return "payments"
}

type Refund struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PaymentID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	GatewayRefundID    string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Amount             decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	ReconciliationNote string          `gorm:"type:varchar(255)"`
	CreatedAt          time.Time
}

func (Refund) TableName() string {
	return "refunds"
}
