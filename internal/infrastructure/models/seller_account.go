package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SellerAccount struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Balance        decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	BlockedBalance decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	TotalReceived  decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	TotalWithdrawn decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	Status         string          `gorm:"type:varchar(20);not null;index"`
	KYCStatus      string          `gorm:"column:kyc_status;type:varchar(20);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (SellerAccount) TableName() string {
	return "seller_accounts"
}
