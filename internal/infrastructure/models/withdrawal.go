package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Withdrawal struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Status          string          `gorm:"type:varchar(20);not null;index"`
	PaymentMethod   string          `gorm:"type:varchar(30);not null"`
	PixKey          string          `gorm:"type:varchar(140);not null"`
	TransactionID   *string         `gorm:"type:varchar(255)"`
	RejectionReason *string         `gorm:"type:varchar(255)"`
	FailureReason   *string         `gorm:"type:varchar(255)"`
	ProcessedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Account SellerAccount `gorm:"foreignKey:AccountID"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
