package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LedgerTransaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          string          `gorm:"type:varchar(30);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	OrderID       *uuid.UUID      `gorm:"type:uuid;index"`
	WithdrawalID  *uuid.UUID      `gorm:"type:uuid;index"`
	Description   string          `gorm:"type:varchar(255)"`
	ActorID       *string         `gorm:"type:varchar(100)"`
	CreatedAt     time.Time       `gorm:"index"`

	Account SellerAccount `gorm:"foreignKey:AccountID"`
}

func (LedgerTransaction) TableName() string {
	return "ledger_transactions"
}
