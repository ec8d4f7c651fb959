package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AffiliateSale struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AffiliateID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	OrderTotal       decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	CommissionRate   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Status           string          `gorm:"type:varchar(20);not null;index"`
	ConfirmedAt      *time.Time
	AvailableAt      *time.Time `gorm:"index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (AffiliateSale) TableName() string {
	return "affiliate_sales"
}
