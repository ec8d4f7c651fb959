package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AffiliateSaleStatus represents affiliate sale status
type AffiliateSaleStatus string

const (
	AffiliateSaleStatusPending   AffiliateSaleStatus = "PENDING"
	AffiliateSaleStatusConfirmed AffiliateSaleStatus = "CONFIRMED"
	AffiliateSaleStatusPaid      AffiliateSaleStatus = "PAID"
	AffiliateSaleStatusCancelled AffiliateSaleStatus = "CANCELLED"
)

// AffiliateSale tracks one affiliate-attributed order through
// PENDING -> CONFIRMED -> PAID (or CANCELLED before PAID).
// AvailableAt is nil until the sale is confirmed on delivery.
type AffiliateSale struct {
	ID               uuid.UUID           `json:"id"`
	AffiliateID      uuid.UUID           `json:"affiliateId"`
	OrderID          uuid.UUID           `json:"orderId"`
	OrderTotal       decimal.Decimal     `json:"orderTotal"`
	CommissionRate   decimal.Decimal     `json:"commissionRate"`
	CommissionAmount decimal.Decimal     `json:"commissionAmount"`
	Status           AffiliateSaleStatus `json:"status"`
	ConfirmedAt      *time.Time          `json:"confirmedAt,omitempty"`
	AvailableAt      *time.Time          `json:"availableAt,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// IsAvailable reports whether the commission is withdrawable at the given
// instant. Availability is derived, never stored as a status.
func (s *AffiliateSale) IsAvailable(now time.Time) bool {
	return s.Status == AffiliateSaleStatusConfirmed &&
		s.AvailableAt != nil && !s.AvailableAt.After(now)
}

// AffiliateCommissionSummary aggregates an affiliate's commission buckets
type AffiliateCommissionSummary struct {
	AffiliateID uuid.UUID       `json:"affiliateId"`
	Pending     decimal.Decimal `json:"pending"`
	Confirmed   decimal.Decimal `json:"confirmed"`
	Available   decimal.Decimal `json:"available"`
	Paid        decimal.Decimal `json:"paid"`
}
