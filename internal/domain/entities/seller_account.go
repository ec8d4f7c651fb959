package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountStatus represents seller account status
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
	AccountStatusClosed    AccountStatus = "CLOSED"
)

// KYCStatus represents the verification state of the account holder
type KYCStatus string

const (
	KYCStatusPending  KYCStatus = "PENDING"
	KYCStatusVerified KYCStatus = "VERIFIED"
	KYCStatusRejected KYCStatus = "REJECTED"
)

// SellerAccount is the internal wallet of a seller or affiliate. Balance is
// withdrawable now; BlockedBalance is reserved for in-flight withdrawals.
// Closed accounts are a status, never a deleted row.
type SellerAccount struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"userId"`
	Balance        decimal.Decimal `json:"balance"`
	BlockedBalance decimal.Decimal `json:"blockedBalance"`
	TotalReceived  decimal.Decimal `json:"totalReceived"`
	TotalWithdrawn decimal.Decimal `json:"totalWithdrawn"`
	Status         AccountStatus   `json:"status"`
	KYCStatus      KYCStatus       `json:"kycStatus"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// CanPost reports whether the account accepts new ledger postings.
// Suspended and closed accounts still allow reads.
func (a *SellerAccount) CanPost() bool {
	return a.Status == AccountStatusActive
}

// BalanceSnapshot is the read-only balance view exposed to dashboards
type BalanceSnapshot struct {
	AccountID      uuid.UUID       `json:"accountId"`
	Balance        decimal.Decimal `json:"balance"`
	BlockedBalance decimal.Decimal `json:"blockedBalance"`
	TotalReceived  decimal.Decimal `json:"totalReceived"`
	TotalWithdrawn decimal.Decimal `json:"totalWithdrawn"`
}
