package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// WithdrawalStatus represents withdrawal status
type WithdrawalStatus string

const (
	WithdrawalStatusPending    WithdrawalStatus = "PENDING"
	WithdrawalStatusApproved   WithdrawalStatus = "APPROVED"
	WithdrawalStatusProcessing WithdrawalStatus = "PROCESSING"
	WithdrawalStatusCompleted  WithdrawalStatus = "COMPLETED"
	WithdrawalStatusRejected   WithdrawalStatus = "REJECTED"
)

// IsTerminal reports whether no further transition is allowed
func (s WithdrawalStatus) IsTerminal() bool {
	return s == WithdrawalStatusCompleted || s == WithdrawalStatusRejected
}

// Withdrawal is a payout request against an account's blocked funds.
// Lifecycle: PENDING -> APPROVED -> PROCESSING -> COMPLETED, or
// REJECTED from PENDING/APPROVED only.
type Withdrawal struct {
	ID              uuid.UUID        `json:"id"`
	AccountID       uuid.UUID        `json:"accountId"`
	Amount          decimal.Decimal  `json:"amount"`
	Status          WithdrawalStatus `json:"status"`
	PaymentMethod   string           `json:"paymentMethod"`
	PixKey          string           `json:"pixKey"`
	TransactionID   null.String      `json:"transactionId,omitempty"`
	RejectionReason null.String      `json:"rejectionReason,omitempty"`
	FailureReason   null.String      `json:"failureReason,omitempty"`
	ProcessedAt     *time.Time       `json:"processedAt,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// IdempotencyKey returns the stable key sent to the payout provider so a
// retried call can never cause a second real-world transfer.
func (w *Withdrawal) IdempotencyKey() string {
	return "wd-" + w.ID.String()
}

// CreateWithdrawalInput represents input for requesting a withdrawal
type CreateWithdrawalInput struct {
	AccountID     string `json:"accountId" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	PixKey        string `json:"pixKey" binding:"required"`
}
