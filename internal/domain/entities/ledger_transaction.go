package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// TransactionType represents ledger transaction type
type TransactionType string

const (
	TransactionTypeCredit           TransactionType = "CREDIT"
	TransactionTypeWithdrawal       TransactionType = "WITHDRAWAL"
	TransactionTypeAdjustmentCredit TransactionType = "ADJUSTMENT_CREDIT"
	TransactionTypeAdjustmentDebit  TransactionType = "ADJUSTMENT_DEBIT"
)

// IsCredit reports whether the type increases the balance
func (t TransactionType) IsCredit() bool {
	return t == TransactionTypeCredit || t == TransactionTypeAdjustmentCredit
}

// TransactionStatus represents ledger transaction status
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// LedgerTransaction is one immutable, append-only record of a balance change.
// Once COMPLETED it is never mutated; corrections are new transactions.
type LedgerTransaction struct {
	ID            uuid.UUID         `json:"id"`
	AccountID     uuid.UUID         `json:"accountId"`
	Type          TransactionType   `json:"type"`
	Amount        decimal.Decimal   `json:"amount"`
	BalanceBefore decimal.Decimal   `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal   `json:"balanceAfter"`
	Status        TransactionStatus `json:"status"`
	OrderID       *uuid.UUID        `json:"orderId,omitempty"`
	WithdrawalID  *uuid.UUID        `json:"withdrawalId,omitempty"`
	Description   string            `json:"description"`
	ActorID       null.String       `json:"actorId,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}
