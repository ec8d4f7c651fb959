package repositories

import (
	"context"

	"github.com/google/uuid"
	"sellhub.backend/internal/domain/entities"
)

// LedgerTransactionRepository defines append-only ledger data operations.
// There is deliberately no general update: COMPLETED rows are immutable and
// the only mutation allowed is resolving a PENDING reservation.
type LedgerTransactionRepository interface {
	Create(ctx context.Context, txn *entities.LedgerTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.LedgerTransaction, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.LedgerTransaction, int64, error)
	// UpdateStatus resolves a PENDING transaction to COMPLETED or CANCELLED
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TransactionStatus) error
	// ListCreditsByOrder returns COMPLETED credit postings that reference the
	// order, used by the refund reconciler to build offsetting debits.
	ListCreditsByOrder(ctx context.Context, orderID uuid.UUID) ([]*entities.LedgerTransaction, error)
	// GetPendingByWithdrawal returns the PENDING reservation row for a
	// withdrawal, if any.
	GetPendingByWithdrawal(ctx context.Context, withdrawalID uuid.UUID) (*entities.LedgerTransaction, error)
}
