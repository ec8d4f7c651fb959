package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"sellhub.backend/internal/domain/entities"
)

// WithdrawalRepository defines withdrawal data operations
type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *entities.Withdrawal) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Withdrawal, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Withdrawal, int64, error)
	Save(ctx context.Context, withdrawal *entities.Withdrawal) error
	// ListStuckProcessing returns withdrawals that entered PROCESSING before
	// the cutoff, for the payout reconcile job.
	ListStuckProcessing(ctx context.Context, cutoff time.Time) ([]*entities.Withdrawal, error)
}
