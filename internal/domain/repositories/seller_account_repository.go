package repositories

import (
	"context"

	"github.com/google/uuid"
	"sellhub.backend/internal/domain/entities"
)

// SellerAccountRepository defines seller account data operations
type SellerAccountRepository interface {
	Create(ctx context.Context, account *entities.SellerAccount) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.SellerAccount, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.SellerAccount, error)
	// Save persists the balance, totals and status fields of an existing
	// account. Must be called inside the same locked transaction that read
	// the account.
	Save(ctx context.Context, account *entities.SellerAccount) error
}
