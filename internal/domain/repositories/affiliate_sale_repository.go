package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"sellhub.backend/internal/domain/entities"
)

// AffiliateSaleRepository defines affiliate sale data operations
type AffiliateSaleRepository interface {
	Create(ctx context.Context, sale *entities.AffiliateSale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.AffiliateSale, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entities.AffiliateSale, error)
	ListByAffiliate(ctx context.Context, affiliateID uuid.UUID, limit, offset int) ([]*entities.AffiliateSale, int64, error)
	// ListAvailable returns CONFIRMED sales whose availableAt is at or before
	// asOf, newest-first.
	ListAvailable(ctx context.Context, affiliateID uuid.UUID, asOf time.Time) ([]*entities.AffiliateSale, error)
	Save(ctx context.Context, sale *entities.AffiliateSale) error
}
