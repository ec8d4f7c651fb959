package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sellhub.backend/internal/domain/entities"
	domainerrors "sellhub.backend/internal/domain/errors"
	"sellhub.backend/pkg/utils"
)

func newSale(affiliateID, orderID uuid.UUID, commission string) *entities.AffiliateSale {
	return &entities.AffiliateSale{
		ID:               utils.GenerateUUIDv7(),
		AffiliateID:      affiliateID,
		OrderID:          orderID,
		OrderTotal:       decimal.RequireFromString("200.00"),
		CommissionRate:   decimal.RequireFromString("5"),
		CommissionAmount: decimal.RequireFromString(commission),
		Status:           entities.AffiliateSaleStatusPending,
	}
}

func TestAffiliateSaleRepository_CreateAndGetByOrder(t *testing.T) {
	db := newTestDB(t)
	createAffiliateSaleTable(t, db)
	repo := NewAffiliateSaleRepository(db)
	ctx := context.Background()

	sale := newSale(uuid.New(), uuid.New(), "10.00")
	require.NoError(t, repo.Create(ctx, sale))

	got, err := repo.GetByOrderID(ctx, sale.OrderID)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, got.ID)
	assert.Equal(t, entities.AffiliateSaleStatusPending, got.Status)

	_, err = repo.GetByOrderID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAffiliateSaleRepository_OrderIDUnique(t *testing.T) {
	db := newTestDB(t)
	createAffiliateSaleTable(t, db)
	repo := NewAffiliateSaleRepository(db)
	ctx := context.Background()

	orderID := uuid.New()
	require.NoError(t, repo.Create(ctx, newSale(uuid.New(), orderID, "10.00")))

	err := repo.Create(ctx, newSale(uuid.New(), orderID, "10.00"))
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestAffiliateSaleRepository_ListAvailable(t *testing.T) {
	db := newTestDB(t)
	createAffiliateSaleTable(t, db)
	repo := NewAffiliateSaleRepository(db)
	ctx := context.Background()

	affiliateID := uuid.New()
	now := time.Now()

	confirm := func(sale *entities.AffiliateSale, availableAt time.Time) {
		confirmedAt := availableAt.Add(-7 * 24 * time.Hour)
		sale.Status = entities.AffiliateSaleStatusConfirmed
		sale.ConfirmedAt = &confirmedAt
		sale.AvailableAt = &availableAt
		require.NoError(t, repo.Save(ctx, sale))
	}

	ripe := newSale(affiliateID, uuid.New(), "15.00")
	require.NoError(t, repo.Create(ctx, ripe))
	confirm(ripe, now.Add(-time.Hour))

	inGrace := newSale(affiliateID, uuid.New(), "5.00")
	require.NoError(t, repo.Create(ctx, inGrace))
	confirm(inGrace, now.Add(24*time.Hour))

	pending := newSale(affiliateID, uuid.New(), "10.00")
	require.NoError(t, repo.Create(ctx, pending))

	available, err := repo.ListAvailable(ctx, affiliateID, now)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, ripe.ID, available[0].ID)
}

func TestAffiliateSaleRepository_ListByAffiliate(t *testing.T) {
	db := newTestDB(t)
	createAffiliateSaleTable(t, db)
	repo := NewAffiliateSaleRepository(db)
	ctx := context.Background()

	affiliateID := uuid.New()
	for range [3]struct{}{} {
		require.NoError(t, repo.Create(ctx, newSale(affiliateID, uuid.New(), "10.00")))
	}
	require.NoError(t, repo.Create(ctx, newSale(uuid.New(), uuid.New(), "99.00")))

	sales, total, err := repo.ListByAffiliate(ctx, affiliateID, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, sales, 3)
}
