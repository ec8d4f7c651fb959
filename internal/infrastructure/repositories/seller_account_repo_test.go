package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sellhub.backend/internal/domain/entities"
	domainerrors "sellhub.backend/internal/domain/errors"
	"sellhub.backend/pkg/utils"
)

func newAccount(userID uuid.UUID) *entities.SellerAccount {
	return &entities.SellerAccount{
		ID:             utils.GenerateUUIDv7(),
		UserID:         userID,
		Balance:        decimal.Zero,
		BlockedBalance: decimal.Zero,
		TotalReceived:  decimal.Zero,
		TotalWithdrawn: decimal.Zero,
		Status:         entities.AccountStatusActive,
		KYCStatus:      entities.KYCStatusPending,
	}
}

func TestSellerAccountRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createSellerAccountTable(t, db)
	repo := NewSellerAccountRepository(db)
	ctx := context.Background()

	account := newAccount(uuid.New())
	require.NoError(t, repo.Create(ctx, account))

	byID, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.UserID, byID.UserID)
	assert.Equal(t, entities.AccountStatusActive, byID.Status)

	byUser, err := repo.GetByUserID(ctx, account.UserID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, byUser.ID)
}

func TestSellerAccountRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	createSellerAccountTable(t, db)
	repo := NewSellerAccountRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)

	_, err = repo.GetByUserID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)

	err = repo.Save(ctx, newAccount(uuid.New()))
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestSellerAccountRepository_SavePersistsBalances(t *testing.T) {
	db := newTestDB(t)
	createSellerAccountTable(t, db)
	repo := NewSellerAccountRepository(db)
	ctx := context.Background()

	account := newAccount(uuid.New())
	require.NoError(t, repo.Create(ctx, account))

	account.Balance = decimal.RequireFromString("120.50")
	account.BlockedBalance = decimal.RequireFromString("30.00")
	account.TotalReceived = decimal.RequireFromString("150.50")
	account.Status = entities.AccountStatusSuspended
	require.NoError(t, repo.Save(ctx, account))

	saved, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, saved.Balance.Equal(decimal.RequireFromString("120.50")))
	assert.True(t, saved.BlockedBalance.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, saved.TotalReceived.Equal(decimal.RequireFromString("150.50")))
	assert.Equal(t, entities.AccountStatusSuspended, saved.Status)
}

func TestSellerAccountRepository_UserIDUnique(t *testing.T) {
	db := newTestDB(t)
	createSellerAccountTable(t, db)
	repo := NewSellerAccountRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.Create(ctx, newAccount(userID)))
	assert.Error(t, repo.Create(ctx, newAccount(userID)))
}
