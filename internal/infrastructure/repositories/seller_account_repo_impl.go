package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sellhub.backend/internal/domain/entities"
	domainerrors "sellhub.backend/internal/domain/errors"
	"sellhub.backend/internal/infrastructure/models"
)

// SellerAccountRepository implements seller account data operations
type SellerAccountRepository struct {
	db *gorm.DB
}

// NewSellerAccountRepository creates a new seller account repository
func NewSellerAccountRepository(db *gorm.DB) *SellerAccountRepository {
	return &SellerAccountRepository{db: db}
}

// Create creates a new seller account
func (r *SellerAccountRepository) Create(ctx context.Context, account *entities.SellerAccount) error {
	m := toAccountModel(account)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	account.CreatedAt = m.CreatedAt
	account.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an account by ID. Honors WithLock inside a transaction.
func (r *SellerAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.SellerAccount, error) {
	var m models.SellerAccount
	db := GetLockedDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}
		return nil, err
	}
	return toAccountEntity(&m), nil
}

// GetByUserID gets an account by the owning user ID
func (r *SellerAccountRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.SellerAccount, error) {
	var m models.SellerAccount
	db := GetLockedDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}
		return nil, err
	}
	return toAccountEntity(&m), nil
}

// Save persists the mutable fields of an existing account
func (r *SellerAccountRepository) Save(ctx context.Context, account *entities.SellerAccount) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.SellerAccount{}).
		Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"balance":         account.Balance,
			"blocked_balance": account.BlockedBalance,
			"total_received":  account.TotalReceived,
			"total_withdrawn": account.TotalWithdrawn,
			"status":          string(account.Status),
			"kyc_status":      string(account.KYCStatus),
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAccountNotFound
	}
	return nil
}

func toAccountModel(a *entities.SellerAccount) *models.SellerAccount {
	return &models.SellerAccount{
		ID:             a.ID,
		UserID:         a.UserID,
		Balance:        a.Balance,
		BlockedBalance: a.BlockedBalance,
		TotalReceived:  a.TotalReceived,
		TotalWithdrawn: a.TotalWithdrawn,
		Status:         string(a.Status),
		KYCStatus:      string(a.KYCStatus),
	}
}

func toAccountEntity(m *models.SellerAccount) *entities.SellerAccount {
	return &entities.SellerAccount{
		ID:             m.ID,
		UserID:         m.UserID,
		Balance:        m.Balance,
		BlockedBalance: m.BlockedBalance,
		TotalReceived:  m.TotalReceived,
		TotalWithdrawn: m.TotalWithdrawn,
		Status:         entities.AccountStatus(m.Status),
		KYCStatus:      entities.KYCStatus(m.KYCStatus),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
