package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"sellhub.backend/internal/domain/entities"
	domainerrors "sellhub.backend/internal/domain/errors"
	"sellhub.backend/internal/infrastructure/models"
)

// WithdrawalRepository implements withdrawal data operations
type WithdrawalRepository struct {
	db *gorm.DB
}

// NewWithdrawalRepository creates a new withdrawal repository
func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

// Create creates a new withdrawal
func (r *WithdrawalRepository) Create(ctx context.Context, withdrawal *entities.Withdrawal) error {
	m := toWithdrawalModel(withdrawal)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	withdrawal.CreatedAt = m.CreatedAt
	withdrawal.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a withdrawal by ID. Honors WithLock inside a transaction.
func (r *WithdrawalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Withdrawal, error) {
	var m models.Withdrawal
	db := GetLockedDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toWithdrawalEntity(&m), nil
}

// ListByAccount returns an account's withdrawals, newest-first
func (r *WithdrawalRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.Withdrawal, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.Withdrawal{}).
		Where("account_id = ?", accountID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Withdrawal
	if err := db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	ws := make([]*entities.Withdrawal, 0, len(ms))
	for i := range ms {
		ws = append(ws, toWithdrawalEntity(&ms[i]))
	}
	return ws, total, nil
}

// Save persists the mutable fields of an existing withdrawal
func (r *WithdrawalRepository) Save(ctx context.Context, withdrawal *entities.Withdrawal) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Withdrawal{}).
		Where("id = ?", withdrawal.ID).
		Updates(map[string]interface{}{
			"status":           string(withdrawal.Status),
			"transaction_id":   withdrawal.TransactionID.Ptr(),
			"rejection_reason": withdrawal.RejectionReason.Ptr(),
			"failure_reason":   withdrawal.FailureReason.Ptr(),
			"processed_at":     withdrawal.ProcessedAt,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListStuckProcessing returns PROCESSING withdrawals older than the cutoff
func (r *WithdrawalRepository) ListStuckProcessing(ctx context.Context, cutoff time.Time) ([]*entities.Withdrawal, error) {
	db := GetDB(ctx, r.db)
	var ms []models.Withdrawal
	if err := db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", string(entities.WithdrawalStatusProcessing), cutoff).
		Order("updated_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	ws := make([]*entities.Withdrawal, 0, len(ms))
	for i := range ms {
		ws = append(ws, toWithdrawalEntity(&ms[i]))
	}
	return ws, nil
}

func toWithdrawalModel(w *entities.Withdrawal) *models.Withdrawal {
	return &models.Withdrawal{
		ID:              w.ID,
		AccountID:       w.AccountID,
		Amount:          w.Amount,
		Status:          string(w.Status),
		PaymentMethod:   w.PaymentMethod,
		PixKey:          w.PixKey,
		TransactionID:   w.TransactionID.Ptr(),
		RejectionReason: w.RejectionReason.Ptr(),
		FailureReason:   w.FailureReason.Ptr(),
		ProcessedAt:     w.ProcessedAt,
	}
}

func toWithdrawalEntity(m *models.Withdrawal) *entities.Withdrawal {
	return &entities.Withdrawal{
		ID:              m.ID,
		AccountID:       m.AccountID,
		Amount:          m.Amount,
		Status:          entities.WithdrawalStatus(m.Status),
		PaymentMethod:   m.PaymentMethod,
		PixKey:          m.PixKey,
		TransactionID:   null.StringFromPtr(m.TransactionID),
		RejectionReason: null.StringFromPtr(m.RejectionReason),
		FailureReason:   null.StringFromPtr(m.FailureReason),
		ProcessedAt:     m.ProcessedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
