package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"sellhub.backend/internal/domain/entities"
	domainerrors "sellhub.backend/internal/domain/errors"
	"sellhub.backend/internal/infrastructure/models"
)

// LedgerTransactionRepository implements append-only ledger data operations
type LedgerTransactionRepository struct {
	db *gorm.DB
}

// NewLedgerTransactionRepository creates a new ledger transaction repository
func NewLedgerTransactionRepository(db *gorm.DB) *LedgerTransactionRepository {
	return &LedgerTransactionRepository{db: db}
}

// Create appends a new ledger transaction
func (r *LedgerTransactionRepository) Create(ctx context.Context, txn *entities.LedgerTransaction) error {
	m := &models.LedgerTransaction{
		ID:            txn.ID,
		AccountID:     txn.AccountID,
		Type:          string(txn.Type),
		Amount:        txn.Amount,
		BalanceBefore: txn.BalanceBefore,
		BalanceAfter:  txn.BalanceAfter,
		Status:        string(txn.Status),
		OrderID:       txn.OrderID,
		WithdrawalID:  txn.WithdrawalID,
		Description:   txn.Description,
		ActorID:       txn.ActorID.Ptr(),
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	txn.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets a transaction by ID
func (r *LedgerTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.LedgerTransaction, error) {
	var m models.LedgerTransaction
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toLedgerEntity(&m), nil
}

// ListByAccount returns an account's transactions, newest-first
func (r *LedgerTransactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entities.LedgerTransaction, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.LedgerTransaction{}).
		Where("account_id = ?", accountID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.LedgerTransaction
	if err := db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	txns := make([]*entities.LedgerTransaction, 0, len(ms))
	for i := range ms {
		txns = append(txns, toLedgerEntity(&ms[i]))
	}
	return txns, total, nil
}

// UpdateStatus resolves a PENDING transaction. COMPLETED and CANCELLED rows
// are immutable, so the update is guarded on the current status.
func (r *LedgerTransactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TransactionStatus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.LedgerTransaction{}).
		Where("id = ? AND status = ?", id, string(entities.TransactionStatusPending)).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvalidTransition
	}
	return nil
}

// ListCreditsByOrder returns COMPLETED credit postings referencing the order
func (r *LedgerTransactionRepository) ListCreditsByOrder(ctx context.Context, orderID uuid.UUID) ([]*entities.LedgerTransaction, error) {
	db := GetDB(ctx, r.db)
	var ms []models.LedgerTransaction
	if err := db.WithContext(ctx).
		Where("order_id = ? AND type = ? AND status = ?",
			orderID, string(entities.TransactionTypeCredit), string(entities.TransactionStatusCompleted)).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	txns := make([]*entities.LedgerTransaction, 0, len(ms))
	for i := range ms {
		txns = append(txns, toLedgerEntity(&ms[i]))
	}
	return txns, nil
}

// GetPendingByWithdrawal returns the PENDING reservation for a withdrawal
func (r *LedgerTransactionRepository) GetPendingByWithdrawal(ctx context.Context, withdrawalID uuid.UUID) (*entities.LedgerTransaction, error) {
	var m models.LedgerTransaction
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("withdrawal_id = ? AND status = ?", withdrawalID, string(entities.TransactionStatusPending)).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toLedgerEntity(&m), nil
}

func toLedgerEntity(m *models.LedgerTransaction) *entities.LedgerTransaction {
	return &entities.LedgerTransaction{
		ID:            m.ID,
		AccountID:     m.AccountID,
		Type:          entities.TransactionType(m.Type),
		Amount:        m.Amount,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Status:        entities.TransactionStatus(m.Status),
		OrderID:       m.OrderID,
		WithdrawalID:  m.WithdrawalID,
		Description:   m.Description,
		ActorID:       null.StringFromPtr(m.ActorID),
		CreatedAt:     m.CreatedAt,
	}
}
