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

// PaymentRepository implements gateway payment data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment record
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	m := &models.Payment{
		ID:               payment.ID,
		OrderID:          payment.OrderID,
		GatewayPaymentID: payment.GatewayPaymentID,
		Amount:           payment.Amount,
		Status:           string(payment.Status),
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return translateCreateError(err)
	}
	payment.CreatedAt = m.CreatedAt
	payment.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByGatewayID gets a payment by the gateway's payment id
func (r *PaymentRepository) GetByGatewayID(ctx context.Context, gatewayPaymentID string) (*entities.Payment, error) {
	var m models.Payment
	db := GetLockedDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("gateway_payment_id = ?", gatewayPaymentID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toPaymentEntity(&m), nil
}

// GetByID gets a payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	var m models.Payment
	db := GetLockedDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toPaymentEntity(&m), nil
}

// UpdateStatus updates the payment status
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CountApprovedByOrder counts payments still APPROVED on the order
func (r *PaymentRepository) CountApprovedByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	db := GetDB(ctx, r.db)
	var total int64
	err := db.WithContext(ctx).Model(&models.Payment{}).
		Where("order_id = ? AND status = ?", orderID, string(entities.PaymentStatusApproved)).
		Count(&total).Error
	return total, err
}

func toPaymentEntity(m *models.Payment) *entities.Payment {
	return &entities.Payment{
		ID:               m.ID,
		OrderID:          m.OrderID,
		GatewayPaymentID: m.GatewayPaymentID,
		Amount:           m.Amount,
		Status:           entities.PaymentStatus(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
