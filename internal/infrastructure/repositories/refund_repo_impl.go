package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sellhub.backend/internal/domain/entities"
	domainerrors "sellhub.backend/internal/domain/errors"
	"sellhub.backend/internal/infrastructure/models"
)

// RefundRepository implements refund record data operations
type RefundRepository struct {
	db *gorm.DB
}

// NewRefundRepository creates a new refund repository
func NewRefundRepository(db *gorm.DB) *RefundRepository {
	return &RefundRepository{db: db}
}

// Create appends a new refund record
func (r *RefundRepository) Create(ctx context.Context, refund *entities.Refund) error {
	m := &models.Refund{
		ID:                 refund.ID,
		PaymentID:          refund.PaymentID,
		OrderID:            refund.OrderID,
		GatewayRefundID:    refund.GatewayRefundID,
		Amount:             refund.Amount,
		ReconciliationNote: refund.ReconciliationNote,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return translateCreateError(err)
	}
	refund.CreatedAt = m.CreatedAt
	return nil
}

// GetByGatewayRefundID gets a refund by the gateway's refund id
func (r *RefundRepository) GetByGatewayRefundID(ctx context.Context, gatewayRefundID string) (*entities.Refund, error) {
	var m models.Refund
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("gateway_refund_id = ?", gatewayRefundID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toRefundEntity(&m), nil
}

// ListByOrder returns the refunds applied to an order
func (r *RefundRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*entities.Refund, error) {
	db := GetDB(ctx, r.db)
	var ms []models.Refund
	if err := db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	refunds := make([]*entities.Refund, 0, len(ms))
	for i := range ms {
		refunds = append(refunds, toRefundEntity(&ms[i]))
	}
	return refunds, nil
}

func toRefundEntity(m *models.Refund) *entities.Refund {
	return &entities.Refund{
		ID:                 m.ID,
		PaymentID:          m.PaymentID,
		OrderID:            m.OrderID,
		GatewayRefundID:    m.GatewayRefundID,
		Amount:             m.Amount,
		ReconciliationNote: m.ReconciliationNote,
		CreatedAt:          m.CreatedAt,
	}
}
