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

// OrderRepository implements order data operations
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order together with its items
func (r *OrderRepository) Create(ctx context.Context, order *entities.Order) error {
	m := &models.Order{
		ID:            order.ID,
		CustomerRef:   order.CustomerRef,
		Total:         order.Total,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		AffiliateID:   order.AffiliateID,
		AffiliateRate: order.AffiliateRate,
		DeliveredAt:   order.DeliveredAt,
	}
	for _, item := range order.Items {
		m.Items = append(m.Items, models.OrderItem{
			ID:               item.ID,
			OrderID:          order.ID,
			SellerID:         item.SellerID,
			ProductRef:       item.ProductRef,
			ItemType:         string(item.ItemType),
			UnitPrice:        item.UnitPrice,
			Quantity:         item.Quantity,
			SourceBasePrice:  item.SourceBasePrice,
			CommissionRate:   item.CommissionRate,
			CommissionAmount: item.CommissionAmount,
			SellerRevenue:    item.SellerRevenue,
		})
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	order.CreatedAt = m.CreatedAt
	order.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an order with its items
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	var m models.Order
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toOrderEntity(&m), nil
}

// UpdateStatus updates the order status
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.OrderStatus) error {
	return r.updateColumn(ctx, id, "status", string(status))
}

// UpdatePaymentStatus updates the order payment status
func (r *OrderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error {
	return r.updateColumn(ctx, id, "payment_status", string(status))
}

// MarkDelivered sets the order DELIVERED and records the delivery time
func (r *OrderRepository) MarkDelivered(ctx context.Context, id uuid.UUID, at time.Time) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       string(entities.OrderStatusDelivered),
			"delivered_at": at,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) updateColumn(ctx context.Context, id uuid.UUID, column, value string) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			column:       value,
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

func toOrderEntity(m *models.Order) *entities.Order {
	o := &entities.Order{
		ID:            m.ID,
		CustomerRef:   m.CustomerRef,
		Total:         m.Total,
		Status:        entities.OrderStatus(m.Status),
		PaymentStatus: entities.PaymentStatus(m.PaymentStatus),
		AffiliateID:   m.AffiliateID,
		AffiliateRate: m.AffiliateRate,
		DeliveredAt:   m.DeliveredAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	for i := range m.Items {
		item := m.Items[i]
		o.Items = append(o.Items, &entities.OrderItem{
			ID:               item.ID,
			OrderID:          item.OrderID,
			SellerID:         item.SellerID,
			ProductRef:       item.ProductRef,
			ItemType:         entities.ItemType(item.ItemType),
			UnitPrice:        item.UnitPrice,
			Quantity:         item.Quantity,
			SourceBasePrice:  item.SourceBasePrice,
			CommissionRate:   item.CommissionRate,
			CommissionAmount: item.CommissionAmount,
			SellerRevenue:    item.SellerRevenue,
			CreatedAt:        item.CreatedAt,
		})
	}
	return o
}
