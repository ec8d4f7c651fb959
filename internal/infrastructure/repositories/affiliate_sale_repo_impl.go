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

// AffiliateSaleRepository implements affiliate sale data operations
type AffiliateSaleRepository struct {
	db *gorm.DB
}

// NewAffiliateSaleRepository creates a new affiliate sale repository
func NewAffiliateSaleRepository(db *gorm.DB) *AffiliateSaleRepository {
	return &AffiliateSaleRepository{db: db}
}

// Create creates a new affiliate sale
func (r *AffiliateSaleRepository) Create(ctx context.Context, sale *entities.AffiliateSale) error {
	m := toSaleModel(sale)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return translateCreateError(err)
	}
	sale.CreatedAt = m.CreatedAt
	sale.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a sale by ID. Honors WithLock inside a transaction.
func (r *AffiliateSaleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.AffiliateSale, error) {
	var m models.AffiliateSale
	db := GetLockedDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toSaleEntity(&m), nil
}

// GetByOrderID gets the sale attributed to an order, if any
func (r *AffiliateSaleRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entities.AffiliateSale, error) {
	var m models.AffiliateSale
	db := GetLockedDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("order_id = ?", orderID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toSaleEntity(&m), nil
}

// ListByAffiliate returns an affiliate's sales, newest-first
func (r *AffiliateSaleRepository) ListByAffiliate(ctx context.Context, affiliateID uuid.UUID, limit, offset int) ([]*entities.AffiliateSale, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.AffiliateSale{}).
		Where("affiliate_id = ?", affiliateID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.AffiliateSale
	if err := db.WithContext(ctx).
		Where("affiliate_id = ?", affiliateID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	sales := make([]*entities.AffiliateSale, 0, len(ms))
	for i := range ms {
		sales = append(sales, toSaleEntity(&ms[i]))
	}
	return sales, total, nil
}

// ListAvailable returns CONFIRMED sales withdrawable at asOf
func (r *AffiliateSaleRepository) ListAvailable(ctx context.Context, affiliateID uuid.UUID, asOf time.Time) ([]*entities.AffiliateSale, error) {
	db := GetLockedDB(ctx, r.db)
	var ms []models.AffiliateSale
	if err := db.WithContext(ctx).
		Where("affiliate_id = ? AND status = ? AND available_at IS NOT NULL AND available_at <= ?",
			affiliateID, string(entities.AffiliateSaleStatusConfirmed), asOf).
		Order("available_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	sales := make([]*entities.AffiliateSale, 0, len(ms))
	for i := range ms {
		sales = append(sales, toSaleEntity(&ms[i]))
	}
	return sales, nil
}

// Save persists the mutable fields of an existing sale
func (r *AffiliateSaleRepository) Save(ctx context.Context, sale *entities.AffiliateSale) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.AffiliateSale{}).
		Where("id = ?", sale.ID).
		Updates(map[string]interface{}{
			"status":       string(sale.Status),
			"confirmed_at": sale.ConfirmedAt,
			"available_at": sale.AvailableAt,
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

func toSaleModel(s *entities.AffiliateSale) *models.AffiliateSale {
	return &models.AffiliateSale{
		ID:               s.ID,
		AffiliateID:      s.AffiliateID,
		OrderID:          s.OrderID,
		OrderTotal:       s.OrderTotal,
		CommissionRate:   s.CommissionRate,
		CommissionAmount: s.CommissionAmount,
		Status:           string(s.Status),
		ConfirmedAt:      s.ConfirmedAt,
		AvailableAt:      s.AvailableAt,
	}
}

func toSaleEntity(m *models.AffiliateSale) *entities.AffiliateSale {
	return &entities.AffiliateSale{
		ID:               m.ID,
		AffiliateID:      m.AffiliateID,
		OrderID:          m.OrderID,
		OrderTotal:       m.OrderTotal,
		CommissionRate:   m.CommissionRate,
		CommissionAmount: m.CommissionAmount,
		Status:           entities.AffiliateSaleStatus(m.Status),
		ConfirmedAt:      m.ConfirmedAt,
		AvailableAt:      m.AvailableAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
