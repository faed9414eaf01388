package repository

import (
	"context"
	"errors"

	"salon-booking/internal/domain/entity"
	domainRepo "salon-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type orderRepository struct{}

func NewOrderRepository() domainRepo.OrderRepository {
	return &orderRepository{}
}

func (r *orderRepository) Create(ctx context.Context, db *gorm.DB, order *entity.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) FindByRemoteID(ctx context.Context, db *gorm.DB, remoteOrderID string) (*entity.Order, error) {
	var order entity.Order
	err := db.WithContext(ctx).Where("remote_order_id = ?", remoteOrderID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// FindActive pages through orders whose remote status can still change, oldest first.
func (r *orderRepository) FindActive(ctx context.Context, db *gorm.DB, limit, offset int) ([]entity.Order, error) {
	var orders []entity.Order
	err := db.WithContext(ctx).
		Where("status IN ?", entity.ActiveOrderStatuses).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus changes the status only when it differs.
// Returns affected rows: 0 means unknown order or unchanged status.
func (r *orderRepository) UpdateStatus(ctx context.Context, db *gorm.DB, remoteOrderID string, status entity.OrderStatus) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Order{}).
		Where("remote_order_id = ? AND status != ?", remoteOrderID, status).
		Update("status", status)
	return result.RowsAffected, result.Error
}
