package repository

import (
	"context"

	"salon-booking/internal/domain/entity"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, db *gorm.DB, order *entity.Order) error
	FindByRemoteID(ctx context.Context, db *gorm.DB, remoteOrderID string) (*entity.Order, error)
	FindActive(ctx context.Context, db *gorm.DB, limit, offset int) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, remoteOrderID string, status entity.OrderStatus) (int64, error)
}
