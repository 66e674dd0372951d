package repository

import (
	"context"
	"storefront-api/internal/model"
	"time"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	FindByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	FindByUser(ctx context.Context, userID string) ([]*model.Order, error)
	GetOrderItems(ctx context.Context, orderNumber string) ([]*model.OrderItem, error)
	MarkPaidByIntent(ctx context.Context, tx *gorm.DB, intentID string) (*model.Order, error)
	MarkFailedByIntent(ctx context.Context, tx *gorm.DB, intentID string) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *orderRepoImpl) FindByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) GetOrderItems(ctx context.Context, orderNumber string) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *orderRepoImpl) MarkPaidByIntent(ctx context.Context, tx *gorm.DB, intentID string) (*model.Order, error) {
	var order model.Order
	err := tx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Order{}).
			Where("payment_intent_id = ?", intentID).
			Where("status = ?", model.OrderStatusPending).
			Updates(map[string]interface{}{
				"status":     model.OrderStatusPaid,
				"updated_at": time.Now(),
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("payment_intent_id = ?", intentID).First(&order).Error
	})

	return &order, err
}

func (r *orderRepoImpl) MarkFailedByIntent(ctx context.Context, tx *gorm.DB, intentID string) error {
	return tx.WithContext(ctx).Model(&model.Order{}).
		Where("payment_intent_id = ?", intentID).
		Where("status = ?", model.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":     model.OrderStatusFailed,
			"updated_at": time.Now(),
		}).Error
}
