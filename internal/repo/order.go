package repo

import (
	"context"

	"github.com/Skotchmaster/laptop_shop/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) SaveOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Save(order).Error
}

func (r *GormRepo) FindOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) CreateOrderDetail(ctx context.Context, detail *models.OrderDetail) error {
	return r.DB.WithContext(ctx).Create(detail).Error
}

func (r *GormRepo) ListOrderDetails(ctx context.Context, orderID uint) ([]models.OrderDetail, error) {
	var details []models.OrderDetail
	err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *GormRepo) ListOrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, status string, offset, limit int) ([]models.Order, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	order, err := r.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Status = status
	if err := r.DB.WithContext(ctx).Model(order).Update("status", status).Error; err != nil {
		return nil, err
	}
	return order, nil
}
