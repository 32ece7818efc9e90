package repo

import (
	"context"

	"github.com/Skotchmaster/laptop_shop/internal/models"
)

func (r *GormRepo) FindCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *GormRepo) CouponExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Coupon{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (r *GormRepo) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {
	return r.DB.WithContext(ctx).Create(coupon).Error
}
