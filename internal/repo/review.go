package repo

import (
	"context"

	"github.com/Skotchmaster/laptop_shop/internal/models"
)

func (r *GormRepo) ListReviewsByProduct(ctx context.Context, productID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Create(review).Error
}
