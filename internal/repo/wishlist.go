package repo

import (
	"context"

	"github.com/Skotchmaster/laptop_shop/internal/models"
)

func (r *GormRepo) ListWishlist(ctx context.Context, userID uint) ([]models.Wishlist, error) {
	var items []models.Wishlist
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) AddWishlistItem(ctx context.Context, item *models.Wishlist) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
		FirstOrCreate(item).Error
}

func (r *GormRepo) RemoveWishlistItem(ctx context.Context, userID, productID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Wishlist{}).Error
}
