package repo

import (
	"context"

	"github.com/Skotchmaster/laptop_shop/internal/models"
)

func (r *GormRepo) ListAddresses(ctx context.Context, userID uint) ([]models.Address, error) {
	var addresses []models.Address
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *GormRepo) FindAddress(ctx context.Context, id uint) (*models.Address, error) {
	var address models.Address
	if err := r.DB.WithContext(ctx).First(&address, id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *GormRepo) CountAddresses(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Address{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *GormRepo) CreateAddress(ctx context.Context, address *models.Address) error {
	return r.DB.WithContext(ctx).Create(address).Error
}

func (r *GormRepo) SaveAddress(ctx context.Context, address *models.Address) error {
	return r.DB.WithContext(ctx).Save(address).Error
}

func (r *GormRepo) DeleteAddress(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Address{}, id).Error
}

// UnsetDefaultAddress clears the default flag on every address the user owns,
// keeping at most one default at any time.
func (r *GormRepo) UnsetDefaultAddress(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
