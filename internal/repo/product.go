package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/laptop_shop/internal/models"
)

func (r *GormRepo) FindProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Product
	err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Save(product).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Product{}, id).Error
}

// TryDecrementStock performs the stock check and decrement as one guarded
// UPDATE. It reports false when the remaining quantity is smaller than qty,
// so two concurrent orders can never both consume the last unit.
func (r *GormRepo) TryDecrementStock(ctx context.Context, productID uint, qty int64) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", productID, qty).
		UpdateColumns(map[string]any{
			"quantity": gorm.Expr("quantity - ?", qty),
			"sold":     gorm.Expr("sold + ?", qty),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) FindCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

func (r *GormRepo) SaveCategory(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).Save(category).Error
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Category{}, id).Error
}
