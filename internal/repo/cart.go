package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/laptop_shop/internal/models"
)

func (r *GormRepo) GetOrCreateCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID, Sum: 0}
	if err := r.DB.WithContext(ctx).Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) FindCartByUser(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) FindCartDetail(ctx context.Context, cartID, productID uint) (*models.CartDetail, error) {
	var detail models.CartDetail
	err := r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *GormRepo) FindCartDetailByID(ctx context.Context, id uint) (*models.CartDetail, error) {
	var detail models.CartDetail
	if err := r.DB.WithContext(ctx).First(&detail, id).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *GormRepo) ListCartDetails(ctx context.Context, cartID uint) ([]models.CartDetail, error) {
	var details []models.CartDetail
	err := r.DB.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id ASC").
		Find(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *GormRepo) CreateCartDetail(ctx context.Context, detail *models.CartDetail) error {
	return r.DB.WithContext(ctx).Create(detail).Error
}

func (r *GormRepo) SaveCartDetail(ctx context.Context, detail *models.CartDetail) error {
	return r.DB.WithContext(ctx).Save(detail).Error
}

func (r *GormRepo) DeleteCartDetail(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.CartDetail{}, id).Error
}

func (r *GormRepo) DeleteCartDetails(ctx context.Context, cartID uint) error {
	return r.DB.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartDetail{}).Error
}

// RecomputeCartSum rereads the lines and persists the derived total, keeping
// cart.sum == sum(line.quantity * line.price) after every mutation.
func (r *GormRepo) RecomputeCartSum(ctx context.Context, cart *models.Cart) error {
	details, err := r.ListCartDetails(ctx, cart.ID)
	if err != nil {
		return err
	}
	var sum float64
	for _, d := range details {
		sum += float64(d.Quantity) * d.Price
	}
	cart.Sum = sum
	return r.DB.WithContext(ctx).Model(cart).Update("sum", sum).Error
}
