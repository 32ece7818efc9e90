package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/laptop_shop/internal/models"
	"github.com/Skotchmaster/laptop_shop/internal/repo"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int64
	CategoryID  uint
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.FindProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	return s.Repo.ListProducts(ctx, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if in.Name == "" || in.Price <= 0 || in.Quantity < 0 {
		return nil, fmt.Errorf("%w: name required, price must be > 0, quantity >= 0", ErrValidation)
	}
	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		CategoryID:  in.CategoryID,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	if in.Name == "" || in.Price <= 0 || in.Quantity < 0 {
		return nil, fmt.Errorf("%w: name required, price must be > 0, quantity >= 0", ErrValidation)
	}
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Quantity = in.Quantity
	product.CategoryID = in.CategoryID
	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	return s.Repo.DeleteProduct(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	category := &models.Category{Name: name}
	if err := s.Repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, name string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	category, err := s.Repo.FindCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, id)
		}
		return nil, err
	}
	category.Name = name
	if err := s.Repo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return s.Repo.DeleteCategory(ctx, id)
}

func (s *CatalogService) CheckCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	coupon, err := s.Repo.FindCouponByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown code %s", ErrInvalidCoupon, code)
		}
		return nil, err
	}
	return coupon, nil
}

func (s *CatalogService) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {
	if coupon.Code == "" {
		return fmt.Errorf("%w: code required", ErrValidation)
	}
	if exists, err := s.Repo.CouponExists(ctx, coupon.Code); err != nil {
		return err
	} else if exists {
		return fmt.Errorf("%w: coupon code already exists", ErrConflict)
	}
	return s.Repo.CreateCoupon(ctx, coupon)
}

func (s *CatalogService) Wishlist(ctx context.Context, userID uint) ([]models.Wishlist, error) {
	return s.Repo.ListWishlist(ctx, userID)
}

func (s *CatalogService) AddToWishlist(ctx context.Context, userID, productID uint) (*models.Wishlist, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	item := &models.Wishlist{UserID: userID, ProductID: productID}
	if err := s.Repo.AddWishlistItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) RemoveFromWishlist(ctx context.Context, userID, productID uint) error {
	return s.Repo.RemoveWishlistItem(ctx, userID, productID)
}
