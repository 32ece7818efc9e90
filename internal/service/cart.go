package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/laptop_shop/internal/models"
	"github.com/Skotchmaster/laptop_shop/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

type CartView struct {
	Cart  *models.Cart        `json:"cart"`
	Items []models.CartDetail `json:"items"`
}

func (s *CartService) view(ctx context.Context, cart *models.Cart) (*CartView, error) {
	items, err := s.Repo.ListCartDetails(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return &CartView{Cart: cart, Items: items}, nil
}

func (s *CartService) GetCart(ctx context.Context, userID uint) (*CartView, error) {
	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

// AddItem merges into an existing line (refreshing its price snapshot to the
// product's current price) or creates a new one, then recomputes the sum.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity int64) (*CartView, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	var cart *models.Cart
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		product, err := tx.FindProduct(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %d", ErrNotFound, productID)
			}
			return err
		}
		if product.Quantity < quantity {
			return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
		}

		cart, err = tx.GetOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}

		detail, err := tx.FindCartDetail(ctx, cart.ID, productID)
		switch {
		case err == nil:
			detail.Quantity += quantity
			detail.Price = product.Price
			if err := tx.SaveCartDetail(ctx, detail); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			detail = &models.CartDetail{
				CartID:    cart.ID,
				ProductID: productID,
				Quantity:  quantity,
				Price:     product.Price,
			}
			if err := tx.CreateCartDetail(ctx, detail); err != nil {
				return err
			}
		default:
			return err
		}

		return tx.RecomputeCartSum(ctx, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

// UpdateItem sets the line quantity; zero or negative deletes the line.
func (s *CartService) UpdateItem(ctx context.Context, userID, lineID uint, quantity int64) (*CartView, error) {
	var cart *models.Cart
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		cart, err = tx.FindCartByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart", ErrNotFound)
			}
			return err
		}

		detail, err := tx.FindCartDetailByID(ctx, lineID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart item %d", ErrNotFound, lineID)
			}
			return err
		}
		if detail.CartID != cart.ID {
			return fmt.Errorf("%w: cart item does not belong to caller", ErrForbidden)
		}

		if quantity <= 0 {
			if err := tx.DeleteCartDetail(ctx, detail.ID); err != nil {
				return err
			}
			return tx.RecomputeCartSum(ctx, cart)
		}

		product, err := tx.FindProduct(ctx, detail.ProductID)
		if err != nil {
			return err
		}
		if product.Quantity < quantity {
			return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
		}

		detail.Quantity = quantity
		if err := tx.SaveCartDetail(ctx, detail); err != nil {
			return err
		}
		return tx.RecomputeCartSum(ctx, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, lineID uint) (*CartView, error) {
	var cart *models.Cart
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		cart, err = tx.FindCartByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart", ErrNotFound)
			}
			return err
		}

		detail, err := tx.FindCartDetailByID(ctx, lineID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart item %d", ErrNotFound, lineID)
			}
			return err
		}
		if detail.CartID != cart.ID {
			return fmt.Errorf("%w: cart item does not belong to caller", ErrForbidden)
		}

		if err := tx.DeleteCartDetail(ctx, detail.ID); err != nil {
			return err
		}
		return tx.RecomputeCartSum(ctx, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	return s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		cart, err := tx.FindCartByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.DeleteCartDetails(ctx, cart.ID); err != nil {
			return err
		}
		return tx.RecomputeCartSum(ctx, cart)
	})
}
