package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/laptop_shop/internal/logging"
	"github.com/Skotchmaster/laptop_shop/internal/models"
	"github.com/Skotchmaster/laptop_shop/internal/repo"
)

type OrderService struct {
	Repo *repo.GormRepo
}

type OrderLine struct {
	ProductID uint  `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CreateOrderInput struct {
	ReceiverName    string
	ReceiverAddress string
	ReceiverPhone   string
	Lines           []OrderLine
	CouponCode      string
}

type OrderView struct {
	Order *models.Order        `json:"order"`
	Items []models.OrderDetail `json:"items"`
}

// CreateOrder runs the whole placement as one transaction: header in PENDING,
// one detail row per line with the price snapshotted at this instant, a
// guarded stock decrement per product, then the accumulated total (minus a
// validated coupon discount). Any failure rolls everything back.
func (s *OrderService) CreateOrder(ctx context.Context, userID uint, in CreateOrderInput) (*OrderView, error) {
	l := logging.FromContext(ctx).With("svc", "order.create", "user_id", userID)

	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: order lines required", ErrValidation)
	}

	var view OrderView
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if _, err := tx.FindUserByID(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user", ErrNotFound)
			}
			return err
		}

		order := &models.Order{
			UserID:          userID,
			ReceiverName:    in.ReceiverName,
			ReceiverAddress: in.ReceiverAddress,
			ReceiverPhone:   in.ReceiverPhone,
			Status:          models.OrderStatusPending,
			TotalPrice:      0,
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		var total float64
		details := make([]models.OrderDetail, 0, len(in.Lines))
		for _, line := range in.Lines {
			if line.Quantity <= 0 {
				return fmt.Errorf("%w: quantity must be > 0", ErrValidation)
			}

			product, err := tx.FindProduct(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrNotFound, line.ProductID)
				}
				return err
			}

			ok, err := tx.TryDecrementStock(ctx, product.ID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}

			detail := models.OrderDetail{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			}
			if err := tx.CreateOrderDetail(ctx, &detail); err != nil {
				return err
			}
			details = append(details, detail)
			total += float64(line.Quantity) * product.Price
		}

		if in.CouponCode != "" {
			discount, err := s.validateCoupon(ctx, tx, in.CouponCode, total)
			if err != nil {
				return err
			}
			order.CouponCode = in.CouponCode
			order.DiscountAmount = discount
			total -= discount
			if total < 0 {
				total = 0
			}
		}

		order.TotalPrice = total
		if err := tx.SaveOrder(ctx, order); err != nil {
			return err
		}

		view = OrderView{Order: order, Items: details}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.Info("order created", "order_id", view.Order.ID, "total", view.Order.TotalPrice)
	return &view, nil
}

// validateCoupon never ignores an invalid code: inactive, expired or
// below-minimum coupons fail the whole order.
func (s *OrderService) validateCoupon(ctx context.Context, tx *repo.GormRepo, code string, subtotal float64) (float64, error) {
	coupon, err := tx.FindCouponByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: unknown code %s", ErrInvalidCoupon, code)
		}
		return 0, err
	}
	if !coupon.Active {
		return 0, fmt.Errorf("%w: coupon is inactive", ErrInvalidCoupon)
	}
	if !coupon.ExpiryDate.IsZero() && coupon.ExpiryDate.Before(time.Now()) {
		return 0, fmt.Errorf("%w: coupon has expired", ErrInvalidCoupon)
	}
	if subtotal < coupon.MinOrderAmount {
		return 0, fmt.Errorf("%w: order total below coupon minimum", ErrInvalidCoupon)
	}
	return coupon.DiscountAmount, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uint, isAdmin bool) (*OrderView, error) {
	order, err := s.Repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, fmt.Errorf("%w: order belongs to another user", ErrForbidden)
	}

	items, err := s.Repo.ListOrderDetails(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &OrderView{Order: order, Items: items}, nil
}

func (s *OrderService) MyOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Repo.ListOrdersByUser(ctx, userID)
}

func (s *OrderService) ListOrders(ctx context.Context, status string, offset, limit int) ([]models.Order, int64, error) {
	return s.Repo.ListOrders(ctx, status, offset, limit)
}

// UpdateStatus is an administrative transition with no inventory side
// effects; cancelling does not restock.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	if status == "" {
		return nil, fmt.Errorf("%w: status required", ErrValidation)
	}
	order, err := s.Repo.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	return order, nil
}
