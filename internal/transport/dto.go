package transport

import (
	"time"

	"github.com/Skotchmaster/laptop_shop/internal/models"
	"github.com/Skotchmaster/laptop_shop/internal/service"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	User         *models.User `json:"user,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ForgotPasswordRequest struct {
	Identifier string `json:"identifier"`
}

type ResetPasswordRequest struct {
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type ProfileRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type CartItemRequest struct {
	ProductID uint  `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

type OrderRequest struct {
	ReceiverName    string              `json:"receiver_name"`
	ReceiverAddress string              `json:"receiver_address"`
	ReceiverPhone   string              `json:"receiver_phone"`
	Items           []service.OrderLine `json:"items"`
	CouponCode      string              `json:"coupon_code,omitempty"`
}

type OrderStatusRequest struct {
	Status string `json:"status"`
}

type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int64   `json:"quantity"`
	CategoryID  uint    `json:"category_id"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

type CouponRequest struct {
	Code           string    `json:"code"`
	DiscountAmount float64   `json:"discount_amount"`
	MinOrderAmount float64   `json:"min_order_amount"`
	ExpiryDate     time.Time `json:"expiry_date"`
	Active         bool      `json:"active"`
}

type WishlistRequest struct {
	ProductID uint `json:"product_id"`
}

type ReviewRequest struct {
	ProductID uint   `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type AddressRequest struct {
	ReceiverName string `json:"receiver_name"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	District     string `json:"district"`
	Ward         string `json:"ward"`
	Street       string `json:"street"`
	IsDefault    bool   `json:"is_default"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

type PagedResponse struct {
	Data any      `json:"data"`
	Meta PageMeta `json:"meta"`
}
