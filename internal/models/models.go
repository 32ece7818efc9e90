package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"      json:"id"`
	Username     string    `gorm:"unique;not null"               json:"username"`
	Email        string    `gorm:"unique;not null"               json:"email"`
	PasswordHash string    `gorm:"not null"                      json:"-"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Roles        []Role    `gorm:"many2many:user_roles"          json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Role struct {
	ID          string       `gorm:"primaryKey"                  json:"id"`
	Description string       `json:"description"`
	Permissions []Permission `gorm:"many2many:role_permissions"  json:"permissions"`
}

type Permission struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Description string `json:"description"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Quantity    int64   `gorm:"not null;default:0"       json:"quantity"`
	Sold        int64   `gorm:"not null;default:0"       json:"sold"`
	CategoryID  uint    `gorm:"index"                    json:"category_id"`
}

type Cart struct {
	ID     uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint    `gorm:"uniqueIndex;not null"     json:"user_id"`
	Sum    float64 `gorm:"not null;default:0"       json:"sum"`
}

type CartDetail struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"                json:"id"`
	CartID    uint    `gorm:"index;not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_cart_product"   json:"product_id"`
	Quantity  int64   `gorm:"not null;check:quantity>0"               json:"quantity"`
	Price     float64 `gorm:"not null"                                json:"price"`
}

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

type Order struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint      `gorm:"index;not null"           json:"user_id"`
	ReceiverName    string    `gorm:"not null"                 json:"receiver_name"`
	ReceiverAddress string    `gorm:"not null"                 json:"receiver_address"`
	ReceiverPhone   string    `gorm:"not null"                 json:"receiver_phone"`
	Status          string    `gorm:"not null"                 json:"status"`
	TotalPrice      float64   `gorm:"not null"                 json:"total_price"`
	CouponCode      string    `json:"coupon_code,omitempty"`
	DiscountAmount  float64   `json:"discount_amount"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type OrderDetail struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint    `gorm:"index;not null"           json:"order_id"`
	ProductID uint    `gorm:"not null"                 json:"product_id"`
	Quantity  int64   `gorm:"not null"                 json:"quantity"`
	Price     float64 `gorm:"not null"                 json:"price"`
}

type Coupon struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Code           string    `gorm:"unique;not null"          json:"code"`
	DiscountAmount float64   `gorm:"not null"                 json:"discount_amount"`
	MinOrderAmount float64   `gorm:"not null"                 json:"min_order_amount"`
	ExpiryDate     time.Time `json:"expiry_date"`
	Active         bool      `gorm:"not null;default:true"    json:"active"`
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TokenHash string    `gorm:"uniqueIndex;not null"     json:"-"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"                 json:"expires_at"`
}

type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Code      string    `gorm:"index;not null"           json:"-"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"                 json:"expires_at"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	ProductID uint      `gorm:"index;not null"           json:"product_id"`
	Rating    int       `gorm:"not null"                 json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type Address struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint   `gorm:"index;not null"           json:"user_id"`
	ReceiverName string `json:"receiver_name"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	District     string `json:"district"`
	Ward         string `json:"ward"`
	Street       string `json:"street"`
	IsDefault    bool   `gorm:"not null;default:false"   json:"is_default"`
}

type Wishlist struct {
	ID        uint `gorm:"primaryKey;autoIncrement"                    json:"id"`
	UserID    uint `gorm:"index;not null;uniqueIndex:idx_user_product" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_user_product"       json:"product_id"`
}
