package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/laptop_shop/internal/middleware/auth"
)

type Deps struct {
	AuthHandler     *AuthHandler
	CartHandler     *CartHandler
	OrderHandler    *OrderHandler
	ProductHandler  *ProductHandler
	CategoryHandler *CategoryHandler
	CouponHandler   *CouponHandler
	WishlistHandler *WishlistHandler
	ReviewHandler   *ReviewHandler
	AddressHandler  *AddressHandler
	SearchHandler   *SearchHandler
	Auth            *authmw.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh", d.AuthHandler.Refresh)
	auth.POST("/forgot-password", d.AuthHandler.ForgotPassword)
	auth.POST("/reset-password", d.AuthHandler.ResetPassword)
	auth.POST("/logout", d.AuthHandler.Logout, d.Auth.RequireAuth)
	auth.POST("/change-password", d.AuthHandler.ChangePassword, d.Auth.RequireAuth)
	auth.GET("/profile", d.AuthHandler.Profile, d.Auth.RequireAuth)
	auth.PUT("/profile", d.AuthHandler.UpdateProfile, d.Auth.RequireAuth)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.ListProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.GET("/search", d.SearchHandler.SearchProducts)
	products.POST("", d.ProductHandler.CreateProduct, d.Auth.RequireAdmin)
	products.PUT("/:id", d.ProductHandler.UpdateProduct, d.Auth.RequireAdmin)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, d.Auth.RequireAdmin)

	categories := api.Group("/categories")
	categories.GET("", d.CategoryHandler.ListCategories)
	categories.POST("", d.CategoryHandler.CreateCategory, d.Auth.RequireAdmin)
	categories.PUT("/:id", d.CategoryHandler.UpdateCategory, d.Auth.RequireAdmin)
	categories.DELETE("/:id", d.CategoryHandler.DeleteCategory, d.Auth.RequireAdmin)

	cart := api.Group("/cart", d.Auth.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/items", d.CartHandler.AddItem)
	cart.PUT("/items/:id", d.CartHandler.UpdateItem)
	cart.DELETE("/items/:id", d.CartHandler.RemoveItem)
	cart.DELETE("", d.CartHandler.ClearCart)

	orders := api.Group("/orders", d.Auth.RequireAuth)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("/my-orders", d.OrderHandler.MyOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.GET("", d.OrderHandler.ListOrders, d.Auth.RequireAdmin)
	orders.PUT("/:id/status", d.OrderHandler.UpdateStatus, d.Auth.RequireAdmin)

	coupons := api.Group("/coupons")
	coupons.GET("/check", d.CouponHandler.CheckCoupon)
	coupons.POST("", d.CouponHandler.CreateCoupon, d.Auth.RequireAdmin)

	reviews := api.Group("/reviews")
	reviews.GET("/product/:productId", d.ReviewHandler.ProductReviews)
	reviews.POST("", d.ReviewHandler.AddReview, d.Auth.RequireAuth)

	addresses := api.Group("/addresses", d.Auth.RequireAuth)
	addresses.GET("", d.AddressHandler.List)
	addresses.POST("", d.AddressHandler.Create)
	addresses.PUT("/:id", d.AddressHandler.Update)
	addresses.DELETE("/:id", d.AddressHandler.Delete)
	addresses.PUT("/:id/default", d.AddressHandler.SetDefault)

	wishlist := api.Group("/wishlist", d.Auth.RequireAuth)
	wishlist.GET("", d.WishlistHandler.List)
	wishlist.POST("", d.WishlistHandler.Add)
	wishlist.DELETE("/:productId", d.WishlistHandler.Remove)
}
