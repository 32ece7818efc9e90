package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/laptop_shop/internal/models"
	"github.com/Skotchmaster/laptop_shop/internal/service"
	"github.com/Skotchmaster/laptop_shop/internal/transport"
)

type CouponHandler struct {
	Svc *service.CatalogService
}

func (h *CouponHandler) CheckCoupon(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code is required")
	}
	coupon, err := h.Svc.CheckCoupon(c.Request().Context(), code)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "coupon found", coupon)
}

func (h *CouponHandler) CreateCoupon(c echo.Context) error {
	var req transport.CouponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	coupon := &models.Coupon{
		Code:           req.Code,
		DiscountAmount: req.DiscountAmount,
		MinOrderAmount: req.MinOrderAmount,
		ExpiryDate:     req.ExpiryDate,
		Active:         req.Active,
	}
	if err := h.Svc.CreateCoupon(c.Request().Context(), coupon); err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusCreated, "coupon created", coupon)
}
