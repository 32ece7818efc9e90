package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/laptop_shop/internal/service"
	"github.com/Skotchmaster/laptop_shop/internal/transport"
)

type WishlistHandler struct {
	Svc *service.CatalogService
}

func (h *WishlistHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	items, err := h.Svc.Wishlist(c.Request().Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "", items)
}

func (h *WishlistHandler) Add(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	var req transport.WishlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	item, err := h.Svc.AddToWishlist(c.Request().Context(), userID, req.ProductID)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "", item)
}

func (h *WishlistHandler) Remove(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.Svc.RemoveFromWishlist(c.Request().Context(), userID, uint(productID)); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
