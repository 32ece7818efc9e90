package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/laptop_shop/internal/mykafka"
	"github.com/Skotchmaster/laptop_shop/internal/service"
	"github.com/Skotchmaster/laptop_shop/internal/transport"
)

type CartHandler struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	view, err := h.Svc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "", view)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req transport.CartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	view, err := h.Svc.AddItem(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return respondErr(c, err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(userID), map[string]any{
		"type":       "cart_item_added",
		"user_id":    userID,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})
	return respondOK(c, http.StatusOK, "", view)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	lineID, err := strconv.Atoi(c.Param("id"))
	if err != nil || lineID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	view, err := h.Svc.UpdateItem(c.Request().Context(), userID, uint(lineID), req.Quantity)
	if err != nil {
		return respondErr(c, err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(userID), map[string]any{
		"type":     "cart_item_updated",
		"user_id":  userID,
		"line_id":  lineID,
		"quantity": req.Quantity,
	})
	return respondOK(c, http.StatusOK, "", view)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	lineID, err := strconv.Atoi(c.Param("id"))
	if err != nil || lineID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	view, err := h.Svc.RemoveItem(c.Request().Context(), userID, uint(lineID))
	if err != nil {
		return respondErr(c, err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(userID), map[string]any{
		"type":    "cart_item_removed",
		"user_id": userID,
		"line_id": lineID,
	})
	return respondOK(c, http.StatusOK, "", view)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.ClearCart(c.Request().Context(), userID); err != nil {
		return respondErr(c, err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(userID), map[string]any{
		"type":    "cart_cleared",
		"user_id": userID,
	})
	return respondOK(c, http.StatusOK, "cart cleared", nil)
}
