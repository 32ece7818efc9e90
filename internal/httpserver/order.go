package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/laptop_shop/internal/middleware/auth"
	"github.com/Skotchmaster/laptop_shop/internal/mykafka"
	"github.com/Skotchmaster/laptop_shop/internal/service"
	"github.com/Skotchmaster/laptop_shop/internal/transport"
	"github.com/Skotchmaster/laptop_shop/internal/util"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req transport.OrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	view, err := h.Svc.CreateOrder(c.Request().Context(), userID, service.CreateOrderInput{
		ReceiverName:    req.ReceiverName,
		ReceiverAddress: req.ReceiverAddress,
		ReceiverPhone:   req.ReceiverPhone,
		Lines:           req.Items,
		CouponCode:      req.CouponCode,
	})
	if err != nil {
		return respondErr(c, err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(userID), map[string]any{
		"type":     "order_created",
		"user_id":  userID,
		"order_id": view.Order.ID,
		"total":    view.Order.TotalPrice,
	})
	return respondOK(c, http.StatusCreated, "order created", view)
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	orders, err := h.Svc.MyOrders(c.Request().Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "", orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	view, err := h.Svc.GetOrder(c.Request().Context(), userID, uint(orderID), authmw.HasAuthority(c, "ADMIN"))
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "", view)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	offset, limit := util.Calculate(page, size)

	orders, total, err := h.Svc.ListOrders(c.Request().Context(), c.QueryParam("status"), offset, limit)
	if err != nil {
		return respondErr(c, err)
	}
	if page < 1 {
		page = 1
	}
	return respondOK(c, http.StatusOK, "", transport.PagedResponse{
		Data: orders,
		Meta: transport.PageMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
		},
	})
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(c.Request().Context(), uint(orderID), req.Status)
	if err != nil {
		return respondErr(c, err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(order.UserID), map[string]any{
		"type":     "order_status_updated",
		"order_id": order.ID,
		"status":   order.Status,
	})
	return respondOK(c, http.StatusOK, "status updated", order)
}
