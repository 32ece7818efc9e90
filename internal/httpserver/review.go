package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/laptop_shop/internal/service"
	"github.com/Skotchmaster/laptop_shop/internal/transport"
)

type ReviewHandler struct {
	Svc *service.CatalogService
}

func (h *ReviewHandler) ProductReviews(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	reviews, err := h.Svc.ProductReviews(c.Request().Context(), uint(productID))
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "", reviews)
}

func (h *ReviewHandler) AddReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req transport.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	review, err := h.Svc.AddReview(c.Request().Context(), userID, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusCreated, "review added", review)
}
