package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/laptop_shop/internal/mykafka"
	"github.com/Skotchmaster/laptop_shop/internal/service"
	"github.com/Skotchmaster/laptop_shop/internal/transport"
	"github.com/Skotchmaster/laptop_shop/internal/util"
)

type ProductHandler struct {
	Svc      *service.CatalogService
	Producer *mykafka.Producer
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	product, err := h.Svc.GetProduct(c.Request().Context(), uint(id))
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "", product)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	offset, limit := util.Calculate(page, size)

	items, total, err := h.Svc.ListProducts(c.Request().Context(), offset, limit)
	if err != nil {
		return respondErr(c, err)
	}
	if page < 1 {
		page = 1
	}
	return respondOK(c, http.StatusOK, "", transport.PagedResponse{
		Data: items,
		Meta: transport.PageMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
		},
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.CreateProduct(c.Request().Context(), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return respondErr(c, err)
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(product.ID), map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
	})
	return respondOK(c, http.StatusCreated, "product created", product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.UpdateProduct(c.Request().Context(), uint(id), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return respondErr(c, err)
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(product.ID), map[string]any{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
	})
	return respondOK(c, http.StatusOK, "product updated", product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.Svc.DeleteProduct(c.Request().Context(), uint(id)); err != nil {
		return respondErr(c, err)
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(id), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})
	return c.NoContent(http.StatusNoContent)
}
