package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/laptop_shop/internal/service"
	"github.com/Skotchmaster/laptop_shop/internal/transport"
)

type CategoryHandler struct {
	Svc *service.CatalogService
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	items, err := h.Svc.ListCategories(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "", items)
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	category, err := h.Svc.CreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusCreated, "category created", category)
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	category, err := h.Svc.UpdateCategory(c.Request().Context(), uint(id), req.Name)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "category updated", category)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.Svc.DeleteCategory(c.Request().Context(), uint(id)); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
