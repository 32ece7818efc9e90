package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/laptop_shop/internal/service"
	"github.com/Skotchmaster/laptop_shop/internal/transport"
)

type AddressHandler struct {
	Svc *service.AddressService
}

func (h *AddressHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	addresses, err := h.Svc.MyAddresses(c.Request().Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "", addresses)
}

func (h *AddressHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req transport.AddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	address, err := h.Svc.CreateAddress(c.Request().Context(), userID, addressInput(req))
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusCreated, "address created", address)
}

func (h *AddressHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.AddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	address, err := h.Svc.UpdateAddress(c.Request().Context(), userID, uint(id), addressInput(req))
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "address updated", address)
}

func (h *AddressHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeleteAddress(c.Request().Context(), userID, uint(id)); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AddressHandler) SetDefault(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	address, err := h.Svc.SetDefaultAddress(c.Request().Context(), userID, uint(id))
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "default address set", address)
}

func addressInput(req transport.AddressRequest) service.AddressInput {
	return service.AddressInput{
		ReceiverName: req.ReceiverName,
		Phone:        req.Phone,
		City:         req.City,
		District:     req.District,
		Ward:         req.Ward,
		Street:       req.Street,
		IsDefault:    req.IsDefault,
	}
}
