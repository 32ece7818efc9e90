package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/laptop_shop/internal/logging"
	"github.com/Skotchmaster/laptop_shop/internal/mykafka"
	"github.com/Skotchmaster/laptop_shop/internal/service"
	"github.com/Skotchmaster/laptop_shop/internal/transport"
)

type AuthHandler struct {
	Svc      *service.AuthService
	Producer *mykafka.Producer
}

func getUserID(c echo.Context) (uint, error) {
	id, ok := c.Get("user_id").(uint)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return id, nil
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(c.Request().Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return respondErr(c, err)
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})
	return respondOK(c, http.StatusOK, "register success", user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondErr(c, err)
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(res.User.ID), map[string]any{
		"type":     "user_logged_in",
		"user_id":  res.User.ID,
		"username": res.User.Username,
	})
	return respondOK(c, http.StatusOK, "login success", transport.AuthResponse{
		Token:        res.AccessToken,
		RefreshToken: res.RefreshToken,
		User:         res.User,
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req transport.RefreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	access, err := h.Svc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "", transport.AuthResponse{Token: access})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Logout(c.Request().Context(), userID); err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "logged out", nil)
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req transport.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "password changed", nil)
}

// ForgotPassword answers identically whether or not the identifier resolves,
// so callers cannot probe for accounts.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req transport.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil || req.Identifier == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.ForgotPassword(c.Request().Context(), req.Identifier); err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			return respondErr(c, err)
		}
		logging.FromContext(c.Request().Context()).Info("forgot password for unknown identifier")
	}
	return respondOK(c, http.StatusOK, "if the account exists, a reset code has been sent", nil)
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req transport.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.ResetPassword(c.Request().Context(), req.Code, req.NewPassword); err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "password has been reset", nil)
}

func (h *AuthHandler) Profile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	user, err := h.Svc.Profile(c.Request().Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "", user)
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req transport.ProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateProfile(c.Request().Context(), userID, service.ProfileUpdate{
		Email:    req.Email,
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, http.StatusOK, "profile updated", user)
}
