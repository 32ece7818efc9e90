package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/laptop_shop/internal/logging"
	"github.com/Skotchmaster/laptop_shop/internal/mykafka"
	"github.com/Skotchmaster/laptop_shop/internal/service"
)

// Response is the uniform envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondOK(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Response{Success: true, Message: message, Data: data})
}

// respondErr maps business errors to status codes; anything unclassified is
// logged in full and answered with a generic message.
func respondErr(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, service.ErrValidation):
		code, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInsufficientStock):
		code, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCoupon):
		code, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrExpired):
		code, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotFound):
		code, message = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrConflict):
		code, message = http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthorized):
		code, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrForbidden):
		code, message = http.StatusForbidden, err.Error()
	default:
		logging.FromContext(c.Request().Context()).Error("unhandled error", "error", err)
	}

	return c.JSON(code, Response{Success: false, Message: message})
}

// ErrorHandler serializes errors raised by echo itself (404, middleware
// rejections) into the same envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			message = s
		}
	} else {
		logging.FromContext(c.Request().Context()).Error("unhandled error", "error", err)
	}

	_ = c.JSON(code, Response{Success: false, Message: message})
}

func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "topic", topic, "error", err)
	}
}
