package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const adminAuthority = "ADMIN"

func HasAuthority(c echo.Context, name string) bool {
	authorities, ok := c.Get("authorities").([]string)
	if !ok {
		return false
	}
	for _, a := range authorities {
		if a == name {
			return true
		}
	}
	return false
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireAuth(func(c echo.Context) error {
		if !HasAuthority(c, adminAuthority) {
			return echo.NewHTTPError(http.StatusForbidden, "admin role required")
		}
		return next(c)
	})
}
