package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qent/car-rental-system/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty uid proves
// the middleware ran and the token carried an identity.
func ctxClaims(c echo.Context) (uid string, role domain.Role, err error) {
	uid, _ = c.Get("uid").(string)
	if uid == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	r, _ := c.Get("role").(string)
	return uid, domain.Role(r), nil
}
