package middleware // middleware provides shared request processing for handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/FINZ1-ops/shop-api/internal/auth"
)

// Context keys set by TokenAuth for downstream middleware and handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// TokenAuth returns an Echo middleware that validates a Bearer access token
// and injects the authenticated user id and role into the request context.
// Expired tokens are reported distinctly from otherwise invalid ones so
// clients know whether to refresh or to re-authenticate; both cases are 401.
func TokenAuth(tokens *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"status": "error", "message": "missing authorization header",
				})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := tokens.ParseAccess(raw)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, auth.ErrExpired) {
					msg = "token expired"
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"status": "error", "message": msg,
				})
			}
			uid, err := auth.ParseID(claims.Subject)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"status": "error", "message": "invalid token",
				})
			}

			c.Set(CtxUserID, uid)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

// UserID extracts the authenticated user id stored by TokenAuth.
func UserID(c echo.Context) (uint64, bool) {
	uid, ok := c.Get(CtxUserID).(uint64)
	return uid, ok
}
