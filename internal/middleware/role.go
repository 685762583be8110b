package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/FINZ1-ops/shop-api/internal/model"
)

// RoleSource looks up the current role and active flag for a user.  It is
// satisfied by repository.UserRepo.  The middleware reads the store on
// every request instead of trusting the token's role claim, so a demotion
// or a disabled account takes effect on the very next request even while
// the token is still cryptographically valid.
type RoleSource interface {
	RoleStatus(ctx context.Context, id uint64) (model.Role, bool, error)
}

// RequireRole returns a middleware that enforces that the authenticated
// user is active and holds one of the allowed roles.  It assumes TokenAuth
// ran earlier in the chain.  Disabled accounts and insufficient roles are
// both 403, with distinct messages.
func RequireRole(src RoleSource, roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := UserID(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"status": "error", "message": "unauthorized",
				})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			role, active, err := src.RoleStatus(ctx, uid)
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{
					"status": "error", "message": "account not found",
				})
			}
			if !active {
				return c.JSON(http.StatusForbidden, echo.Map{
					"status": "error", "message": "account disabled",
				})
			}
			if !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{
					"status": "error", "message": "role not permitted",
				})
			}
			// The stored role wins over the claim for everything downstream.
			c.Set(CtxRole, role)
			return next(c)
		}
	}
}
