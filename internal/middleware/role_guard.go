package middleware

import (
	"net/http"

	"clothesmanager/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// RequireRole はcontextのActorが指定roleのどれかを持つことを要求する。
func RequireRole(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFromContext(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("UNAUTHORIZED"))
			}

			for _, role := range allowed {
				if actor.Role == role {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, errorJSON("ACCESS_DENIED"))
		}
	}
}
