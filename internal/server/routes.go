package server

import (
	"net/http"

	"clothesmanager/internal/config"
	"clothesmanager/internal/domain/model"
	"clothesmanager/internal/middleware"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// 認証不要
	authGroup := e.Group("/auth")
	h.Auth.RegisterPublic(authGroup)

	// これ以降はJWT必須
	api := e.Group("/api", middleware.AuthJWT(cfg))

	h.Auth.RegisterProtected(api.Group("/auth"))
	h.Material.Register(api)
	h.Order.Register(api)
	h.Store.Register(api)
	h.User.Register(api)
	h.Dashboard.Register(api)

	// sizeのマスタ管理はSUPER_ADMINだけ。参照は全員可なのでGETは素のapi配下。
	adminOnly := api.Group("", middleware.RequireRole(model.RoleSuperAdmin))
	h.Size.RegisterAdmin(adminOnly)
	h.Size.RegisterRead(api)
}
