package server

import (
	"clothesmanager/internal/config"
	"clothesmanager/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Handlers はルーティングに必要なhandler一式。
type Handlers struct {
	Auth      *handler.AuthHandler
	Material  *handler.MaterialHandler
	Order     *handler.OrderHandler
	Store     *handler.StoreHandler
	Size      *handler.SizeHandler
	User      *handler.UserHandler
	Dashboard *handler.DashboardHandler
}

// New はechoを組み立てて返す。Startは呼ばない。
func New(cfg config.Config, logger *zap.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(requestLogger(logger))

	registerRoutes(e, cfg, h)
	return e
}

// requestLogger はzapでアクセスログを出す。
func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	})
}
