package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance: the API under /api/v1 validated
// against openapi.yaml, the swagger UI under /swagger and /health.
func NewRouter(server ServerInterface, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := loadSpec()
	if err != nil {
		return nil, err
	}
	validator, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	logger = logger.With("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(context.Background(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", validator)
	RegisterHandlers(api, server)

	return e, nil
}
