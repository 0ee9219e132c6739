// Package http assembles the echo server for the chat API, the answer proxy
// and the WebSocket feed.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/riyan-hx/Lumid.ai/internal/metrics"
	"github.com/riyan-hx/Lumid.ai/internal/service"
	"github.com/riyan-hx/Lumid.ai/internal/transport/http/proxy"
	v1 "github.com/riyan-hx/Lumid.ai/internal/transport/http/v1"
	"github.com/riyan-hx/Lumid.ai/internal/transport/ws"
)

// NewServer creates and configures the HTTP server.
func NewServer(svc *service.Service, proxyHandler *proxy.Handler, wsServer *ws.Server, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Register Routes
	v1.NewHandler(svc).RegisterRoutes(e)
	proxyHandler.RegisterRoutes(e)
	wsServer.RegisterRoutes(e)
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	return e
}
