// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/biztime/api/internal/handler"
	"github.com/biztime/api/internal/middleware"
	"github.com/biztime/api/internal/server"
	"github.com/labstack/echo/v4"
)

// New builds the Echo instance with the full middleware stack and all
// routes registered. The returned value is handed to the HTTP server as
// a plain http.Handler.
func New(s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// All errors, including echo's own route 404s, funnel through the
	// global error handler so the envelope shape is uniform.
	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	e.Use(middleware.RequestID())
	e.Use(mw.ContextEnhancer.EnhanceContext())
	e.Use(mw.Global.RequestLogger())
	e.Use(mw.Global.Recover())
	e.Use(mw.Global.CORS())
	e.Use(mw.Global.Secure())

	registerSystemRoutes(e, h)
	registerCompanyRoutes(e, h)
	registerInvoiceRoutes(e, h)
	registerIndustryRoutes(e, h)

	return e
}

func registerCompanyRoutes(e *echo.Echo, h *handler.Handlers) {
	e.GET("/companies", handler.Handle(h.Companies.List, http.StatusOK))
	e.GET("/companies/:code", handler.Handle(h.Companies.Get, http.StatusOK))
	e.POST("/companies", handler.Handle(h.Companies.Create, http.StatusCreated))
	e.PUT("/companies/:code", handler.Handle(h.Companies.Update, http.StatusOK))
	e.DELETE("/companies/:code", handler.Handle(h.Companies.Delete, http.StatusOK))
}

func registerInvoiceRoutes(e *echo.Echo, h *handler.Handlers) {
	e.GET("/invoices", handler.Handle(h.Invoices.List, http.StatusOK))
	e.GET("/invoices/:id", handler.Handle(h.Invoices.Get, http.StatusOK))
	e.POST("/invoices", handler.Handle(h.Invoices.Create, http.StatusCreated))
	e.PUT("/invoices/:id", handler.Handle(h.Invoices.Update, http.StatusOK))
	e.DELETE("/invoices/:id", handler.Handle(h.Invoices.Delete, http.StatusOK))
}

func registerIndustryRoutes(e *echo.Echo, h *handler.Handlers) {
	e.GET("/industries", handler.Handle(h.Industries.List, http.StatusOK))
	e.POST("/industries", handler.Handle(h.Industries.Create, http.StatusCreated))
	e.POST("/industries/:code/companies/:comp_code", handler.Handle(h.Industries.Associate, http.StatusCreated))
}
