package handler

import (
	"time"

	"github.com/biztime/api/internal/middleware"
	"github.com/biztime/api/internal/server"
	"github.com/biztime/api/internal/validation"
	"github.com/labstack/echo/v4"
)

// Handler is the base handler type that holds shared application
// dependencies. Concrete handlers embed it so they can reach config and
// logger via *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler. Returning by value is fine: the
// struct only contains a pointer field, so copies share the same Server.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// RequestPtr constrains P to a pointer to the request struct that knows
// how to validate itself. The pointer form lets Handle allocate a fresh
// request value per call, so bound payloads are never shared between
// concurrent requests.
type RequestPtr[Req any] interface {
	*Req
	validation.Validatable
}

// Handle wraps a typed endpoint function with the shared execution
// pipeline:
//
//   - request binding + validation (path params and JSON body)
//   - structured logging with the request-scoped logger
//   - timing (validation duration, handler duration, total)
//   - JSON response writing with the given success status
//
// Errors are returned to Echo so the global error handler formats them.
//
// Usage:
//
//	e.POST("/companies", handler.Handle(h.Companies.Create, http.StatusCreated))
func Handle[Req any, P RequestPtr[Req], Res any](
	fn func(c echo.Context, req P) (Res, error),
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		method := c.Request().Method
		path := c.Path()

		logger := middleware.GetLogger(c).With().
			Str("operation", "handler").
			Str("method", method).
			Str("path", path).
			Logger()

		logger.Debug().Msg("handling request")

		req := P(new(Req))

		validationStart := time.Now()
		if err := validation.BindAndValidate(c, req); err != nil {
			logger.Warn().
				Err(err).
				Dur("validation_duration", time.Since(validationStart)).
				Msg("request validation failed")
			return err
		}
		validationDuration := time.Since(validationStart)

		handlerStart := time.Now()
		result, err := fn(c, req)
		handlerDuration := time.Since(handlerStart)

		if err != nil {
			logger.Warn().
				Err(err).
				Dur("handler_duration", handlerDuration).
				Dur("total_duration", time.Since(start)).
				Msg("handler execution failed")
			return err
		}

		logger.Info().
			Dur("validation_duration", validationDuration).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("request completed successfully")

		return c.JSON(status, result)
	}
}
