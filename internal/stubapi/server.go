// Package stubapi is a self-contained development stand-in for the
// document service backend. It reproduces the API contract the client
// depends on, the login endpoint, the bearer-authenticated /api/ surface
// and the error envelope, over an in-memory fixture dataset, so the
// client can be exercised end to end with no external services.
package stubapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/docustore/admin-console/internal/core/domain"
)

// Options configures the stub server.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Log       zerolog.Logger
}

// New builds the Echo instance with all routes registered.
func New(opts Options) *echo.Echo {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = newHTTPErrorHandler(opts.Log)
	e.Validator = &structValidator{v: validator.New()}

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	h := &handlers{store: newStore(), jwtSecret: opts.JWTSecret, tokenTTL: opts.TokenTTL}

	e.POST("/auth/login", h.login)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api", auth(opts.JWTSecret))
	api.GET("/documents", h.listDocuments)
	api.GET("/documents/:id", h.getDocument)
	api.DELETE("/documents/:id", h.deleteDocument, requireRole(domain.RoleSysAdmin))
	api.GET("/users", h.listUsers, requireRole(domain.RoleSysAdmin))
	api.GET("/users/:id", h.getUser, requireRole(domain.RoleSysAdmin))
	api.GET("/companies", h.listCompanies)
	api.GET("/resource-types", h.listResourceTypes)
	api.GET("/acl", h.listACL, requireRole(domain.RoleSysAdmin))

	return e
}

// errorResponse is the canonical error envelope, identical to the real
// backend's: {"error": "<message>"}.
type errorResponse struct {
	Error string `json:"error"`
}

// newHTTPErrorHandler maps domain sentinels to their HTTP status codes and
// renders the envelope. Unexpected errors are logged and masked.
func newHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrAuthRejected):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// structValidator adapts go-playground/validator to echo's Validator
// interface.
type structValidator struct {
	v *validator.Validate
}

func (sv *structValidator) Validate(i any) error {
	return sv.v.Struct(i)
}
