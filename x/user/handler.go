// Package user implements account listing and creation.
// Unlike the record resources its responses carry an explicit success
// flag, which the dashboard's account screens key off.
package user

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/lorekeep/lorekeep/core"
)

var tracer = otel.Tracer("user")

// Handler is the interface for handling HTTP requests
type Handler interface {
	List(c echo.Context) error
	Create(c echo.Context) error
}

type handler struct {
	service Service
}

// NewHandler creates a new handler
func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// List returns every account, newest first
func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "User.Handler.List")
	defer span.End()

	users, err := h.service.List(ctx)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "users": users})
}

// Create stores a new account
func (h handler) Create(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "User.Handler.Create")
	defer span.End()

	var request createRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid request"})
	}

	created, err := h.service.Create(ctx, core.User{
		Name:  request.Name,
		Email: request.Email,
		Age:   request.Age,
	})
	if err != nil {
		span.RecordError(err)

		var alreadyExists core.ErrorAlreadyExists
		var validation core.ErrorValidation
		switch {
		case errors.As(err, &alreadyExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Email already exists"})
		case errors.As(err, &validation):
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": validation.Message})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": err.Error()})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "user": created})
}
