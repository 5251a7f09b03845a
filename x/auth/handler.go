// Package auth implements session issuance, revocation, and the
// requester-identification middleware.
package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/x/user"
)

var tracer = otel.Tracer("auth")

// Handler is the interface for handling HTTP requests
type Handler interface {
	Register(c echo.Context) error
	Login(c echo.Context) error
	Logout(c echo.Context) error
	Me(c echo.Context) error
}

type handler struct {
	service Service
	user    user.Service
}

// NewHandler creates a new handler
func NewHandler(service Service, user user.Service) Handler {
	return &handler{service: service, user: user}
}

// Register creates an account and returns its first session token
func (h handler) Register(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Auth.Handler.Register")
	defer span.End()

	var request registerRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request"})
	}

	if request.Name == "" || request.Email == "" || request.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Name, email, and password are required"})
	}

	created, token, err := h.service.Register(ctx, request.Name, request.Email, request.Password, request.Captcha, request.Age)
	if err != nil {
		span.RecordError(err)

		var alreadyExists core.ErrorAlreadyExists
		if errors.As(err, &alreadyExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email already exists"})
		}
		return core.RespondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"token": token, "user": created})
}

// Login checks the credential and returns a session token
func (h handler) Login(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Auth.Handler.Login")
	defer span.End()

	var request loginRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request"})
	}

	if request.Email == "" || request.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password are required"})
	}

	token, err := h.service.Login(ctx, request.Email, request.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
		}
		span.RecordError(err)
		return core.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// Logout revokes the presented token
func (h handler) Logout(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Auth.Handler.Logout")
	defer span.End()

	claims, ok := c.Get(core.RequesterClaimsCtxKey).(Claims)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	if err := h.service.Logout(ctx, claims); err != nil {
		span.RecordError(err)
		return core.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
}

// Me returns the requester's own account
func (h handler) Me(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Auth.Handler.Me")
	defer span.End()

	requester, ok := c.Get(core.RequesterIdCtxKey).(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	account, err := h.user.Get(ctx, requester)
	if err != nil {
		span.RecordError(err)
		return core.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"user": account})
}
