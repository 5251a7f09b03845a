// Package character implements the CRUD surface for Character records
package character

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/lorekeep/lorekeep/core"
)

var tracer = otel.Tracer("character")

// Handler is the interface for handling HTTP requests
type Handler interface {
	List(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
}

type handler struct {
	service Service
}

// NewHandler creates a new handler
func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// List returns the requester's characters, optionally narrowed by ?search=
func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Character.Handler.List")
	defer span.End()

	requester, ok := c.Get(core.RequesterIdCtxKey).(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	characters, err := h.service.List(ctx, requester, c.QueryParam("search"))
	if err != nil {
		span.RecordError(err)
		return core.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"characters": characters})
}

// Create validates the required fields and stores a new character
func (h handler) Create(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Character.Handler.Create")
	defer span.End()

	requester, ok := c.Get(core.RequesterIdCtxKey).(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var request createRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "details": err.Error()})
	}

	if request.Name == "" || request.Role == "" || request.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Name, role, and description are required"})
	}

	created, err := h.service.Create(ctx, core.Character{
		UserID:        requester,
		Name:          request.Name,
		Age:           request.Age,
		Role:          request.Role,
		Description:   request.Description,
		Background:    request.Background,
		Personality:   request.Personality,
		Appearance:    request.Appearance,
		Relationships: request.Relationships,
		Motivations:   request.Motivations,
	})
	if err != nil {
		span.RecordError(err)
		return core.RespondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"character": created})
}

// Update applies a partial edit to one of the requester's characters
func (h handler) Update(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Character.Handler.Update")
	defer span.End()

	requester, ok := c.Get(core.RequesterIdCtxKey).(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var request updateRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "details": err.Error()})
	}

	updated, err := h.service.Update(ctx, requester, c.Param("id"), request.patch())
	if err != nil {
		span.RecordError(err)
		return core.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"character": updated})
}

// Delete removes one of the requester's characters
func (h handler) Delete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Character.Handler.Delete")
	defer span.End()

	requester, ok := c.Get(core.RequesterIdCtxKey).(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	deleted, err := h.service.Delete(ctx, requester, c.Param("id"))
	if err != nil {
		span.RecordError(err)
		return core.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Character deleted successfully", "character": deleted})
}
