// Package place implements the CRUD surface for Place records
package place

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/lorekeep/lorekeep/core"
)

var tracer = otel.Tracer("place")

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

// List returns the requester's places, optionally narrowed by ?search=
func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Place.Handler.List")
	defer span.End()

	requester, ok := c.Get(core.RequesterIdCtxKey).(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	places, err := h.service.List(ctx, requester, c.QueryParam("search"))
	if err != nil {
		span.RecordError(err)
		return core.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"places": places})
}

// Create validates the required fields and stores a new place
func (h handler) Create(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Place.Handler.Create")
	defer span.End()

	requester, ok := c.Get(core.RequesterIdCtxKey).(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var request createRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "details": err.Error()})
	}

	if request.Name == "" || request.Type == "" || request.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Name, type, and description are required"})
	}

	created, err := h.service.Create(ctx, core.Place{
		UserID:       requester,
		Name:         request.Name,
		Type:         request.Type,
		Description:  request.Description,
		Location:     request.Location,
		Significance: request.Significance,
		Atmosphere:   request.Atmosphere,
		History:      request.History,
		Inhabitants:  request.Inhabitants,
		Features:     request.Features,
		ImageURL:     request.ImageURL,
	})
	if err != nil {
		span.RecordError(err)
		return core.RespondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"place": created})
}

// Update applies a partial edit to one of the requester's places
func (h handler) Update(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Place.Handler.Update")
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

	return c.JSON(http.StatusOK, echo.Map{"place": updated})
}

// Delete removes one of the requester's places
func (h handler) Delete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Place.Handler.Delete")
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

	return c.JSON(http.StatusOK, echo.Map{"message": "Place deleted successfully", "place": deleted})
}
