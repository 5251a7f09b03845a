// Package plot implements the CRUD surface for Plot records
package plot

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/lorekeep/lorekeep/core"
)

var tracer = otel.Tracer("plot")

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

// List returns the requester's plots, optionally narrowed by ?search=
func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Plot.Handler.List")
	defer span.End()

	requester, ok := c.Get(core.RequesterIdCtxKey).(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	plots, err := h.service.List(ctx, requester, c.QueryParam("search"))
	if err != nil {
		span.RecordError(err)
		return core.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"plots": plots})
}

// Create validates the required fields and stores a new plot
func (h handler) Create(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Plot.Handler.Create")
	defer span.End()

	requester, ok := c.Get(core.RequesterIdCtxKey).(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var request createRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "details": err.Error()})
	}

	if request.Title == "" || request.Type == "" || request.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Title, type, and description are required"})
	}

	created, err := h.service.Create(ctx, core.Plot{
		UserID:       requester,
		Title:        request.Title,
		Chapter:      request.Chapter,
		Type:         request.Type,
		Description:  request.Description,
		Timeframe:    request.Timeframe,
		Location:     request.Location,
		Characters:   request.Characters,
		Significance: request.Significance,
		Conflicts:    request.Conflicts,
		Resolution:   request.Resolution,
		Notes:        request.Notes,
		ImageURL:     request.ImageURL,
	})
	if err != nil {
		span.RecordError(err)
		return core.RespondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"plot": created})
}

// Update applies a partial edit to one of the requester's plots
func (h handler) Update(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Plot.Handler.Update")
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

	return c.JSON(http.StatusOK, echo.Map{"plot": updated})
}

// Delete removes one of the requester's plots
func (h handler) Delete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Plot.Handler.Delete")
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

	return c.JSON(http.StatusOK, echo.Map{"message": "Plot deleted successfully", "plot": deleted})
}
