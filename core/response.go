package core

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RespondError translates a service or repository error into the
// HTTP-status-coded JSON body the dashboard expects. Every handler's
// fallible path funnels through here so a failing request never takes
// down its neighbours.
func RespondError(c echo.Context, err error) error {
	var notFound ErrorNotFound
	var alreadyExists ErrorAlreadyExists
	var malformedID ErrorMalformedID
	var permissionDenied ErrorPermissionDenied
	var validation ErrorValidation

	switch {
	case errors.As(err, &malformedID):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid ID"})
	case errors.As(err, &validation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Validation failed", "details": validation.Message})
	case errors.As(err, &alreadyExists):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Already exists"})
	case errors.As(err, &notFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found or unauthorized"})
	case errors.As(err, &permissionDenied):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you are not authorized to perform this action"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error", "details": err.Error()})
	}
}
