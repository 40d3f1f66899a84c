package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shopapi/internal/errors"
	"shopapi/internal/logging"
)

// handleError converts a service error to an echo HTTP error. Internal
// failures are logged here and answered with a generic message.
func handleError(c echo.Context, err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).
			WithError(err).
			WithField("route", c.Path()).
			Error("Request failed")
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// parseID reads a numeric path parameter. Anything that is not a positive
// integer is reported as notFound, since no row can carry such an id.
func parseID(c echo.Context, name string, notFound error) (uint, *echo.HTTPError) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, handleError(c, notFound)
	}
	return uint(id), nil
}
