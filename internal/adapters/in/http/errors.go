package http

import (
	"errors"
	"net/http"
	"strings"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	unauthorizedMessage = "Unauthorized"
	internalMessage     = "Internal server error"
)

// Failure reasons used on redirect targets.
const (
	reasonUnauthorized = "unauthorized"
	reasonNotFound     = "not_found"
	reasonInvalid      = "invalid"
	reasonConflict     = "conflict"
	reasonError        = "error"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists),
		errors.Is(err, errs.ErrTransitionIsInvalid):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func reasonFor(err error) string {
	switch statusFor(err) {
	case http.StatusBadRequest:
		return reasonInvalid
	case http.StatusUnauthorized:
		return reasonUnauthorized
	case http.StatusNotFound:
		return reasonNotFound
	case http.StatusConflict:
		return reasonConflict
	default:
		return reasonError
	}
}

func messageFor(err error, status int) string {
	switch status {
	case http.StatusUnauthorized:
		return unauthorizedMessage
	case http.StatusInternalServerError:
		return internalMessage
	case http.StatusNotFound:
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) && notFound.ParamName != "" {
			return strings.ToUpper(notFound.ParamName[:1]) + notFound.ParamName[1:] + " not found"
		}
	}
	return err.Error()
}

// fail writes err as a JSON error body. Server errors are logged, never echoed.
func (s *Server) fail(c echo.Context, err error) error {
	s.logFailure(c, err)
	status := statusFor(err)
	return c.JSON(status, errorResponse{Error: messageFor(err, status)})
}

func (s *Server) logFailure(c echo.Context, err error) {
	if statusFor(err) != http.StatusInternalServerError {
		return
	}
	s.logger.ErrorContext(c.Request().Context(), "request failed",
		"method", c.Request().Method, "path", c.Path(), "error", err)
}
