package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/campusradius/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // bad_request, invalid_location, not_found, ...
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// Classify maps an error onto an HTTP status and error code.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidLocation):
		return fiber.StatusBadRequest, "invalid_location"
	case errors.Is(err, domain.ErrInvalidRadius), errors.Is(err, domain.ErrInvalidPostcode):
		return fiber.StatusBadRequest, "bad_request"
	case errors.Is(err, domain.ErrUnknownCampus), errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrMissingCoordinates):
		return fiber.StatusUnprocessableEntity, "missing_coordinates"
	case errors.Is(err, domain.ErrTransport):
		return fiber.StatusBadGateway, "upstream_error"
	default:
		return fiber.StatusInternalServerError, "internal_error"
	}
}

// errFromDomain writes err using Classify. Internal errors are logged and
// reported without detail.
func errFromDomain(c *fiber.Ctx, err error) error {
	status, code := Classify(err)
	if status == fiber.StatusInternalServerError {
		LoggerFromCtx(c.UserContext()).Error("request failed", "path", c.Path(), "error", err)
		return errInternal(c, "internal error")
	}
	return newError(c, status, code, err.Error())
}
