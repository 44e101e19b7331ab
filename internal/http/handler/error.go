package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"reportapi/internal/http/middleware"
	"reportapi/internal/queryengine"
	"reportapi/internal/service"
	"reportapi/internal/storage"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable message
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// classify maps a service error onto an HTTP status and error code. Upstream
// failures keep their message so callers can see what the engine reported.
func classify(err error) (int, string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, queryengine.ErrQueryTimeout):
		return fiber.StatusGatewayTimeout, "QUERY_TIMEOUT"
	case errors.Is(err, service.ErrNotFound), errors.Is(err, storage.ErrSnapshotNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, queryengine.ErrQueryFailed):
		return fiber.StatusInternalServerError, "QUERY_FAILED"
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// writeServiceError renders err in the standardized envelope.
func writeServiceError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	return writeError(c, status, code, err.Error())
}

// writeLakeError renders err as {"error": message}, the shape the query
// endpoints have always returned.
func writeLakeError(c *fiber.Ctx, err error) error {
	status, _ := classify(err)
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
