package api

import (
	"errors"
	"strconv"

	"pocketledger/config"
	"pocketledger/logger"
	"pocketledger/middleware"
	"pocketledger/service"

	"github.com/gin-gonic/gin"
)

const msgServerError = "server error"

// SafeErrorMessage hides internal error details from clients in release mode
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}

// RespondError maps service errors to statuses. Unknown errors become a generic
// 500 and the cause is only logged.
func RespondError(c *gin.Context, err error) {
	msg := msgServerError
	var se *service.Error
	if errors.As(err, &se) {
		msg = se.Message()
	}

	switch {
	case errors.Is(err, service.ErrBadRequest),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInsufficientData):
		BadRequest(c, msg)
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, msg)
	case errors.Is(err, service.ErrForbidden):
		// 401 rather than 403, existing clients depend on it
		Unauthorized(c, msg)
	case errors.Is(err, service.ErrServiceUnavailable):
		ServiceUnavailable(c, msg)
	default:
		logger.FromContext(c.Request.Context()).Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"user_id", middleware.GetCurrentUserID(c),
			"error", err,
		)
		_ = c.Error(err)
		InternalError(c, msgServerError)
	}
}

// paramID reads a numeric path id; anything else is answered with 404 notFound.
func paramID(c *gin.Context, name, notFound string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		NotFound(c, notFound)
		return 0, false
	}
	return uint(id), true
}

// queryLedgerID reads the optional ledgerId query parameter.
func queryLedgerID(c *gin.Context) (uint, bool) {
	raw := c.Query("ledgerId")
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		BadRequest(c, "ledgerId must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
