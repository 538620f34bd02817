package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse error body
type ErrorResponse struct {
	Msg string `json:"msg" example:"not authorized"`
}

// Success writes data as the 200 body
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// NoContent answers 204 without a body
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes an error body
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Msg: message})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// ServiceUnavailable 503
func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, http.StatusServiceUnavailable, message)
}
