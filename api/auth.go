package api

import (
	"pocketledger/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler registration and login
type AuthHandler struct {
	users *service.UserService
}

// NewAuthHandler creates the auth handler
func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// RegisterRequest registration body
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ana@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret1"`
}

// LoginRequest login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ana@example.com"`
	Password string `json:"password" binding:"required" example:"secret1"`
}

// TokenResponse session token
type TokenResponse struct {
	Token string `json:"token"`
}

// Register creates an account
// @Summary Register
// @Description Creates a user and returns a session token
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse "invalid input or user already exists"
// @Failure 429 {object} ErrorResponse "too many attempts"
// @Failure 500 {object} ErrorResponse
// @Router /api/users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "a valid email and a password of at least 6 characters are required"))
		return
	}

	token, err := h.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, TokenResponse{Token: token})
}

// Login exchanges credentials for a session token
// @Summary Login
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse "invalid credentials"
// @Failure 429 {object} ErrorResponse "too many attempts"
// @Failure 500 {object} ErrorResponse
// @Router /api/users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "email and password are required"))
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, TokenResponse{Token: token})
}
