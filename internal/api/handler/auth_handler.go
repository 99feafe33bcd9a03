package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/api/middleware"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/service"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/response"
)

// AuthHandler serves the account and token endpoints.
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates the AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register creates a teacher account.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.Created(c, user)
}

// Login exchanges credentials for a token pair.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	tokens, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, tokens)
}

// Refresh exchanges a refresh token for a new pair.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	tokens, err := h.authSvc.Refresh(c.Request.Context(), &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, tokens)
}

// Logout flushes the user's session and blacklists the presented token.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	jti := c.GetString(middleware.TokenJTIKey)
	exp, _ := c.Get(middleware.TokenExpKey)
	expiresAt, _ := exp.(time.Time)

	if err := h.authSvc.Logout(c.Request.Context(), userID, jti, expiresAt); err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, nil)
}

// Me returns the authenticated account.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, user)
}
