package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quochao170402/cekspek/auth"
)

type AuthHandler struct {
	admin  auth.Admin
	tokens *auth.Manager
	logger *zap.Logger
}

func NewAuthHandler(admin auth.Admin, tokens *auth.Manager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{admin: admin, tokens: tokens, logger: logger}
}

func RegisterAuthRoutes(rg *gin.RouterGroup, handler *AuthHandler) {
	rg.POST("/login", handler.Login)
	rg.POST("/refresh-token", handler.RefreshToken)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}

	if !h.admin.Authenticate(req.Email, req.Password) {
		h.logger.Warn("login rejected", zap.String("email", req.Email), zap.String("client_ip", c.ClientIP()))
		fail(c, http.StatusUnauthorized, "Email atau password salah")
		return
	}

	tokens, err := h.tokens.GenerateTokens(h.admin.Identity())
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "", tokens)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.tokens.ParseRefresh(req.RefreshToken)
	if err != nil || id.Email != h.admin.Email {
		fail(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	tokens, err := h.tokens.GenerateTokens(h.admin.Identity())
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, "", tokens)
}
