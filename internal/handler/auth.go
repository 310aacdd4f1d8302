package handler

import (
	"net/http"

	"ascend/internal/logger"
	"ascend/internal/middleware"
	"ascend/internal/model"
	"ascend/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ auth *service.AuthService }

func NewAuthHandler(auth *service.AuthService) *AuthHandler { return &AuthHandler{auth: auth} }

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	m, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logger.Warn("login.failed", "username", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	logger.Info("login.ok", "uid", m.ID, "name", m.Name)

	token, _ := middleware.IssueToken(m.ID, m.Name)
	c.JSON(http.StatusOK, model.LoginResponse{
		Token: token,
		User:  model.User{ID: m.ID, Name: m.Name, Avatar: m.Avatar, Role: m.Role},
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	m, err := h.auth.Register(c.Request.Context(), req.Username, req.Password, req.Name)
	if err != nil {
		logger.Warn("register.failed", "username", req.Username, "err", err)
		c.JSON(http.StatusConflict, gin.H{"error": "username taken"})
		return
	}

	logger.Info("register.ok", "uid", m.ID, "name", m.Name)

	token, _ := middleware.IssueToken(m.ID, m.Name)
	c.JSON(http.StatusOK, model.LoginResponse{
		Token: token,
		User:  model.User{ID: m.ID, Name: m.Name, Avatar: m.Avatar, Role: m.Role},
	})
}
