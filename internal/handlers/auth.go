package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/qna-forum/backend/internal/middleware"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/service"
)

type AuthHandler struct {
	svc *service.Service
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "name, a valid email and password are required")
		return
	}

	res, err := h.svc.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Login handles email/password login
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "email and password are required")
		return
	}

	res, err := h.svc.Login(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Me returns the current user (PROTECTED)
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.svc.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
