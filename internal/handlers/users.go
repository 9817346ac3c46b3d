package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/qna-forum/backend/internal/middleware"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/service"
)

type UserHandler struct {
	svc *service.Service
}

// GetUserProfile returns a user's profile
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	profile, err := h.svc.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateUserProfile edits bio, location and image (PROTECTED, self only)
func (h *UserHandler) UpdateUserProfile(c *gin.Context) {
	var input models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), middleware.UserID(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
