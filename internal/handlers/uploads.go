package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/qna-forum/backend/internal/middleware"
	"github.com/emilythestrangee/qna-forum/backend/internal/service"
)

type UploadHandler struct {
	svc *service.Service
}

// ImageUploadURL returns a presigned PUT URL for a question image (PROTECTED)
func (h *UploadHandler) ImageUploadURL(c *gin.Context) {
	var input struct {
		ContentType   string `json:"contentType" binding:"required"`
		ContentLength int64  `json:"contentLength" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "contentType and contentLength are required")
		return
	}

	up, err := h.svc.ImageUploadURL(c.Request.Context(), middleware.UserID(c), input.ContentType, input.ContentLength)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, up)
}
