package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/qna-forum/backend/internal/middleware"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/service"
	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

type CommentHandler struct {
	svc *service.Service
}

// ListFor returns a handler listing comments of the :id entity of kind.
func (h *CommentHandler) ListFor(kind vote.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		comments, err := h.svc.ListComments(c.Request.Context(), vote.Target{Kind: kind, ID: c.Param("id")})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, comments)
	}
}

// CreateComment comments on a question or an answer (PROTECTED)
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "content is required")
		return
	}

	comment, err := h.svc.CreateComment(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
