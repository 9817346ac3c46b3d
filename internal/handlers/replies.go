package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/qna-forum/backend/internal/middleware"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/service"
)

type ReplyHandler struct {
	svc *service.Service
}

// ListReplies returns one level of the reply tree of an answer. Without
// ?parentReplyId= only top-level replies are returned.
func (h *ReplyHandler) ListReplies(c *gin.Context) {
	replies, err := h.svc.ListReplies(c.Request.Context(), c.Param("id"), c.Query("parentReplyId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, replies)
}

// CreateReply replies to an answer or to another reply (PROTECTED)
func (h *ReplyHandler) CreateReply(c *gin.Context) {
	var input models.CreateReplyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	r, err := h.svc.CreateReply(c.Request.Context(), middleware.UserID(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}
