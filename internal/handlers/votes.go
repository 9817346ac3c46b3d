package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/qna-forum/backend/internal/middleware"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/service"
	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

type VoteHandler struct {
	svc *service.Service
}

// For returns the vote endpoint of one entity kind (PROTECTED).
// Body: {"voteType": "up"|"down"}.
func (h *VoteHandler) For(kind vote.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.VoteRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, "Invalid vote type")
			return
		}

		res, err := h.svc.Vote(c.Request.Context(), kind, c.Param("id"), middleware.UserID(c), input.VoteType)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
