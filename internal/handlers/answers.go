package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/qna-forum/backend/internal/middleware"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/service"
)

type AnswerHandler struct {
	svc *service.Service
}

// ListAnswers returns {"answers": [...]} for ?questionId=
func (h *AnswerHandler) ListAnswers(c *gin.Context) {
	answers, err := h.svc.ListAnswers(c.Request.Context(), c.Query("questionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answers": answers})
}

// CreateAnswer posts an answer to a question (PROTECTED)
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	var input models.CreateAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "content and questionId are required")
		return
	}

	a, err := h.svc.CreateAnswer(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// AcceptAnswer marks an answer as accepted (PROTECTED, question author only)
func (h *AnswerHandler) AcceptAnswer(c *gin.Context) {
	a, err := h.svc.AcceptAnswer(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
