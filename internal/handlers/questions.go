package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/qna-forum/backend/internal/middleware"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/service"
)

type QuestionHandler struct {
	svc *service.Service
}

// ListQuestions returns one page of questions.
// Query: page, limit, sort (latest|top), subject (tag), search.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	// unparsable numbers fall back to the defaults
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	res, err := h.svc.ListQuestions(c.Request.Context(), models.QuestionFilter{
		Page:    page,
		Limit:   limit,
		Sort:    c.Query("sort"),
		Subject: c.Query("subject"),
		Search:  c.Query("search"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetQuestion returns a question with its answers and counts a view.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	res, err := h.svc.GetQuestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CreateQuestion creates a new question (PROTECTED)
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var input models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "title, content and tags are required")
		return
	}

	q, err := h.svc.CreateQuestion(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

// UpdateQuestion edits a question (PROTECTED, author only)
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	var input models.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	q, err := h.svc.UpdateQuestion(c.Request.Context(), middleware.UserID(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// DeleteQuestion deletes a question and everything under it (PROTECTED, author only)
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	if err := h.svc.DeleteQuestion(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
