package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/qna-forum/backend/internal/service"
)

// Handler combines all handler types
type Handler struct {
	Auth     *AuthHandler
	Question *QuestionHandler
	Answer   *AnswerHandler
	Reply    *ReplyHandler
	Comment  *CommentHandler
	Vote     *VoteHandler
	User     *UserHandler
	Upload   *UploadHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     &AuthHandler{svc: svc},
		Question: &QuestionHandler{svc: svc},
		Answer:   &AnswerHandler{svc: svc},
		Reply:    &ReplyHandler{svc: svc},
		Comment:  &CommentHandler{svc: svc},
		Vote:     &VoteHandler{svc: svc},
		User:     &UserHandler{svc: svc},
		Upload:   &UploadHandler{svc: svc},
	}
}

// statusOf maps the service error taxonomy onto HTTP.
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": msg}. Internal failures never leak details.
func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	msg := service.Reason(err)
	if msg == "" {
		msg = strings.ToLower(http.StatusText(status))
	}
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
