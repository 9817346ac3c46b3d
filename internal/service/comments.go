package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/emilythestrangee/qna-forum/backend/internal/logger"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

// CreateComment attaches a comment to exactly one question or answer.
func (s *Service) CreateComment(ctx context.Context, userID string, req models.CreateCommentRequest) (*models.Comment, error) {
	const op = "service/comments/CreateComment"

	questionID := strings.TrimSpace(req.QuestionID)
	answerID := strings.TrimSpace(req.AnswerID)
	lg := logger.From(ctx).With("op", op, "user_id", userID, "question_id", questionID, "answer_id", answerID)

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%s: %w", op, because(ErrInvalidArgument, "content is required"))
	}
	if (questionID == "") == (answerID == "") {
		return nil, fmt.Errorf("%s: %w", op, because(ErrInvalidArgument, "exactly one of questionId or answerId is required"))
	}

	c := &models.Comment{Content: content, AuthorID: userID}
	notFound := "question not found"
	if questionID != "" {
		c.QuestionID = &questionID
	} else {
		c.AnswerID = &answerID
		notFound = "answer not found"
	}

	if err := s.storage.CreateComment(ctx, c); err != nil {
		return nil, storageErr(lg, op, err, notFound)
	}

	one := []models.Comment{*c}
	if err := joinAuthors(ctx, s.storage, one, commentAuthor); err != nil {
		return nil, storageErr(lg, op, err, "author not found")
	}
	return &one[0], nil
}

// ListComments returns the comments of a question or answer, oldest first.
func (s *Service) ListComments(ctx context.Context, target vote.Target) ([]models.Comment, error) {
	const op = "service/comments/ListComments"

	target.ID = strings.TrimSpace(target.ID)
	lg := logger.From(ctx).With("op", op, "target", target.String())

	var err error
	switch target.Kind {
	case vote.KindQuestion:
		_, err = s.storage.QuestionByID(ctx, target.ID)
	case vote.KindAnswer:
		_, err = s.storage.AnswerByID(ctx, target.ID)
	default:
		return nil, fmt.Errorf("%s: %w", op, because(ErrInvalidArgument, "comments belong to questions or answers"))
	}
	if err != nil {
		return nil, storageErr(lg, op, err, string(target.Kind)+" not found")
	}

	comments, err := s.storage.ListComments(ctx, target)
	if err != nil {
		return nil, storageErr(lg, op, err, string(target.Kind)+" not found")
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	if err := joinAuthors(ctx, s.storage, comments, commentAuthor); err != nil {
		return nil, storageErr(lg, op, err, "author not found")
	}
	return comments, nil
}
