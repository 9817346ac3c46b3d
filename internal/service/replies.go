package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emilythestrangee/qna-forum/backend/internal/logger"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
)

// ListReplies returns one level of the reply tree under an answer: the
// top-level replies when parentReplyID is empty, otherwise the direct
// children of that reply. Newest first.
func (s *Service) ListReplies(ctx context.Context, answerID, parentReplyID string) ([]models.Reply, error) {
	const op = "service/replies/ListReplies"

	answerID = strings.TrimSpace(answerID)
	parentReplyID = strings.TrimSpace(parentReplyID)
	lg := logger.From(ctx).With("op", op, "answer_id", answerID, "parent_reply_id", parentReplyID)

	replies, err := s.storage.ListReplies(ctx, answerID, parentReplyID)
	if err != nil {
		return nil, storageErr(lg, op, err, "answer not found")
	}
	if replies == nil {
		replies = []models.Reply{}
	}
	if err := joinAuthors(ctx, s.storage, replies, replyAuthor); err != nil {
		return nil, storageErr(lg, op, err, "author not found")
	}
	return replies, nil
}

// CreateReply adds a reply under an answer, optionally nested under an
// existing reply of the same answer. Depth is unbounded.
func (s *Service) CreateReply(ctx context.Context, userID, answerID string, req models.CreateReplyRequest) (*models.Reply, error) {
	const op = "service/replies/CreateReply"

	answerID = strings.TrimSpace(answerID)
	parentID := strings.TrimSpace(req.ParentReplyID)
	lg := logger.From(ctx).With("op", op, "user_id", userID, "answer_id", answerID, "parent_reply_id", parentID)

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%s: %w", op, because(ErrInvalidArgument, "reply content is required"))
	}

	r := &models.Reply{Content: content, AuthorID: userID, AnswerID: answerID}
	if parentID != "" {
		r.ParentReplyID = &parentID
	}

	if err := s.storage.CreateReply(ctx, r); err != nil {
		if errors.Is(err, storage.ErrParentNotFound) {
			return nil, fmt.Errorf("%s: %w", op, because(ErrNotFound, "parent reply not found"))
		}
		return nil, storageErr(lg, op, err, "answer not found")
	}

	one := []models.Reply{*r}
	if err := joinAuthors(ctx, s.storage, one, replyAuthor); err != nil {
		return nil, storageErr(lg, op, err, "author not found")
	}
	return &one[0], nil
}
