package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

func replyID(r *models.Reply) string { return r.ID }

func (s *Store) CreateReply(ctx context.Context, r *models.Reply) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Answer{}, r.AnswerID); err != nil {
			return err
		}

		if r.ParentReplyID != nil {
			var n int64
			err := tx.Model(&models.Reply{}).
				Where("id = ? AND answer_id = ?", *r.ParentReplyID, r.AnswerID).
				Count(&n).Error
			if err = mapErr(err); err != nil && !errors.Is(err, storage.ErrNotFound) {
				return err
			}
			if n == 0 {
				return storage.ErrParentNotFound
			}
		}

		return mapErr(tx.Create(r).Error)
	})
	if err != nil {
		return err
	}
	r.Ballot = vote.Ballot{Upvotes: []string{}, Downvotes: []string{}}
	r.Derive()
	return nil
}

func (s *Store) ListReplies(ctx context.Context, answerID, parentReplyID string) ([]models.Reply, error) {
	db := s.db.WithContext(ctx)
	if err := exists(db, &models.Answer{}, answerID); err != nil {
		return nil, err
	}

	q := db.Where("answer_id = ?", answerID)
	if parentReplyID == "" {
		q = q.Where("parent_reply_id IS NULL")
	} else {
		q = q.Where("parent_reply_id = ?", parentReplyID)
	}

	var replies []models.Reply
	err := q.Order("created_at DESC").Find(&replies).Error
	switch err = mapErr(err); {
	case errors.Is(err, storage.ErrNotFound):
		// malformed parent id: no children
		return []models.Reply{}, nil
	case err != nil:
		return nil, err
	}

	if err := attachBallots(ctx, s, vote.KindReply, replies, replyID); err != nil {
		return nil, err
	}
	return replies, nil
}
