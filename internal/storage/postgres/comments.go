package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

func commentID(c *models.Comment) string { return c.ID }

func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch {
		case c.QuestionID != nil:
			if err := exists(tx, &models.Question{}, *c.QuestionID); err != nil {
				return err
			}
		case c.AnswerID != nil:
			if err := exists(tx, &models.Answer{}, *c.AnswerID); err != nil {
				return err
			}
		}
		return mapErr(tx.Create(c).Error)
	})
	if err != nil {
		return err
	}
	c.Ballot = vote.Ballot{Upvotes: []string{}, Downvotes: []string{}}
	c.Derive()
	return nil
}

func (s *Store) ListComments(ctx context.Context, target vote.Target) ([]models.Comment, error) {
	var column string
	switch target.Kind {
	case vote.KindQuestion:
		column = "question_id"
	case vote.KindAnswer:
		column = "answer_id"
	default:
		return nil, fmt.Errorf("comments cannot target %q", target.Kind)
	}

	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where(column+" = ?", target.ID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, mapErr(err)
	}

	if err := attachBallots(ctx, s, vote.KindComment, comments, commentID); err != nil {
		return nil, err
	}
	return comments, nil
}
