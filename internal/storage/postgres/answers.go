package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

func answerID(a *models.Answer) string { return a.ID }

func (s *Store) CreateAnswer(ctx context.Context, a *models.Answer) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Question{}, a.QuestionID); err != nil {
			return err
		}
		return mapErr(tx.Create(a).Error)
	})
	if err != nil {
		return err
	}
	a.Ballot = vote.Ballot{Upvotes: []string{}, Downvotes: []string{}}
	a.Derive()
	return nil
}

func (s *Store) AnswerByID(ctx context.Context, id string) (*models.Answer, error) {
	var a models.Answer
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&a).Error; err != nil {
		return nil, mapErr(err)
	}

	one := []models.Answer{a}
	if err := attachBallots(ctx, s, vote.KindAnswer, one, answerID); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (s *Store) AnswersByQuestion(ctx context.Context, questionID string) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.WithContext(ctx).Model(&models.Answer{}).
		Select("answers.*").
		Joins(fmt.Sprintf(scoreJoin, "answers"), string(vote.KindAnswer)).
		Where("answers.question_id = ?", questionID).
		Order("answers.accepted DESC").
		Order("COALESCE(v.score, 0) DESC").
		Order("answers.created_at ASC").
		Find(&answers).Error
	if err != nil {
		return nil, mapErr(err)
	}

	if err := attachBallots(ctx, s, vote.KindAnswer, answers, answerID); err != nil {
		return nil, err
	}
	return answers, nil
}

func (s *Store) AcceptAnswer(ctx context.Context, questionID, answerID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Accepts on the same question serialize on the question row.
		var q models.Question
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", questionID).
			Take(&q).Error
		if err != nil {
			return mapErr(err)
		}

		err = tx.Model(&models.Answer{}).
			Where("question_id = ? AND id <> ? AND accepted", questionID, answerID).
			Update("accepted", false).Error
		if err != nil {
			return mapErr(err)
		}

		res := tx.Model(&models.Answer{}).
			Where("id = ? AND question_id = ?", answerID, questionID).
			Update("accepted", true)
		if res.Error != nil {
			return mapErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}

// exists reports storage.ErrNotFound when no row of model has the given id.
func exists(tx *gorm.DB, model any, id string) error {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return mapErr(err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
