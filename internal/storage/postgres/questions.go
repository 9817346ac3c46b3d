package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

// scoreJoin exposes the summed vote value of every target of one kind as v.score.
const scoreJoin = `LEFT JOIN (SELECT target_id, SUM(value) AS score FROM votes WHERE target_type = ? GROUP BY target_id) v ON v.target_id = %s.id`

func questionID(q *models.Question) string { return q.ID }

func (s *Store) CreateQuestion(ctx context.Context, q *models.Question) error {
	if err := s.db.WithContext(ctx).Create(q).Error; err != nil {
		return mapErr(err)
	}
	q.Ballot = vote.Ballot{Upvotes: []string{}, Downvotes: []string{}}
	q.Derive()
	return nil
}

func (s *Store) QuestionByID(ctx context.Context, id string) (*models.Question, error) {
	var q models.Question
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&q).Error; err != nil {
		return nil, mapErr(err)
	}

	one := []models.Question{q}
	if err := attachBallots(ctx, s, vote.KindQuestion, one, questionID); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// UpdateQuestion writes the editable columns of q, zero values included.
func (s *Store) UpdateQuestion(ctx context.Context, q *models.Question) error {
	res := s.db.WithContext(ctx).Model(q).
		Select("title", "content", "tags", "images", "updated_at").
		Updates(q)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var answerIDs []string
		if err := tx.Model(&models.Answer{}).Where("question_id = ?", id).Pluck("id", &answerIDs).Error; err != nil {
			return mapErr(err)
		}

		var replyIDs []string
		if len(answerIDs) > 0 {
			if err := tx.Model(&models.Reply{}).Where("answer_id IN ?", answerIDs).Pluck("id", &replyIDs).Error; err != nil {
				return mapErr(err)
			}
		}

		comments := tx.Model(&models.Comment{}).Where("question_id = ?", id)
		if len(answerIDs) > 0 {
			comments = comments.Or("answer_id IN ?", answerIDs)
		}
		var commentIDs []string
		if err := comments.Pluck("id", &commentIDs).Error; err != nil {
			return mapErr(err)
		}

		for kind, ids := range map[vote.Kind][]string{
			vote.KindQuestion: {id},
			vote.KindAnswer:   answerIDs,
			vote.KindReply:    replyIDs,
			vote.KindComment:  commentIDs,
		} {
			if err := deleteVotes(tx, kind, ids); err != nil {
				return mapErr(err)
			}
		}

		if len(replyIDs) > 0 {
			if err := tx.Where("id IN ?", replyIDs).Delete(&models.Reply{}).Error; err != nil {
				return mapErr(err)
			}
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("id IN ?", commentIDs).Delete(&models.Comment{}).Error; err != nil {
				return mapErr(err)
			}
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return mapErr(err)
		}

		res := tx.Where("id = ?", id).Delete(&models.Question{})
		if res.Error != nil {
			return mapErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}

func (s *Store) ListQuestions(ctx context.Context, f models.QuestionFilter) ([]models.Question, int64, error) {
	filtered := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Question{})
		if f.Subject != "" {
			q = q.Where("? = ANY(questions.tags)", f.Subject)
		}
		if search := strings.TrimSpace(f.Search); search != "" {
			pattern := "%" + escapeLike(search) + "%"
			q = q.Where("(questions.title ILIKE ? OR questions.content ILIKE ?)", pattern, pattern)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, mapErr(err)
	}

	q := filtered().Select("questions.*")
	if f.Sort == models.SortTop {
		q = q.Joins(fmt.Sprintf(scoreJoin, "questions"), string(vote.KindQuestion)).
			Order("COALESCE(v.score, 0) DESC")
	}
	q = q.Order("questions.created_at DESC").Offset(f.Offset()).Limit(f.Limit)

	var questions []models.Question
	if err := q.Find(&questions).Error; err != nil {
		return nil, 0, mapErr(err)
	}
	if err := attachBallots(ctx, s, vote.KindQuestion, questions, questionID); err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

func (s *Store) IncrementViews(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&models.Question{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type answerCountRow struct {
	QuestionID string
	Count      int64
}

func (s *Store) CountAnswers(ctx context.Context, questionIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(questionIDs))
	if len(questionIDs) == 0 {
		return counts, nil
	}

	var rows []answerCountRow
	err := s.db.WithContext(ctx).Model(&models.Answer{}).
		Select("question_id, COUNT(*) AS count").
		Where("question_id IN ?", questionIDs).
		Group("question_id").
		Scan(&rows).Error
	if err != nil {
		return nil, mapErr(err)
	}

	for _, r := range rows {
		counts[r.QuestionID] = r.Count
	}
	return counts, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string { return likeEscaper.Replace(s) }
