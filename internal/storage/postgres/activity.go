package postgres

import (
	"context"

	"github.com/emilythestrangee/qna-forum/backend/internal/models"
)

func (s *Store) UserStats(ctx context.Context, userID string) (models.UserStats, error) {
	var stats models.UserStats
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Question{}).Where("author_id = ?", userID).Count(&stats.Questions).Error; err != nil {
		return stats, mapErr(err)
	}
	if err := db.Model(&models.Answer{}).Where("author_id = ?", userID).Count(&stats.Answers).Error; err != nil {
		return stats, mapErr(err)
	}
	if err := db.Model(&models.Answer{}).Where("author_id = ? AND accepted", userID).Count(&stats.BestAnswers).Error; err != nil {
		return stats, mapErr(err)
	}
	return stats, nil
}

const recentCommentsSQL = `
SELECT c.id, c.created_at,
       COALESCE(q1.id, q2.id)       AS question_id,
       COALESCE(q1.title, q2.title) AS title
FROM comments c
LEFT JOIN questions q1 ON q1.id = c.question_id
LEFT JOIN answers a    ON a.id = c.answer_id
LEFT JOIN questions q2 ON q2.id = a.question_id
WHERE c.author_id = ?
ORDER BY c.created_at DESC
LIMIT ?`

func (s *Store) RecentActivity(ctx context.Context, userID string, perKind int) ([]models.Activity, error) {
	db := s.db.WithContext(ctx)

	var questions []models.Activity
	err := db.Model(&models.Question{}).
		Select("id, title, id AS question_id, created_at").
		Where("author_id = ?", userID).
		Order("created_at DESC").
		Limit(perKind).
		Scan(&questions).Error
	if err != nil {
		return nil, mapErr(err)
	}

	var answers []models.Activity
	err = db.Table("answers").
		Select("answers.id, questions.title, answers.question_id, answers.created_at").
		Joins("LEFT JOIN questions ON questions.id = answers.question_id").
		Where("answers.author_id = ?", userID).
		Order("answers.created_at DESC").
		Limit(perKind).
		Scan(&answers).Error
	if err != nil {
		return nil, mapErr(err)
	}

	var comments []models.Activity
	if err := db.Raw(recentCommentsSQL, userID, perKind).Scan(&comments).Error; err != nil {
		return nil, mapErr(err)
	}

	out := make([]models.Activity, 0, len(questions)+len(answers)+len(comments))
	for _, a := range questions {
		a.Type = models.ActivityQuestion
		out = append(out, a)
	}
	for _, a := range answers {
		a.Type = models.ActivityAnswer
		out = append(out, a)
	}
	for _, a := range comments {
		a.Type = models.ActivityComment
		out = append(out, a)
	}
	return out, nil
}
