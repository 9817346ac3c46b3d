package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emilythestrangee/qna-forum/backend/internal/models"
)

func (m *Mongo) UserStats(ctx context.Context, userID string) (models.UserStats, error) {
	const op = "storage/mongo/UserStats"

	var (
		stats models.UserStats
		err   error
	)
	if stats.Questions, err = m.questions.CountDocuments(ctx, bson.D{{Key: "author", Value: userID}}); err != nil {
		return stats, fmt.Errorf("%s: questions: %w", op, err)
	}
	if stats.Answers, err = m.answers.CountDocuments(ctx, bson.D{{Key: "author", Value: userID}}); err != nil {
		return stats, fmt.Errorf("%s: answers: %w", op, err)
	}
	stats.BestAnswers, err = m.answers.CountDocuments(ctx, bson.D{
		{Key: "author", Value: userID},
		{Key: "accepted", Value: true},
	})
	if err != nil {
		return stats, fmt.Errorf("%s: accepted: %w", op, err)
	}
	return stats, nil
}

type activityDoc struct {
	ID         string    `bson:"_id"`
	Title      string    `bson:"title"`
	QuestionID string    `bson:"question"`
	AnswerID   string    `bson:"answer"`
	CreatedAt  time.Time `bson:"createdAt"`
}

func (m *Mongo) RecentActivity(ctx context.Context, userID string, perKind int) ([]models.Activity, error) {
	const op = "storage/mongo/RecentActivity"

	latest := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(perKind))
	byAuthor := bson.D{{Key: "author", Value: userID}}

	var docs [3][]activityDoc
	for i, coll := range []struct {
		name       string
		projection bson.D
	}{
		{questionsCollection, bson.D{{Key: "title", Value: 1}, {Key: "createdAt", Value: 1}}},
		{answersCollection, bson.D{{Key: "question", Value: 1}, {Key: "createdAt", Value: 1}}},
		{commentsCollection, bson.D{{Key: "question", Value: 1}, {Key: "answer", Value: 1}, {Key: "createdAt", Value: 1}}},
	} {
		cur, err := m.db.Collection(coll.name).Find(ctx, byAuthor, latest.SetProjection(coll.projection))
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, coll.name, err)
		}
		if docs[i], err = decodeAll[activityDoc](ctx, cur); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, coll.name, err)
		}
	}
	questions, answers, comments := docs[0], docs[1], docs[2]

	// comments on answers belong to the answer's question
	answerIDs := []string{}
	for _, c := range comments {
		if c.QuestionID == "" && c.AnswerID != "" {
			answerIDs = append(answerIDs, c.AnswerID)
		}
	}
	answerQuestion, err := m.questionOfAnswers(ctx, answerIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i := range comments {
		if comments[i].QuestionID == "" {
			comments[i].QuestionID = answerQuestion[comments[i].AnswerID]
		}
	}

	questionIDs := []string{}
	for _, d := range append(answers, comments...) {
		if d.QuestionID != "" {
			questionIDs = append(questionIDs, d.QuestionID)
		}
	}
	titles, err := m.questionTitles(ctx, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.Activity, 0, len(questions)+len(answers)+len(comments))
	for _, q := range questions {
		out = append(out, models.Activity{
			ID: q.ID, Type: models.ActivityQuestion, Title: q.Title, QuestionID: q.ID, CreatedAt: q.CreatedAt.UTC(),
		})
	}
	for _, a := range answers {
		out = append(out, models.Activity{
			ID: a.ID, Type: models.ActivityAnswer, Title: titles[a.QuestionID], QuestionID: a.QuestionID, CreatedAt: a.CreatedAt.UTC(),
		})
	}
	for _, c := range comments {
		out = append(out, models.Activity{
			ID: c.ID, Type: models.ActivityComment, Title: titles[c.QuestionID], QuestionID: c.QuestionID, CreatedAt: c.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (m *Mongo) questionOfAnswers(ctx context.Context, answerIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(answerIDs))
	if len(answerIDs) == 0 {
		return out, nil
	}

	cur, err := m.answers.Find(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: answerIDs}}}},
		options.Find().SetProjection(bson.D{{Key: "question", Value: 1}}))
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[activityDoc](ctx, cur)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		out[d.ID] = d.QuestionID
	}
	return out, nil
}

func (m *Mongo) questionTitles(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := m.questions.Find(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}},
		options.Find().SetProjection(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[activityDoc](ctx, cur)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		out[d.ID] = d.Title
	}
	return out, nil
}
