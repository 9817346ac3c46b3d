package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
)

func (m *Mongo) CreateAnswer(ctx context.Context, a *models.Answer) error {
	const op = "storage/mongo/CreateAnswer"

	if err := exists(ctx, m.questions, byID(a.QuestionID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	a.ID = newID(a.ID)
	a.CreatedAt = now()
	a.UpdatedAt = a.CreatedAt
	emptyBallot(&a.Ballot)

	if _, err := m.answers.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("%s: insert: %w", op, err)
	}
	a.Derive()
	return nil
}

func (m *Mongo) AnswerByID(ctx context.Context, id string) (*models.Answer, error) {
	const op = "storage/mongo/AnswerByID"

	a, err := findOne[models.Answer](ctx, m.answers, byID(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	emptyBallot(&a.Ballot)
	a.Derive()
	return a, nil
}

func (m *Mongo) AnswersByQuestion(ctx context.Context, questionID string) ([]models.Answer, error) {
	const op = "storage/mongo/AnswersByQuestion"

	cur, err := m.answers.Aggregate(ctx, bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "question", Value: questionID}}}},
		voteCountStage,
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "accepted", Value: -1},
			{Key: "voteCount", Value: -1},
			{Key: "createdAt", Value: 1},
		}}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: aggregate: %w", op, err)
	}

	answers, err := decodeAll[models.Answer](ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	derive(answers)
	return answers, nil
}

// AcceptAnswer clears the flag on siblings, then sets it on answerID.
// Standalone servers have no multi-document transactions; re-running the
// call converges to a single accepted answer.
func (m *Mongo) AcceptAnswer(ctx context.Context, questionID, answerID string) error {
	const op = "storage/mongo/AcceptAnswer"

	target := bson.D{{Key: "_id", Value: answerID}, {Key: "question", Value: questionID}}
	if err := exists(ctx, m.answers, target); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err := m.answers.UpdateMany(ctx,
		bson.D{
			{Key: "question", Value: questionID},
			{Key: "_id", Value: bson.D{{Key: "$ne", Value: answerID}}},
			{Key: "accepted", Value: true},
		},
		bson.D{{Key: "$set", Value: bson.D{{Key: "accepted", Value: false}, {Key: "updatedAt", Value: now()}}}},
	)
	if err != nil {
		return fmt.Errorf("%s: clear siblings: %w", op, err)
	}

	res, err := m.answers.UpdateOne(ctx, target,
		bson.D{{Key: "$set", Value: bson.D{{Key: "accepted", Value: true}, {Key: "updatedAt", Value: now()}}}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}
