package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

func (m *Mongo) CreateComment(ctx context.Context, c *models.Comment) error {
	const op = "storage/mongo/CreateComment"

	switch {
	case c.QuestionID != nil:
		if err := exists(ctx, m.questions, byID(*c.QuestionID)); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	case c.AnswerID != nil:
		if err := exists(ctx, m.answers, byID(*c.AnswerID)); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	c.ID = newID(c.ID)
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	emptyBallot(&c.Ballot)

	if _, err := m.comments.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("%s: insert: %w", op, err)
	}
	c.Derive()
	return nil
}

func (m *Mongo) ListComments(ctx context.Context, target vote.Target) ([]models.Comment, error) {
	const op = "storage/mongo/ListComments"

	var field string
	switch target.Kind {
	case vote.KindQuestion:
		field = "question"
	case vote.KindAnswer:
		field = "answer"
	default:
		return nil, fmt.Errorf("%s: comments cannot target %q", op, target.Kind)
	}

	cur, err := m.comments.Find(ctx, bson.D{{Key: field, Value: target.ID}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}

	comments, err := decodeAll[models.Comment](ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	derive(comments)
	return comments, nil
}
