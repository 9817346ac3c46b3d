package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
)

func (m *Mongo) CreateReply(ctx context.Context, r *models.Reply) error {
	const op = "storage/mongo/CreateReply"

	if err := exists(ctx, m.answers, byID(r.AnswerID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if r.ParentReplyID != nil {
		parent := bson.D{{Key: "_id", Value: *r.ParentReplyID}, {Key: "answer", Value: r.AnswerID}}
		if err := exists(ctx, m.replies, parent); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, storage.ErrParentNotFound)
			}
			return fmt.Errorf("%s: parent: %w", op, err)
		}
	}

	r.ID = newID(r.ID)
	r.CreatedAt = now()
	emptyBallot(&r.Ballot)

	if _, err := m.replies.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("%s: insert: %w", op, err)
	}
	r.Derive()
	return nil
}

func (m *Mongo) ListReplies(ctx context.Context, answerID, parentReplyID string) ([]models.Reply, error) {
	const op = "storage/mongo/ListReplies"

	if err := exists(ctx, m.answers, byID(answerID)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filter := bson.D{{Key: "answer", Value: answerID}}
	if parentReplyID == "" {
		// matches a missing field as well as an explicit null
		filter = append(filter, bson.E{Key: "parentReply", Value: nil})
	} else {
		filter = append(filter, bson.E{Key: "parentReply", Value: parentReplyID})
	}

	cur, err := m.replies.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}

	replies, err := decodeAll[models.Reply](ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	derive(replies)
	return replies, nil
}
