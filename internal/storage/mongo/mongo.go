// Package mongo implements storage.Storage on MongoDB. Ballots live on each
// document as upvotes/downvotes arrays and are changed with set operators.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/emilythestrangee/qna-forum/backend/internal/config"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

const (
	usersCollection     = "users"
	questionsCollection = "questions"
	answersCollection   = "answers"
	repliesCollection   = "replies"
	commentsCollection  = "comments"
)

// Mongo is a thin adapter over the database and its collections.
type Mongo struct {
	client    *mongodriver.Client
	db        *mongodriver.Database
	users     *mongodriver.Collection
	questions *mongodriver.Collection
	answers   *mongodriver.Collection
	replies   *mongodriver.Collection
	comments  *mongodriver.Collection
}

var _ storage.Storage = (*Mongo)(nil)

// New connects, pings the primary and ensures indexes.
func New(ctx context.Context, cfg config.DatabaseConfig) (*Mongo, error) {
	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("mongo: empty database.mongo_url")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(cfg.MongoDB)
	m := &Mongo{
		client:    cli,
		db:        db,
		users:     db.Collection(usersCollection),
		questions: db.Collection(questionsCollection),
		answers:   db.Collection(answersCollection),
		replies:   db.Collection(repliesCollection),
		comments:  db.Collection(commentsCollection),
	}

	if err := m.Migrate(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}
	return m, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Migrate creates the indexes the queries rely on. It is idempotent.
func (m *Mongo) Migrate(ctx context.Context) error {
	indexes := map[*mongodriver.Collection][]mongodriver.IndexModel{
		m.users: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("email_unique").SetUnique(true),
			},
		},
		m.questions: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName("created_desc")},
			{Keys: bson.D{{Key: "tags", Value: 1}}, Options: options.Index().SetName("tags")},
			{Keys: bson.D{{Key: "author", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("author_created_desc")},
		},
		m.answers: {
			{Keys: bson.D{{Key: "question", Value: 1}}, Options: options.Index().SetName("question")},
			{Keys: bson.D{{Key: "author", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("author_created_desc")},
		},
		m.replies: {
			{
				Keys:    bson.D{{Key: "answer", Value: 1}, {Key: "parentReply", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("answer_parent_created_desc"),
			},
		},
		m.comments: {
			{Keys: bson.D{{Key: "question", Value: 1}, {Key: "createdAt", Value: 1}}, Options: options.Index().SetName("question_created_asc")},
			{Keys: bson.D{{Key: "answer", Value: 1}, {Key: "createdAt", Value: 1}}, Options: options.Index().SetName("answer_created_asc")},
			{Keys: bson.D{{Key: "author", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("author_created_desc")},
		},
	}

	for coll, models := range indexes {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongo ensure indexes on %s: %w", coll.Name(), err)
		}
	}
	return nil
}

func (m *Mongo) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stats := map[string]string{"driver": config.DriverMongo}
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}
	stats["status"] = "up"
	stats["database"] = m.db.Name()
	return stats
}

func (m *Mongo) collectionOf(kind vote.Kind) (*mongodriver.Collection, error) {
	switch kind {
	case vote.KindQuestion:
		return m.questions, nil
	case vote.KindAnswer:
		return m.answers, nil
	case vote.KindReply:
		return m.replies, nil
	case vote.KindComment:
		return m.comments, nil
	default:
		return nil, fmt.Errorf("unknown vote target kind %q", kind)
	}
}

// now is millisecond precision, which is what BSON dates store.
func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// emptyBallot avoids storing null arrays, which $addToSet rejects.
func emptyBallot(b *vote.Ballot) {
	if b.Upvotes == nil {
		b.Upvotes = []string{}
	}
	if b.Downvotes == nil {
		b.Downvotes = []string{}
	}
}

func byID(id string) bson.D { return bson.D{{Key: "_id", Value: id}} }

// exists returns storage.ErrNotFound when coll has no document with id.
func exists(ctx context.Context, coll *mongodriver.Collection, filter bson.D) error {
	n, err := coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func findOne[T any](ctx context.Context, coll *mongodriver.Collection, filter bson.D) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func decodeAll[T any](ctx context.Context, cur *mongodriver.Cursor) ([]T, error) {
	defer cur.Close(ctx)

	out := []T{}
	for cur.Next(ctx) {
		var item T
		if err := cur.Decode(&item); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		out = append(out, item)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return out, nil
}

// derive normalizes ballots read back from documents and fills VoteCount.
func derive[T any, P interface {
	*T
	vote.Votable
	Derive()
}](items []T) {
	for i := range items {
		p := P(&items[i])
		emptyBallot(p.VoteBallot())
		p.Derive()
	}
}

// voteCountStage computes voteCount from the ballot arrays for sorting.
var voteCountStage = bson.D{{Key: "$addFields", Value: bson.D{{Key: "voteCount", Value: bson.D{
	{Key: "$subtract", Value: bson.A{
		bson.D{{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$upvotes", bson.A{}}}}}},
		bson.D{{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$downvotes", bson.A{}}}}}},
	}},
}}}}}
