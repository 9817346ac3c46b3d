package mongo

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
)

func (m *Mongo) CreateQuestion(ctx context.Context, q *models.Question) error {
	const op = "storage/mongo/CreateQuestion"

	q.ID = newID(q.ID)
	q.CreatedAt = now()
	q.UpdatedAt = q.CreatedAt
	emptyBallot(&q.Ballot)
	if q.Tags == nil {
		q.Tags = []string{}
	}
	if q.Images == nil {
		q.Images = []string{}
	}

	if _, err := m.questions.InsertOne(ctx, q); err != nil {
		return fmt.Errorf("%s: insert: %w", op, err)
	}
	q.Derive()
	return nil
}

func (m *Mongo) QuestionByID(ctx context.Context, id string) (*models.Question, error) {
	const op = "storage/mongo/QuestionByID"

	q, err := findOne[models.Question](ctx, m.questions, byID(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	emptyBallot(&q.Ballot)
	q.Derive()
	return q, nil
}

func (m *Mongo) UpdateQuestion(ctx context.Context, q *models.Question) error {
	const op = "storage/mongo/UpdateQuestion"

	q.UpdatedAt = now()
	res, err := m.questions.UpdateByID(ctx, q.ID, bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: q.Title},
		{Key: "content", Value: q.Content},
		{Key: "tags", Value: q.Tags},
		{Key: "images", Value: q.Images},
		{Key: "updatedAt", Value: q.UpdatedAt},
	}}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

// DeleteQuestion removes replies, comments and answers before the question.
// Votes live on the documents themselves.
func (m *Mongo) DeleteQuestion(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteQuestion"

	if err := exists(ctx, m.questions, byID(id)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	answerIDs, err := m.answerIDs(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if len(answerIDs) > 0 {
		in := bson.D{{Key: "$in", Value: answerIDs}}
		if _, err := m.replies.DeleteMany(ctx, bson.D{{Key: "answer", Value: in}}); err != nil {
			return fmt.Errorf("%s: replies: %w", op, err)
		}
		if _, err := m.comments.DeleteMany(ctx, bson.D{{Key: "answer", Value: in}}); err != nil {
			return fmt.Errorf("%s: answer comments: %w", op, err)
		}
	}
	if _, err := m.comments.DeleteMany(ctx, bson.D{{Key: "question", Value: id}}); err != nil {
		return fmt.Errorf("%s: question comments: %w", op, err)
	}
	if _, err := m.answers.DeleteMany(ctx, bson.D{{Key: "question", Value: id}}); err != nil {
		return fmt.Errorf("%s: answers: %w", op, err)
	}

	res, err := m.questions.DeleteOne(ctx, byID(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

func (m *Mongo) answerIDs(ctx context.Context, questionID string) ([]string, error) {
	cur, err := m.answers.Find(ctx, bson.D{{Key: "question", Value: questionID}},
		options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	docs, err := decodeAll[struct {
		ID string `bson:"_id"`
	}](ctx, cur)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

func questionFilter(f models.QuestionFilter) bson.D {
	filter := bson.D{}
	if f.Subject != "" {
		filter = append(filter, bson.E{Key: "tags", Value: f.Subject})
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		re := bson.D{{Key: "$regex", Value: regexp.QuoteMeta(search)}, {Key: "$options", Value: "i"}}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: re}},
			bson.D{{Key: "content", Value: re}},
		}})
	}
	return filter
}

func (m *Mongo) ListQuestions(ctx context.Context, f models.QuestionFilter) ([]models.Question, int64, error) {
	const op = "storage/mongo/ListQuestions"

	filter := questionFilter(f)
	total, err := m.questions.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: count: %w", op, err)
	}

	sort := bson.D{{Key: "createdAt", Value: -1}}
	if f.Sort == models.SortTop {
		sort = bson.D{{Key: "voteCount", Value: -1}, {Key: "createdAt", Value: -1}}
	}

	pipeline := bson.A{
		bson.D{{Key: "$match", Value: filter}},
		voteCountStage,
		bson.D{{Key: "$sort", Value: sort}},
		bson.D{{Key: "$skip", Value: int64(f.Offset())}},
		bson.D{{Key: "$limit", Value: int64(f.Limit)}},
	}

	cur, err := m.questions.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: aggregate: %w", op, err)
	}
	questions, err := decodeAll[models.Question](ctx, cur)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	derive(questions)
	return questions, total, nil
}

func (m *Mongo) IncrementViews(ctx context.Context, id string) error {
	const op = "storage/mongo/IncrementViews"

	res, err := m.questions.UpdateByID(ctx, id, bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

func (m *Mongo) CountAnswers(ctx context.Context, questionIDs []string) (map[string]int64, error) {
	const op = "storage/mongo/CountAnswers"

	counts := make(map[string]int64, len(questionIDs))
	if len(questionIDs) == 0 {
		return counts, nil
	}

	cur, err := m.answers.Aggregate(ctx, bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "question", Value: bson.D{{Key: "$in", Value: questionIDs}}}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$question"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: aggregate: %w", op, err)
	}

	rows, err := decodeAll[struct {
		QuestionID string `bson:"_id"`
		Count      int64  `bson:"count"`
	}](ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, r := range rows {
		counts[r.QuestionID] = r.Count
	}
	return counts, nil
}
