package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
)

func (m *Mongo) CreateUser(ctx context.Context, u *models.User) error {
	const op = "storage/mongo/CreateUser"

	u.ID = newID(u.ID)
	u.Email = models.NormalizeEmail(u.Email)
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	if u.JoinedAt.IsZero() {
		u.JoinedAt = u.CreatedAt
	}

	if _, err := m.users.InsertOne(ctx, u); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w: email", op, storage.ErrConflict)
		}
		return fmt.Errorf("%s: insert: %w", op, err)
	}
	return nil
}

func (m *Mongo) UserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage/mongo/UserByID"

	u, err := findOne[models.User](ctx, m.users, byID(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func (m *Mongo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage/mongo/UserByEmail"

	u, err := findOne[models.User](ctx, m.users, bson.D{{Key: "email", Value: models.NormalizeEmail(email)}})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func (m *Mongo) UpdateUser(ctx context.Context, u *models.User) error {
	const op = "storage/mongo/UpdateUser"

	u.UpdatedAt = now()
	res, err := m.users.UpdateByID(ctx, u.ID, bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: u.Name},
		{Key: "image", Value: u.Image},
		{Key: "bio", Value: u.Bio},
		{Key: "location", Value: u.Location},
		{Key: "updatedAt", Value: u.UpdatedAt},
	}}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

func (m *Mongo) Authors(ctx context.Context, ids []string) (map[string]models.Author, error) {
	const op = "storage/mongo/Authors"

	authors := make(map[string]models.Author, len(ids))
	if len(ids) == 0 {
		return authors, nil
	}

	cur, err := m.users.Find(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}},
		options.Find().SetProjection(bson.D{{Key: "name", Value: 1}, {Key: "image", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}

	rows, err := decodeAll[models.Author](ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, a := range rows {
		authors[a.ID] = a
	}
	return authors, nil
}
