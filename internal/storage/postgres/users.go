package postgres

import (
	"context"

	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	u.Email = models.NormalizeEmail(u.Email)
	return mapErr(s.db.WithContext(ctx).Create(u).Error)
}

func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&u).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).
		Where("email = ?", models.NormalizeEmail(email)).
		Take(&u).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

// UpdateUser writes the profile columns; email and password are left alone.
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	res := s.db.WithContext(ctx).Model(u).
		Select("name", "image", "bio", "location", "updated_at").
		Updates(u)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) Authors(ctx context.Context, ids []string) (map[string]models.Author, error) {
	authors := make(map[string]models.Author, len(ids))
	if len(ids) == 0 {
		return authors, nil
	}

	var rows []models.Author
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Select("id, name, image").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, mapErr(err)
	}

	for _, a := range rows {
		authors[a.ID] = a
	}
	return authors, nil
}
