// Package service holds the business rules of the Q&A backend: voting,
// reply trees, listing aggregation, accepted answers, profiles and auth.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/emilythestrangee/qna-forum/backend/internal/auth"
	"github.com/emilythestrangee/qna-forum/backend/internal/cache"
	"github.com/emilythestrangee/qna-forum/backend/internal/config"
	"github.com/emilythestrangee/qna-forum/backend/internal/logger"
	"github.com/emilythestrangee/qna-forum/backend/internal/media"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
)

var (
	// ErrUnauthorized - no or invalid identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden - identity known but not allowed.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound - the entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument - malformed or out-of-range input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict - uniqueness violated.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable - an optional backend is not configured.
	ErrUnavailable = errors.New("unavailable")
	// ErrInternal - storage or other unexpected failures.
	ErrInternal = errors.New("internal error")
)

// reasonError attaches a client-facing message to a taxonomy error.
type reasonError struct {
	kind   error
	reason string
}

func (e *reasonError) Error() string { return e.kind.Error() + ": " + e.reason }
func (e *reasonError) Unwrap() error { return e.kind }

func because(kind error, reason string) error {
	return &reasonError{kind: kind, reason: reason}
}

// Reason returns the client-facing message carried by err, if any.
func Reason(err error) string {
	var re *reasonError
	if errors.As(err, &re) {
		return re.reason
	}
	return ""
}

type Service struct {
	storage  storage.Storage
	pages    cache.PageCache
	uploader media.Uploader
	tokens   *auth.Tokens
	limits   config.LimitsConfig
}

// New wires the service. A nil cache or uploader disables that feature.
func New(st storage.Storage, pages cache.PageCache, uploader media.Uploader, tokens *auth.Tokens, limits config.LimitsConfig) *Service {
	if pages == nil {
		pages = cache.Nop{}
	}
	if uploader == nil {
		uploader = media.Disabled{}
	}
	if limits.DefaultPageSize <= 0 {
		limits.DefaultPageSize = 10
	}
	if limits.MaxPageSize <= 0 {
		limits.MaxPageSize = 50
	}
	return &Service{
		storage:  st,
		pages:    pages,
		uploader: uploader,
		tokens:   tokens,
		limits:   limits,
	}
}

// Health reports the storage backend status.
func (s *Service) Health(ctx context.Context) map[string]string {
	return s.storage.Health(ctx)
}

// storageErr translates a storage failure. notFound is the message used
// for storage.ErrNotFound; anything unexpected is logged and becomes
// ErrInternal.
func storageErr(lg *slog.Logger, op string, err error, notFound string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%s: %w", op, because(ErrNotFound, notFound))
	case errors.Is(err, storage.ErrConflict):
		lg.Warn("conflict", "err", err)
		return fmt.Errorf("%s: %w", op, ErrConflict)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		lg.Warn("request aborted", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	default:
		lg.Error("storage error", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}
}

// invalidatePages drops cached listing pages. Failures only cost freshness.
func (s *Service) invalidatePages(ctx context.Context) {
	if err := s.pages.Invalidate(ctx); err != nil {
		logger.From(ctx).Warn("listing cache invalidation failed", "err", err)
	}
}

// joinAuthors resolves the author of every item in one storage call.
// Authors that no longer exist keep only their id.
func joinAuthors[T any](ctx context.Context, users storage.Users, items []T, ref func(*T) (string, **models.Author)) error {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for i := range items {
		id, _ := ref(&items[i])
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	authors, err := users.Authors(ctx, ids)
	if err != nil {
		return err
	}

	for i := range items {
		id, dst := ref(&items[i])
		a, ok := authors[id]
		if !ok {
			a = models.Author{ID: id}
		}
		*dst = &a
	}
	return nil
}

func questionAuthor(q *models.Question) (string, **models.Author) { return q.AuthorID, &q.Author }
func answerAuthor(a *models.Answer) (string, **models.Author)     { return a.AuthorID, &a.Author }
func replyAuthor(r *models.Reply) (string, **models.Author)       { return r.AuthorID, &r.Author }
func commentAuthor(c *models.Comment) (string, **models.Author)   { return c.AuthorID, &c.Author }
