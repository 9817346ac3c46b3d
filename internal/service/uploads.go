package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emilythestrangee/qna-forum/backend/internal/logger"
	"github.com/emilythestrangee/qna-forum/backend/internal/media"
)

// ImageUploadURL issues a presigned PUT for a question image.
func (s *Service) ImageUploadURL(ctx context.Context, userID, contentType string, contentLength int64) (*media.Upload, error) {
	const op = "service/uploads/ImageUploadURL"

	contentType = strings.TrimSpace(contentType)
	lg := logger.From(ctx).With("op", op, "user_id", userID, "content_type", contentType, "size", contentLength)

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	up, err := s.uploader.ImageUploadURL(ctx, userID, contentType, contentLength)
	switch {
	case err == nil:
		return up, nil
	case errors.Is(err, media.ErrInvalidArgument):
		return nil, fmt.Errorf("%s: %w", op, because(ErrInvalidArgument, strings.TrimPrefix(err.Error(), media.ErrInvalidArgument.Error()+": ")))
	case errors.Is(err, media.ErrDisabled):
		return nil, fmt.Errorf("%s: %w", op, because(ErrUnavailable, err.Error()))
	default:
		lg.Error("presign upload", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}
}
