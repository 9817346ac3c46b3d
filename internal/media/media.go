// Package media hands out presigned S3/MinIO upload URLs for question images.
// Clients PUT the file directly to object storage and put the returned public
// URL into a question's images list.
package media

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/emilythestrangee/qna-forum/backend/internal/config"
)

var (
	// ErrInvalidArgument - content type not allowed or size out of range.
	ErrInvalidArgument = errors.New("invalid upload request")
	// ErrDisabled - object storage is not configured.
	ErrDisabled = errors.New("image uploads are disabled")
)

// Upload describes one presigned PUT.
type Upload struct {
	UploadURL       string            `json:"uploadUrl"`
	Key             string            `json:"key"`
	ExpiresIn       int64             `json:"expiresIn"` // seconds
	RequiredHeaders map[string]string `json:"requiredHeaders"`
	PublicURL       string            `json:"publicUrl"`
}

// Uploader issues upload URLs.
type Uploader interface {
	ImageUploadURL(ctx context.Context, userID, contentType string, contentLength int64) (*Upload, error)
}

// Images is the MinIO-backed Uploader.
type Images struct {
	cfg    config.S3Config
	client *mclient.Client
}

var _ Uploader = (*Images)(nil)

// New builds the client and checks that the bucket exists.
func New(ctx context.Context, cfg config.S3Config) (*Images, error) {
	const op = "media/New"

	endpoint, secure := splitEndpoint(cfg.Endpoint, cfg.UseSSL)
	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.Bucket)
	}

	return &Images{cfg: cfg, client: client}, nil
}

// splitEndpoint strips an optional scheme; https forces TLS.
func splitEndpoint(endpoint string, useSSL bool) (string, bool) {
	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" && u.Host != "" {
		return u.Host, u.Scheme == "https"
	}
	return endpoint, useSSL
}

func (s *Images) ImageUploadURL(ctx context.Context, userID, contentType string, contentLength int64) (*Upload, error) {
	const op = "media/ImageUploadURL"

	ext, err := validate(s.cfg, contentType, contentLength)
	if err != nil {
		return nil, err
	}

	key := path.Join("questions", userID, uuid.NewString()+ext)
	u, err := s.client.PresignedPutObject(ctx, s.cfg.Bucket, key, s.cfg.PresignTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Upload{
		UploadURL: u.String(),
		Key:       key,
		ExpiresIn: int64(s.cfg.PresignTTL / time.Second),
		RequiredHeaders: map[string]string{
			"Content-Type":   contentType,
			"Content-Length": fmt.Sprintf("%d", contentLength),
		},
		PublicURL: publicURL(s.cfg, key),
	}, nil
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

func validate(cfg config.S3Config, contentType string, contentLength int64) (string, error) {
	if contentLength <= 0 || contentLength > cfg.MaxSizeBytes {
		return "", fmt.Errorf("%w: size must be between 1 and %d bytes", ErrInvalidArgument, cfg.MaxSizeBytes)
	}
	if !slices.Contains(cfg.AllowedTypes, contentType) {
		return "", fmt.Errorf("%w: content type %q is not allowed", ErrInvalidArgument, contentType)
	}
	return extensions[contentType], nil
}

// publicURL prefers the configured CDN base and falls back to path-style
// bucket addressing on the endpoint.
func publicURL(cfg config.S3Config, key string) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/") + "/" + key
	}

	host, secure := splitEndpoint(cfg.Endpoint, cfg.UseSSL)
	scheme := "http"
	if secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, host, cfg.Bucket, key)
}

// Disabled is the Uploader used when S3 is not configured.
type Disabled struct{}

func (Disabled) ImageUploadURL(context.Context, string, string, int64) (*Upload, error) {
	return nil, ErrDisabled
}
