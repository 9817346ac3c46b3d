package media

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/qna-forum/backend/internal/config"
)

func testConfig() config.S3Config {
	return config.S3Config{
		Endpoint:     "http://minio:9000",
		Bucket:       "qna-images",
		MaxSizeBytes: 1 << 20,
		AllowedTypes: []string{"image/png", "image/jpeg"},
	}
}

func TestValidate(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name    string
		ct      string
		size    int64
		wantExt string
		wantErr bool
	}{
		{"png", "image/png", 10, ".png", false},
		{"jpeg at limit", "image/jpeg", 1 << 20, ".jpg", false},
		{"too large", "image/png", 1<<20 + 1, "", true},
		{"empty", "image/png", 0, "", true},
		{"type not allowed", "image/gif", 10, "", true},
		{"not an image", "application/pdf", 10, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := validate(cfg, tt.ct, tt.size)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestPublicURL(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, "http://minio:9000/qna-images/questions/u/k.png", publicURL(cfg, "questions/u/k.png"))

	cfg.PublicBaseURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/questions/u/k.png", publicURL(cfg, "questions/u/k.png"))
}

func TestSplitEndpoint(t *testing.T) {
	host, secure := splitEndpoint("https://s3.example.com", false)
	assert.Equal(t, "s3.example.com", host)
	assert.True(t, secure)

	host, secure = splitEndpoint("localhost:9000", true)
	assert.Equal(t, "localhost:9000", host)
	assert.True(t, secure)
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.ImageUploadURL(context.Background(), "u", "image/png", 1)
	require.ErrorIs(t, err, ErrDisabled)
}
