package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/qna-forum/backend/internal/logger"
	"github.com/emilythestrangee/qna-forum/backend/internal/metrics"
)

type tokenMap map[string]string

func (m tokenMap) Authenticate(token string) (string, error) {
	if id, ok := m[token]; ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

func init() { gin.SetMode(gin.TestMode) }

func TestAuth(t *testing.T) {
	r := gin.New()
	r.GET("/me", Auth(tokenMap{"good": "u1"}), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing", "", http.StatusUnauthorized, `{"error":"authorization header required"}`},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, `{"error":"authorization header required"}`},
		{"empty token", "Bearer ", http.StatusUnauthorized, `{"error":"authorization header required"}`},
		{"bad token", "Bearer nope", http.StatusUnauthorized, `{"error":"invalid or expired token"}`},
		{"ok", "Bearer good", http.StatusOK, "u1"},
		{"scheme case", "bearer good", http.StatusOK, "u1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, w.Body.String())
			} else {
				assert.JSONEq(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestLogger(base))
	r.GET("/ping", func(c *gin.Context) {
		logger.From(c.Request.Context()).Info("inside")
		c.Status(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-42")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(requestIDHeader))
	out := buf.String()
	assert.Contains(t, out, `"msg":"inside"`)
	assert.Contains(t, out, `"request_id":"req-42"`)
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"level":"WARN"`)
}

func TestRequestLogger_GeneratesID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Len(t, w.Header().Get(requestIDHeader), 36)
}

func TestMetrics(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/questions/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	counter := metrics.HTTPRequests.WithLabelValues("/questions/:id", http.MethodGet, "200")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/questions/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/questions/def", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}
