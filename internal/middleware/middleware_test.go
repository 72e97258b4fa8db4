package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/million_tracker/internal/middleware"
	"github.com/SscSPs/million_tracker/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "million-tracker-test"
)

// newAuthRouter returns a router whose private handler logs through the
// request logger into the returned buffer.
func newAuthRouter(enabled bool) (*gin.Engine, *bytes.Buffer) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.WithLogger(c.Request.Context(), logger))
		c.Next()
	})
	r.GET("/private", middleware.AuthMiddleware(testSecret, testIssuer, enabled), func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("private resource served")
		c.String(http.StatusOK, "ok")
	})
	return r, &buf
}

func serve(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/private", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r, logs := newAuthRouter(true)

	valid, _, err := utils.IssueToken("owner", testSecret, testIssuer, time.Now(), time.Hour)
	require.NoError(t, err)
	expired, _, err := utils.IssueToken("owner", testSecret, testIssuer, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	otherIssuer, _, err := utils.IssueToken("owner", testSecret, "someone-else", time.Now(), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, "ok"},
		{"missing header", "", http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, "Bearer {token}"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "Token has expired"},
		{"wrong issuer", "Bearer " + otherIssuer, http.StatusUnauthorized, "Invalid token"},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized, "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs.Reset()
			w := serve(r, tt.header)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, logs.String(), `"user_id":"owner"`)
			} else {
				assert.NotContains(t, logs.String(), "user_id")
			}
		})
	}
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	r, logs := newAuthRouter(false)
	w := serve(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.NotContains(t, logs.String(), "user_id")
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim, err := middleware.NewMemoryLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/limited", middleware.RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodGet, "/limited", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestNewMemoryLimiter_InvalidRate(t *testing.T) {
	_, err := middleware.NewMemoryLimiter("often")
	assert.Error(t, err)
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger))
	r.GET("/ping", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("inside handler")
		c.String(http.StatusOK, "pong")
	})

	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"request_id":"req-123"`)
	assert.Contains(t, lines[0], "inside handler")
	assert.Contains(t, lines[1], `"status":200`)
}

func TestGetLoggerFromCtx_Default(t *testing.T) {
	assert.Equal(t, slog.Default(), middleware.GetLoggerFromCtx(context.Background()))
}
