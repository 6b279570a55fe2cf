package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trafficai/backend/internal/auth"
)

func newProtectedRouter(tokens TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	m := NewAuthMiddleware(tokens)
	r.GET("/protected", m.AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": MustUserID(c).String()})
	})
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", 30*time.Minute)
	userID := uuid.New()
	token, _, err := manager.Issue(userID)
	require.NoError(t, err)

	r := newProtectedRouter(manager)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", 30*time.Minute)
	r := newProtectedRouter(manager)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No authorization header")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", 30*time.Minute)
	r := newProtectedRouter(manager)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	expired := auth.NewTokenManager("test-secret", -time.Minute)
	token, _, err := expired.Issue(uuid.New())
	require.NoError(t, err)

	r := newProtectedRouter(auth.NewTokenManager("test-secret", 30*time.Minute))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BearerPrefixCaseInsensitive(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", 30*time.Minute)
	token, _, err := manager.Issue(uuid.New())
	require.NoError(t, err)

	r := newProtectedRouter(manager)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
