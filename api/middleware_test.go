package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// captureUser returns a handler that records the userID the middleware put
// on the context, if any.
func captureUser(userID *string, found *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*userID, *found = ctxUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateNoSecretPassesThrough(t *testing.T) {
	var userID string
	var found bool
	middleware := newAuthMiddleware("")

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	recorder := httptest.NewRecorder()
	middleware.authenticate(captureUser(&userID, &found)).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.False(t, found)
}

func TestAuthenticateNoHeaderPassesThrough(t *testing.T) {
	var userID string
	var found bool
	middleware := newAuthMiddleware(testSecret)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	recorder := httptest.NewRecorder()
	middleware.authenticate(captureUser(&userID, &found)).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.False(t, found)
}

func TestAuthenticateValidToken(t *testing.T) {
	var userID string
	var found bool
	middleware := newAuthMiddleware(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	middleware.authenticate(captureUser(&userID, &found)).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, found)
	assert.Equal(t, "user-42", userID)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	middleware := newAuthMiddleware(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	middleware.authenticate(captureUser(new(string), new(bool))).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticateWrongSignature(t *testing.T) {
	middleware := newAuthMiddleware(testSecret)

	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	middleware.authenticate(captureUser(new(string), new(bool))).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	middleware := newAuthMiddleware(testSecret)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	recorder := httptest.NewRecorder()
	middleware.authenticate(captureUser(new(string), new(bool))).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticateMissingSubject(t *testing.T) {
	middleware := newAuthMiddleware(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	middleware.authenticate(captureUser(new(string), new(bool))).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
