package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dyce/backend/internal/blinddate"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := generateToken("user_A", testSecret)
	require.NoError(t, err)

	userID, err := parseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user_A", userID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := generateToken("user_A", testSecret)
	require.NoError(t, err)

	_, err = parseToken(token, "other-secret")
	assert.Error(t, err)
}

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": MustUserID(c)})
	})
	return r
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)

	authTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")

	authTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	authTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token, err := generateToken("user_A", testSecret)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	authTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user_A")
}

func TestRespondBlindDateError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		code int
	}{
		{blinddate.ErrAlreadyActive, http.StatusBadRequest},
		{blinddate.ErrNoCandidate, http.StatusNotFound},
		{blinddate.ErrNotFound, http.StatusNotFound},
		{blinddate.ErrExpired, http.StatusGone},
		{blinddate.ErrInvalidMessageType, http.StatusBadRequest},
		{errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondBlindDateError(c, tc.err)

		assert.Equal(t, tc.code, w.Code, "error %v", tc.err)
		assert.Contains(t, w.Body.String(), `"success":false`)
	}
}
