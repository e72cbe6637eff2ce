package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepwise/backend/models"
)

func newGatedRouter(t *testing.T, m *SessionManager) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renders := 0
	router := gin.New()
	protected := router.Group("/")
	protected.Use(SessionGate(m))
	protected.GET("/home", func(c *gin.Context) {
		renders++
		user := GetSessionUser(c)
		c.JSON(http.StatusOK, gin.H{"name": user.Name})
	})
	return router, &renders
}

func TestSessionGateWithoutSession(t *testing.T) {
	m, _ := newTestSessionManager(nil)
	router, renders := newGatedRouter(t, m)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	// The protected render path is never reached
	assert.Zero(t, *renders)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, SignInPath, resp.Redirect)
}

func TestSessionGateWithInvalidCookie(t *testing.T) {
	m, _ := newTestSessionManager(nil)
	router, renders := newGatedRouter(t, m)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, *renders)
}

func TestSessionGateWithValidSession(t *testing.T) {
	m, tokens := newTestSessionManager(map[string]*models.UserRecord{
		"uid-1": {UID: "uid-1", Name: "John Doe", Email: "user@example.com"},
	})
	router, renders := newGatedRouter(t, m)

	sessionToken, err := tokens.IssueSessionToken("uid-1", "user@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionToken})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *renders)
	assert.Contains(t, w.Body.String(), "John Doe")
}
