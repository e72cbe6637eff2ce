package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prepwise/backend/models"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "session_token"

// UserDirectory resolves persisted user records by uid
type UserDirectory interface {
	GetUserRecord(ctx context.Context, uid string) (*models.UserRecord, error)
}

// SessionUser is the resolved identity behind an active session, carrying
// only what the presentation chrome needs
type SessionUser struct {
	UID        string `json:"uid"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	ProfilePic string `json:"profilePic"`
}

// SessionManager is the session endpoint: it exchanges bearer assertions for
// server sessions, resolves the current user, and invalidates sessions.
type SessionManager struct {
	tokens *TokenService
	users  UserDirectory
}

// NewSessionManager creates a new session manager
func NewSessionManager(tokens *TokenService, users UserDirectory) *SessionManager {
	return &SessionManager{tokens: tokens, users: users}
}

// Establish consumes a bearer assertion and mints a session token. The email
// must match the one the assertion was issued for.
func (m *SessionManager) Establish(ctx context.Context, email, assertion string) (string, error) {
	claims, err := m.tokens.Validate(assertion, TokenKindAssertion)
	if err != nil {
		return "", ErrInvalidAssertion
	}

	if !strings.EqualFold(claims.Email, email) {
		return "", ErrInvalidAssertion
	}

	return m.tokens.IssueSessionToken(claims.UID, claims.Email)
}

// ResolveUser resolves the user behind a session token. A valid token whose
// user record has gone missing resolves to no session.
func (m *SessionManager) ResolveUser(ctx context.Context, sessionToken string) (*SessionUser, error) {
	claims, err := m.tokens.Validate(sessionToken, TokenKindSession)
	if err != nil {
		return nil, ErrNoSession
	}

	rec, err := m.users.GetUserRecord(ctx, claims.UID)
	if err != nil {
		return nil, ErrNoSession
	}

	return &SessionUser{
		UID:        rec.UID,
		Name:       rec.Name,
		Email:      rec.Email,
		ProfilePic: rec.ProfilePic,
	}, nil
}

// SetSessionCookie attaches the session cookie to the response
func (m *SessionManager) SetSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(m.tokens.SessionExpiry().Seconds()), "/", "", false, true)
}

// Invalidate clears the session cookie. With stateless session tokens there
// is no server-side record to revoke.
func (m *SessionManager) Invalidate(c *gin.Context) error {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	return nil
}
