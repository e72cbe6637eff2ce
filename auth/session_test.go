package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepwise/backend/models"
)

// fakeUserDirectory serves user records from a map keyed by uid
type fakeUserDirectory struct {
	records map[string]*models.UserRecord
}

func (f *fakeUserDirectory) GetUserRecord(ctx context.Context, uid string) (*models.UserRecord, error) {
	rec, ok := f.records[uid]
	if !ok {
		return nil, fmt.Errorf("user record for uid %s: %w", uid, models.ErrNotFound)
	}
	return rec, nil
}

func newTestSessionManager(records map[string]*models.UserRecord) (*SessionManager, *TokenService) {
	tokens := NewTokenService(testConfig())
	return NewSessionManager(tokens, &fakeUserDirectory{records: records}), tokens
}

func TestEstablishAndResolve(t *testing.T) {
	m, tokens := newTestSessionManager(map[string]*models.UserRecord{
		"uid-1": {UID: "uid-1", Name: "John Doe", Email: "user@example.com", ProfilePic: "data:image/png;base64,aGk="},
	})

	assertion, err := tokens.IssueAssertion("uid-1", "user@example.com")
	require.NoError(t, err)

	sessionToken, err := m.Establish(context.Background(), "user@example.com", assertion)
	require.NoError(t, err)
	require.NotEmpty(t, sessionToken)

	user, err := m.ResolveUser(context.Background(), sessionToken)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", user.UID)
	assert.Equal(t, "John Doe", user.Name)
	assert.Equal(t, "data:image/png;base64,aGk=", user.ProfilePic)
}

func TestEstablishRejectsEmailMismatch(t *testing.T) {
	m, tokens := newTestSessionManager(nil)

	assertion, err := tokens.IssueAssertion("uid-1", "user@example.com")
	require.NoError(t, err)

	_, err = m.Establish(context.Background(), "other@example.com", assertion)
	assert.ErrorIs(t, err, ErrInvalidAssertion)
}

func TestEstablishRejectsSessionTokenAsAssertion(t *testing.T) {
	m, tokens := newTestSessionManager(nil)

	sessionToken, err := tokens.IssueSessionToken("uid-1", "user@example.com")
	require.NoError(t, err)

	_, err = m.Establish(context.Background(), "user@example.com", sessionToken)
	assert.ErrorIs(t, err, ErrInvalidAssertion)
}

func TestResolveUserRejectsInvalidToken(t *testing.T) {
	m, _ := newTestSessionManager(nil)

	_, err := m.ResolveUser(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestResolveUserMissingRecord(t *testing.T) {
	// A valid session whose record has gone missing resolves to no session
	m, tokens := newTestSessionManager(map[string]*models.UserRecord{})

	sessionToken, err := tokens.IssueSessionToken("uid-1", "user@example.com")
	require.NoError(t, err)

	_, err = m.ResolveUser(context.Background(), sessionToken)
	assert.ErrorIs(t, err, ErrNoSession)
}
