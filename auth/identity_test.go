package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepwise/backend/models"
)

// fakeCredentialStore keeps credentials in a map keyed by email
type fakeCredentialStore struct {
	creds     map[string]*models.Credential
	createErr error
	linked    map[string]string
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{
		creds:  make(map[string]*models.Credential),
		linked: make(map[string]string),
	}
}

func (f *fakeCredentialStore) CreateCredential(ctx context.Context, cred *models.Credential) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.creds[cred.Email]; ok {
		return fmt.Errorf("credential for %s: %w", cred.Email, models.ErrAlreadyExists)
	}
	f.creds[cred.Email] = cred
	return nil
}

func (f *fakeCredentialStore) GetCredentialByEmail(ctx context.Context, email string) (*models.Credential, error) {
	cred, ok := f.creds[email]
	if !ok {
		return nil, fmt.Errorf("credential for %s: %w", email, models.ErrNotFound)
	}
	return cred, nil
}

func (f *fakeCredentialStore) LinkGoogleID(ctx context.Context, email, googleID string) error {
	f.linked[email] = googleID
	return nil
}

func newTestIdentity(store CredentialStore) *IdentityService {
	return NewIdentityService(store, NewTokenService(testConfig()))
}

func TestCreateAccountHashesPassword(t *testing.T) {
	store := newFakeCredentialStore()
	s := newTestIdentity(store)

	uid, err := s.CreateAccount(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	cred := store.creds["user@example.com"]
	require.NotNil(t, cred)
	assert.Equal(t, uid, cred.UID)
	assert.Equal(t, "password", cred.Provider)
	assert.NotEqual(t, "secret", cred.PasswordHash)
	assert.True(t, CheckPassword("secret", cred.PasswordHash))
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	store := newFakeCredentialStore()
	s := newTestIdentity(store)

	_, err := s.CreateAccount(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)

	_, err = s.CreateAccount(context.Background(), "user@example.com", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestVerifyCredentials(t *testing.T) {
	store := newFakeCredentialStore()
	s := newTestIdentity(store)

	uid, err := s.CreateAccount(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)

	cred, err := s.VerifyCredentials(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, uid, cred.UID)

	_, err = s.VerifyCredentials(context.Background(), "user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown accounts and wrong passwords are indistinguishable
	_, err = s.VerifyCredentials(context.Background(), "nobody@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyCredentialsGoogleAccount(t *testing.T) {
	store := newFakeCredentialStore()
	store.creds["user@example.com"] = &models.Credential{
		UID:      "uid-1",
		Email:    "user@example.com",
		Provider: "google",
		GoogleID: "g-1",
	}
	s := newTestIdentity(store)

	_, err := s.VerifyCredentials(context.Background(), "user@example.com", "anything")
	assert.ErrorIs(t, err, ErrWrongProvider)
}

func TestIssueAssertionIsValid(t *testing.T) {
	tokens := NewTokenService(testConfig())
	s := NewIdentityService(newFakeCredentialStore(), tokens)

	cred := &models.Credential{UID: "uid-1", Email: "user@example.com"}
	assertion, err := s.IssueAssertion(cred)
	require.NoError(t, err)

	claims, err := tokens.Validate(assertion, TokenKindAssertion)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UID)
}

func TestAccountForGoogleUserProvisionsNewAccount(t *testing.T) {
	store := newFakeCredentialStore()
	s := newTestIdentity(store)

	cred, created, err := s.AccountForGoogleUser(context.Background(), &GoogleUserInfo{
		GoogleID: "g-1",
		Email:    " User@Example.com",
		Name:     "John Doe",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "user@example.com", cred.Email)
	assert.Equal(t, "google", cred.Provider)
	assert.Equal(t, "g-1", cred.GoogleID)
	assert.NotEmpty(t, cred.UID)
}

func TestAccountForGoogleUserLinksExistingAccount(t *testing.T) {
	store := newFakeCredentialStore()
	s := newTestIdentity(store)

	uid, err := s.CreateAccount(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)

	cred, created, err := s.AccountForGoogleUser(context.Background(), &GoogleUserInfo{
		GoogleID: "g-1",
		Email:    "user@example.com",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, uid, cred.UID)
	assert.Equal(t, "g-1", store.linked["user@example.com"])
}

func TestCreateAccountStoreFailure(t *testing.T) {
	store := newFakeCredentialStore()
	store.createErr = errors.New("backend down")
	s := newTestIdentity(store)

	_, err := s.CreateAccount(context.Background(), "user@example.com", "secret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailTaken)
}
