package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prepwise/backend/models"
)

// NormalizeEmail trims surrounding whitespace and lower-cases an email so
// credential lookups are case-insensitive on the address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CredentialStore persists login credentials, keyed by normalized email.
// Implementations report models.ErrNotFound / models.ErrAlreadyExists.
type CredentialStore interface {
	CreateCredential(ctx context.Context, cred *models.Credential) error
	GetCredentialByEmail(ctx context.Context, email string) (*models.Credential, error)
	LinkGoogleID(ctx context.Context, email, googleID string) error
}

// IdentityService is the identity provider: it creates accounts, verifies
// credentials, and issues bearer assertions for authenticated users.
type IdentityService struct {
	creds  CredentialStore
	tokens *TokenService
}

// NewIdentityService creates a new identity service
func NewIdentityService(creds CredentialStore, tokens *TokenService) *IdentityService {
	return &IdentityService{creds: creds, tokens: tokens}
}

// CreateAccount registers a new password credential and returns the
// provider-assigned uid
func (s *IdentityService) CreateAccount(ctx context.Context, email, password string) (string, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to process password: %w", err)
	}

	cred := &models.Credential{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Provider:     "password",
		CreatedAt:    time.Now(),
	}

	if err := s.creds.CreateCredential(ctx, cred); err != nil {
		if errors.Is(err, models.ErrAlreadyExists) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("failed to create account: %w", err)
	}

	return cred.UID, nil
}

// VerifyCredentials checks an email/password pair and returns the matching
// credential. Missing accounts and wrong passwords are indistinguishable
// to the caller.
func (s *IdentityService) VerifyCredentials(ctx context.Context, email, password string) (*models.Credential, error) {
	cred, err := s.creds.GetCredentialByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up credentials: %w", err)
	}

	if cred.Provider == "google" {
		return nil, ErrWrongProvider
	}

	if !CheckPassword(password, cred.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return cred, nil
}

// IssueAssertion mints a bearer assertion for a verified credential
func (s *IdentityService) IssueAssertion(cred *models.Credential) (string, error) {
	return s.tokens.IssueAssertion(cred.UID, cred.Email)
}

// AccountForGoogleUser finds or provisions a credential for a verified Google
// user. Returns the credential and whether it was newly created. An existing
// password credential with the same email is linked to the Google ID.
func (s *IdentityService) AccountForGoogleUser(ctx context.Context, info *GoogleUserInfo) (*models.Credential, bool, error) {
	email := NormalizeEmail(info.Email)

	cred, err := s.creds.GetCredentialByEmail(ctx, email)
	if err == nil {
		if cred.GoogleID == "" {
			if err := s.creds.LinkGoogleID(ctx, email, info.GoogleID); err != nil {
				return nil, false, fmt.Errorf("failed to link Google account: %w", err)
			}
			cred.GoogleID = info.GoogleID
		}
		return cred, false, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up credentials: %w", err)
	}

	cred = &models.Credential{
		UID:       uuid.NewString(),
		Email:     email,
		Provider:  "google",
		GoogleID:  info.GoogleID,
		CreatedAt: time.Now(),
	}
	if err := s.creds.CreateCredential(ctx, cred); err != nil {
		return nil, false, fmt.Errorf("failed to create account: %w", err)
	}

	return cred, true, nil
}
