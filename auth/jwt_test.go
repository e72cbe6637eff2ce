package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepwise/backend/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:              "test-secret",
		SessionExpiryHours:     24,
		AssertionExpirySeconds: 300,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	s := NewTokenService(testConfig())

	assertion, err := s.IssueAssertion("uid-1", "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, assertion)

	claims, err := s.Validate(assertion, TokenKindAssertion)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, TokenKindAssertion, claims.Kind)
	assert.Equal(t, "prepwise", claims.Issuer)
}

func TestValidateRejectsWrongKind(t *testing.T) {
	s := NewTokenService(testConfig())

	assertion, err := s.IssueAssertion("uid-1", "user@example.com")
	require.NoError(t, err)

	// An assertion must not pass as a session token, and vice versa
	_, err = s.Validate(assertion, TokenKindSession)
	assert.Error(t, err)

	session, err := s.IssueSessionToken("uid-1", "user@example.com")
	require.NoError(t, err)
	_, err = s.Validate(session, TokenKindAssertion)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.AssertionExpirySeconds = -1
	s := NewTokenService(cfg)

	assertion, err := s.IssueAssertion("uid-1", "user@example.com")
	require.NoError(t, err)

	_, err = s.Validate(assertion, TokenKindAssertion)
	assert.Error(t, err)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	s := NewTokenService(testConfig())

	otherCfg := testConfig()
	otherCfg.JWTSecret = "other-secret"
	other := NewTokenService(otherCfg)

	assertion, err := other.IssueAssertion("uid-1", "user@example.com")
	require.NoError(t, err)

	_, err = s.Validate(assertion, TokenKindAssertion)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	s := NewTokenService(testConfig())

	_, err := s.Validate("not-a-token", TokenKindSession)
	assert.Error(t, err)
}
