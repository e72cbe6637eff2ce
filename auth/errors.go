package auth

import "errors"

// User-facing authentication errors. Their text is surfaced verbatim
// by the submission flow's notification messages.
var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongProvider      = errors.New("this account uses Google Sign-In, please sign in with Google")
	ErrInvalidAssertion   = errors.New("invalid or expired sign-in assertion")
	ErrNoSession          = errors.New("no active session")
)
