// Package flow implements the credential submission flow: a single entry
// point that validates and normalizes a sign-up or sign-in submission,
// drives the collaborators for the chosen branch, and always resolves to
// one outcome.
package flow

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/prepwise/backend/models"
)

// Mode selects the submission branch
type Mode string

const (
	ModeSignUp Mode = "sign-up"
	ModeSignIn Mode = "sign-in"
)

// Navigation targets reported with successful outcomes
const (
	RedirectSignIn = "/sign-in"
	RedirectHome   = "/"
)

// SentinelSignInFailed is shown when the provider verifies credentials but
// yields no assertion. It deliberately hides the underlying condition.
const SentinelSignInFailed = "Sign in failed. Please try again."

// Input is one form submission. File attachments are only meaningful for
// sign-up and may be nil.
type Input struct {
	Mode         Mode
	Name         string
	Email        string
	Password     string
	ProfileImage *multipart.FileHeader
	ResumeFile   *multipart.FileHeader
}

// Outcome is the single result of a submission. The flow never returns an
// error: every failure resolves to an Outcome with a user-facing message.
type Outcome struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`

	// SessionToken carries the established session out to the HTTP layer
	// after a successful sign-in. Never serialized.
	SessionToken string `json:"-"`
}

// IdentityProvider creates accounts, verifies credentials, and issues
// bearer assertions
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password string) (uid string, err error)
	VerifyCredentials(ctx context.Context, email, password string) (*models.Credential, error)
	IssueAssertion(cred *models.Credential) (string, error)
}

// UserStore persists user records keyed by uid
type UserStore interface {
	CreateUserRecord(ctx context.Context, rec *models.UserRecord) error
}

// SessionService exchanges a bearer assertion for a server session
type SessionService interface {
	Establish(ctx context.Context, email, assertion string) (string, error)
}

// FileEncoder converts an uploaded file into an embeddable string
type FileEncoder interface {
	EncodeDataURL(header *multipart.FileHeader) (string, error)
}

// Flow drives credential submissions against its collaborators
type Flow struct {
	identity IdentityProvider
	users    UserStore
	sessions SessionService
	encoder  FileEncoder
	now      func() time.Time
}

// New creates a new submission flow
func New(identity IdentityProvider, users UserStore, sessions SessionService, encoder FileEncoder) *Flow {
	return &Flow{
		identity: identity,
		users:    users,
		sessions: sessions,
		encoder:  encoder,
		now:      time.Now,
	}
}

// Submit runs exactly one submission branch and resolves to one outcome.
// Validation happens after normalization and before any collaborator call.
func (f *Flow) Submit(ctx context.Context, in Input) Outcome {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	password := strings.TrimSpace(in.Password)
	name := strings.TrimSpace(in.Name)

	if msg := validate(in.Mode, name, email, password); msg != "" {
		return failure(msg)
	}

	if in.Mode == ModeSignUp {
		return f.signUp(ctx, in, name, email, password)
	}
	return f.signIn(ctx, email, password)
}

// signUp runs the four-step sign-up sequence. Each step's failure aborts the
// later steps; a credential created in step 1 is not rolled back when a later
// step fails.
func (f *Flow) signUp(ctx context.Context, in Input, name, email, password string) Outcome {
	uid, err := f.identity.CreateAccount(ctx, email, password)
	if err != nil {
		return failure(err.Error())
	}

	profilePic := ""
	if in.ProfileImage != nil {
		profilePic, err = f.encoder.EncodeDataURL(in.ProfileImage)
		if err != nil {
			return failure("Failed to process profile picture: " + err.Error())
		}
	}

	resume := ""
	if in.ResumeFile != nil {
		resume, err = f.encoder.EncodeDataURL(in.ResumeFile)
		if err != nil {
			return failure("Failed to process resume: " + err.Error())
		}
	}

	rec := &models.UserRecord{
		UID:        uid,
		Name:       name,
		Email:      email,
		ProfilePic: profilePic,
		Resume:     resume,
		CreatedAt:  f.now().UTC().Format(time.RFC3339),
	}
	if err := f.users.CreateUserRecord(ctx, rec); err != nil {
		return failure(err.Error())
	}

	return Outcome{
		Success:  true,
		Message:  "Account created successfully. Please sign in.",
		Redirect: RedirectSignIn,
	}
}

func (f *Flow) signIn(ctx context.Context, email, password string) Outcome {
	cred, err := f.identity.VerifyCredentials(ctx, email, password)
	if err != nil {
		return failure(err.Error())
	}

	assertion, err := f.identity.IssueAssertion(cred)
	if err != nil {
		return failure(err.Error())
	}
	if assertion == "" {
		return failure(SentinelSignInFailed)
	}

	token, err := f.sessions.Establish(ctx, email, assertion)
	if err != nil {
		return failure(err.Error())
	}

	return Outcome{
		Success:      true,
		Message:      "Signed in successfully.",
		Redirect:     RedirectHome,
		SessionToken: token,
	}
}

func failure(message string) Outcome {
	return Outcome{Success: false, Message: message}
}
