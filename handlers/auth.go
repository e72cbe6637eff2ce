package handlers

import (
	"context"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prepwise/backend/auth"
	"github.com/prepwise/backend/flow"
	"github.com/prepwise/backend/models"
)

// UserStore is the slice of the document store the auth handlers need
type UserStore interface {
	CreateUserRecord(ctx context.Context, rec *models.UserRecord) error
	GetUserRecord(ctx context.Context, uid string) (*models.UserRecord, error)
	UpdateUserResumeURL(ctx context.Context, uid, url string) error
}

// ResumeStorage archives raw resume files for signed-in users
type ResumeStorage interface {
	UploadResume(ctx context.Context, uid string, file multipart.File, header *multipart.FileHeader) (string, error)
	DeleteResume(ctx context.Context, resumeURL string) error
}

// AuthHandler handles authentication requests
type AuthHandler struct {
	flow       *flow.Flow
	identity   *auth.IdentityService
	sessions   *auth.SessionManager
	googleAuth *auth.GoogleAuthService
	users      UserStore
	resumes    ResumeStorage
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	submissionFlow *flow.Flow,
	identity *auth.IdentityService,
	sessions *auth.SessionManager,
	googleAuth *auth.GoogleAuthService,
	users UserStore,
	resumes ResumeStorage,
) *AuthHandler {
	return &AuthHandler{
		flow:       submissionFlow,
		identity:   identity,
		sessions:   sessions,
		googleAuth: googleAuth,
		users:      users,
		resumes:    resumes,
	}
}

// SignUp handles account creation with email/password and optional
// profile picture and resume attachments
// @Summary Sign up
// @Description Create a new account with email, password, and optional profile picture and resume files
// @Tags Auth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Display name"
// @Param email formData string true "Email address"
// @Param password formData string true "Password"
// @Param profilePic formData file false "Profile picture"
// @Param resume formData file false "Resume file"
// @Success 201 {object} models.AuthResponse "Account created"
// @Failure 400 {object} models.AuthResponse "Submission rejected"
// @Router /auth/sign-up [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	in := flow.Input{
		Mode:     flow.ModeSignUp,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	// File parts only exist on multipart submissions
	if fh, err := c.FormFile("profilePic"); err == nil {
		in.ProfileImage = fh
	}
	if fh, err := c.FormFile("resume"); err == nil {
		in.ResumeFile = fh
	}

	outcome := h.flow.Submit(c.Request.Context(), in)
	if !outcome.Success {
		c.JSON(http.StatusBadRequest, models.AuthResponse{
			Success: false,
			Message: outcome.Message,
		})
		return
	}

	log.Printf("[AuthHandler] User signed up: %s", req.Email)
	c.JSON(http.StatusCreated, models.AuthResponse{
		Success:  true,
		Message:  outcome.Message,
		Redirect: outcome.Redirect,
	})
}

// SignIn handles credential verification and session establishment
// @Summary Sign in
// @Description Verify email/password, exchange the bearer assertion for a session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.SignInRequest true "Sign-in request"
// @Success 200 {object} models.AuthResponse "Signed in"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.AuthResponse "Sign-in failed"
// @Router /auth/sign-in [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	outcome := h.flow.Submit(c.Request.Context(), flow.Input{
		Mode:     flow.ModeSignIn,
		Email:    req.Email,
		Password: req.Password,
	})
	if !outcome.Success {
		c.JSON(http.StatusUnauthorized, models.AuthResponse{
			Success: false,
			Message: outcome.Message,
		})
		return
	}

	h.sessions.SetSessionCookie(c, outcome.SessionToken)

	log.Printf("[AuthHandler] User signed in: %s", req.Email)
	c.JSON(http.StatusOK, models.AuthResponse{
		Success:  true,
		Message:  outcome.Message,
		Redirect: outcome.Redirect,
	})
}

// GoogleSignIn handles Google SSO authentication
// @Summary Sign in with Google
// @Description Sign in or provision an account using a Google SSO ID token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.GoogleAuthRequest true "Google auth request"
// @Success 200 {object} models.AuthResponse "Signed in"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Invalid Google token"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/google [post]
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req models.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	googleUser, err := h.googleAuth.VerifyIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		log.Printf("[AuthHandler] Failed to verify Google token: %v", err)
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid Google token",
			Code:    http.StatusUnauthorized,
			Details: err.Error(),
		})
		return
	}

	cred, created, err := h.identity.AccountForGoogleUser(c.Request.Context(), googleUser)
	if err != nil {
		log.Printf("[AuthHandler] Failed to provision Google account: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to create account",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	if created {
		rec := &models.UserRecord{
			UID:        cred.UID,
			Name:       googleUser.Name,
			Email:      cred.Email,
			ProfilePic: googleUser.Picture,
			CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.users.CreateUserRecord(c.Request.Context(), rec); err != nil {
			log.Printf("[AuthHandler] Failed to create Google user record: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Failed to create account",
				Code:  http.StatusInternalServerError,
			})
			return
		}
		log.Printf("[AuthHandler] New Google user created: %s", cred.Email)
	}

	assertion, err := h.identity.IssueAssertion(cred)
	if err != nil {
		log.Printf("[AuthHandler] Failed to issue assertion: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to sign in",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	token, err := h.sessions.Establish(c.Request.Context(), cred.Email, assertion)
	if err != nil {
		log.Printf("[AuthHandler] Failed to establish session: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to sign in",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	h.sessions.SetSessionCookie(c, token)

	log.Printf("[AuthHandler] Google user signed in: %s", cred.Email)
	c.JSON(http.StatusOK, models.AuthResponse{
		Success:  true,
		Message:  "Signed in successfully.",
		Redirect: flow.RedirectHome,
	})
}

// Me returns the currently authenticated user for the presentation chrome
// @Summary Current user
// @Description Resolve the user behind the ambient session
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{} "Resolved user"
// @Failure 401 {object} models.ErrorResponse "No active session"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := auth.GetSessionUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:    "Authentication required",
			Code:     http.StatusUnauthorized,
			Redirect: auth.SignInPath,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout invalidates the session and reports the sign-in redirect. A failed
// invalidation is logged, never surfaced; the client navigates regardless.
// @Summary Logout
// @Description Invalidate the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} models.AuthResponse "Signed out"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Invalidate(c); err != nil {
		log.Printf("[AuthHandler] Session invalidation failed: %v", err)
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Success:  true,
		Message:  "Signed out.",
		Redirect: auth.SignInPath,
	})
}

// UploadResume archives a resume file in Cloud Storage for the signed-in user
// @Summary Upload resume
// @Description Upload a resume file (PDF, DOC, DOCX) to the user's profile
// @Tags Auth
// @Accept multipart/form-data
// @Produce json
// @Param resume formData file true "Resume file"
// @Success 200 {object} models.ResumeUploadResponse "Resume uploaded"
// @Failure 400 {object} models.ErrorResponse "Invalid file"
// @Failure 401 {object} models.ErrorResponse "No active session"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/resume [post]
func (h *AuthHandler) UploadResume(c *gin.Context) {
	user := auth.GetSessionUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:    "Authentication required",
			Code:     http.StatusUnauthorized,
			Redirect: auth.SignInPath,
		})
		return
	}

	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Resume file is required",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	url, err := h.resumes.UploadResume(c.Request.Context(), user.UID, file, header)
	if err != nil {
		log.Printf("[AuthHandler] Failed to upload resume: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to upload resume",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	// Replace a previously archived copy, best effort
	if rec, err := h.users.GetUserRecord(c.Request.Context(), user.UID); err == nil && rec.ResumeURL != "" {
		if err := h.resumes.DeleteResume(c.Request.Context(), rec.ResumeURL); err != nil {
			log.Printf("[AuthHandler] Failed to delete old resume: %v", err)
		}
	}

	if err := h.users.UpdateUserResumeURL(c.Request.Context(), user.UID, url); err != nil {
		log.Printf("[AuthHandler] Failed to save resume reference: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to save resume reference",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	log.Printf("[AuthHandler] Resume uploaded for user: %s", user.Email)
	c.JSON(http.StatusOK, models.ResumeUploadResponse{
		ResumeURL: url,
		Message:   "Resume uploaded successfully",
	})
}
