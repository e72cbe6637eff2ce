package models

// SignUpRequest represents a sign-up form submission.
// Email and password grammar are checked by the submission flow after
// normalization, so only presence is enforced at the binding layer.
// @Description User sign-up request
type SignUpRequest struct {
	Name     string `form:"name" json:"name" binding:"required" example:"John Doe"`
	Email    string `form:"email" json:"email" binding:"required" example:"user@example.com"`
	Password string `form:"password" json:"password" binding:"required" example:"password123"`
}

// SignInRequest represents a sign-in form submission
// @Description User sign-in request
type SignInRequest struct {
	Email    string `form:"email" json:"email" binding:"required" example:"user@example.com"`
	Password string `form:"password" json:"password" binding:"required" example:"password123"`
}

// GoogleAuthRequest represents Google SSO authentication request
// @Description Google SSO authentication request
type GoogleAuthRequest struct {
	IDToken string `json:"idToken" binding:"required" example:"eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// AuthResponse mirrors a submission outcome: a toast message plus
// the page the client should navigate to
// @Description Authentication outcome
type AuthResponse struct {
	Success  bool   `json:"success" example:"true"`
	Message  string `json:"message" example:"Signed in successfully."`
	Redirect string `json:"redirect,omitempty" example:"/"`
}

// ResumeUploadResponse represents a resume upload response
// @Description Resume upload response
type ResumeUploadResponse struct {
	ResumeURL string `json:"resumeUrl" example:"https://storage.googleapis.com/bucket/resumes/uid/1.pdf"`
	Message   string `json:"message" example:"Resume uploaded successfully"`
}

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error    string `json:"error" example:"Authentication required"`
	Code     int    `json:"code" example:"401"`
	Details  string `json:"details,omitempty"`
	Redirect string `json:"redirect,omitempty" example:"/sign-in"`
}
