package models

import "time"

// UserRecord represents a user profile document in Firestore.
// It is written exactly once at sign-up and keyed by the provider-assigned uid.
// @Description User profile record
type UserRecord struct {
	UID        string `json:"uid" firestore:"uid" example:"3f1c9a2e-7b4d-4f1a-9c62-8d5e0a1b2c3d"`
	Name       string `json:"name" firestore:"name" example:"John Doe"`
	Email      string `json:"email" firestore:"email" example:"user@example.com"`
	ProfilePic string `json:"profilePic" firestore:"profilePic"` // data URL or ""
	Resume     string `json:"resume" firestore:"resume"`         // data URL or ""
	ResumeURL  string `json:"resumeUrl,omitempty" firestore:"resumeUrl,omitempty" example:"https://storage.googleapis.com/bucket/resumes/uid/1.pdf"`
	CreatedAt  string `json:"createdAt" firestore:"createdAt" example:"2025-01-02T15:04:05Z"` // ISO-8601
}

// Credential represents a stored login credential. Credentials live in their own
// collection keyed by normalized email and are never exposed to the submission flow.
type Credential struct {
	UID          string    `json:"-" firestore:"uid"`
	Email        string    `json:"email" firestore:"email"`
	PasswordHash string    `json:"-" firestore:"passwordHash"`
	Provider     string    `json:"provider" firestore:"provider"` // "password" or "google"
	GoogleID     string    `json:"-" firestore:"googleId,omitempty"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
}
