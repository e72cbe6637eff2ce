package storage

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/prepwise/backend/config"
	"github.com/prepwise/backend/models"
)

const (
	usersCollection       = "users"
	credentialsCollection = "credentials"
)

// FirestoreClient wraps Firestore operations
type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient creates a new Firestore client
func NewFirestoreClient(ctx context.Context, cfg *config.Config) (*FirestoreClient, error) {
	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &FirestoreClient{client: client}, nil
}

// Close closes the Firestore client
func (f *FirestoreClient) Close() error {
	return f.client.Close()
}

// CreateUserRecord writes a user record keyed by uid. Records are created
// exactly once; an existing document is an error.
func (f *FirestoreClient) CreateUserRecord(ctx context.Context, rec *models.UserRecord) error {
	_, err := f.client.Collection(usersCollection).Doc(rec.UID).Create(ctx, rec)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("user record for uid %s: %w", rec.UID, models.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create user record: %w", err)
	}
	return nil
}

// GetUserRecord retrieves a user record by uid
func (f *FirestoreClient) GetUserRecord(ctx context.Context, uid string) (*models.UserRecord, error) {
	doc, err := f.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user record for uid %s: %w", uid, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user record: %w", err)
	}

	var rec models.UserRecord
	if err := doc.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("failed to parse user record: %w", err)
	}

	rec.UID = doc.Ref.ID
	return &rec, nil
}

// UpdateUserResumeURL sets the archived resume URL on a user record
func (f *FirestoreClient) UpdateUserResumeURL(ctx context.Context, uid, url string) error {
	docRef := f.client.Collection(usersCollection).Doc(uid)
	_, err := docRef.Set(ctx, map[string]interface{}{
		"resumeUrl": url,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update resume URL: %w", err)
	}
	return nil
}

// CreateCredential stores a new credential keyed by normalized email
func (f *FirestoreClient) CreateCredential(ctx context.Context, cred *models.Credential) error {
	_, err := f.client.Collection(credentialsCollection).Doc(cred.Email).Create(ctx, cred)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("credential for %s: %w", cred.Email, models.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create credential: %w", err)
	}
	return nil
}

// GetCredentialByEmail retrieves a credential by normalized email
func (f *FirestoreClient) GetCredentialByEmail(ctx context.Context, email string) (*models.Credential, error) {
	doc, err := f.client.Collection(credentialsCollection).Doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("credential for %s: %w", email, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}

	var cred models.Credential
	if err := doc.DataTo(&cred); err != nil {
		return nil, fmt.Errorf("failed to parse credential: %w", err)
	}

	return &cred, nil
}

// GetCredentialByGoogleID retrieves a credential by Google ID
func (f *FirestoreClient) GetCredentialByGoogleID(ctx context.Context, googleID string) (*models.Credential, error) {
	iter := f.client.Collection(credentialsCollection).Where("googleId", "==", googleID).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("credential for google id: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query credential: %w", err)
	}

	var cred models.Credential
	if err := doc.DataTo(&cred); err != nil {
		return nil, fmt.Errorf("failed to parse credential: %w", err)
	}

	return &cred, nil
}

// LinkGoogleID attaches a Google ID to an existing credential
func (f *FirestoreClient) LinkGoogleID(ctx context.Context, email, googleID string) error {
	docRef := f.client.Collection(credentialsCollection).Doc(email)
	_, err := docRef.Set(ctx, map[string]interface{}{
		"googleId":  googleID,
		"updatedAt": time.Now(),
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to link Google ID: %w", err)
	}
	return nil
}
