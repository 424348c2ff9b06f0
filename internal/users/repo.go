package users

import "context"

// Repo abstracts user persistence.
type Repo interface {
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	// ListWithEmail returns users that have an email address on file.
	// Used by the digest worker to resolve recipients.
	ListWithEmail(ctx context.Context) ([]User, error)
}
