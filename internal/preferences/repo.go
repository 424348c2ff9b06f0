package preferences

import "context"

// Repo abstracts preference persistence.
type Repo interface {
	// CreateActive inserts pref as the user's active preference,
	// deactivating any prior active version in the same transaction.
	CreateActive(ctx context.Context, pref Preference) error
	// InsertVersion appends next as the new active version, deactivating
	// the row identified by oldID. Fails with ErrNotFound if oldID does
	// not belong to next.UserID.
	InsertVersion(ctx context.Context, oldID string, next Preference) error
	GetByID(ctx context.Context, userID, prefID string) (Preference, error)
	GetActive(ctx context.Context, userID string) (Preference, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Preference, error)
	// Activate makes prefID the user's only active version.
	Activate(ctx context.Context, userID, prefID string) error
}
