package resumes

import "context"

// Repo defines persistence operations for resumes. Implementations must keep
// the single-active invariant: CreateActive and Activate atomically
// deactivate any previously active row for the same user.
type Repo interface {
	CreateActive(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	GetActive(ctx context.Context, userID string) (Resume, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error)
	Activate(ctx context.Context, userID, resumeID string) error
	Delete(ctx context.Context, userID, resumeID string) error
}
