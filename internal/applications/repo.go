package applications

import (
	"context"
	"time"
)

// Repo abstracts application persistence.
type Repo interface {
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, userID, appID string) (Application, error)
	// ListByUser returns applications newest-first by application date.
	// An empty status lists all.
	ListByUser(ctx context.Context, userID, status string, limit, offset int) ([]Application, error)
	Update(ctx context.Context, app Application) error
	Delete(ctx context.Context, userID, appID string) error

	// DueFollowUps returns applications across all users whose follow-up
	// date is on or before asOf. Used by the digest worker.
	DueFollowUps(ctx context.Context, asOf time.Time) ([]Application, error)
	// StatusCountsSince returns per-user status counts for applications
	// created since the given time. Used by the weekly summary.
	StatusCountsSince(ctx context.Context, since time.Time) (map[string]map[string]int, error)
}
