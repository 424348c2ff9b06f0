package applications

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Application // userID -> applications
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Application),
	}
}

// Create stores an application.
func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[app.UserID] = append(r.data[app.UserID], app)
	return nil
}

// GetByID returns an application by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, appID string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, app := range r.data[userID] {
		if app.ID == appID {
			return app, nil
		}
	}
	return Application{}, ErrNotFound
}

// ListByUser lists applications, optionally filtered by status.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID, status string, limit, offset int) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	var matched []Application
	for _, app := range r.data[userID] {
		if status == "" || app.Status == status {
			matched = append(matched, app)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].ApplicationDate.Equal(matched[j].ApplicationDate) {
			return matched[i].ApplicationDate.After(matched[j].ApplicationDate)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if offset >= len(matched) {
		return []Application{}, nil
	}
	end := len(matched)
	if offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], nil
}

// Update replaces an application row.
func (r *MemoryRepo) Update(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.data[app.UserID]
	for i := range list {
		if list[i].ID == app.ID {
			list[i] = app
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes an application row.
func (r *MemoryRepo) Delete(ctx context.Context, userID, appID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.data[userID]
	for i := range list {
		if list[i].ID == appID {
			r.data[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// DueFollowUps returns applications with a follow-up date on or before asOf.
func (r *MemoryRepo) DueFollowUps(ctx context.Context, asOf time.Time) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Application
	for _, list := range r.data {
		for _, app := range list {
			if app.FollowUpDate != nil && !app.FollowUpDate.After(asOf) {
				out = append(out, app)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].FollowUpDate.Before(*out[j].FollowUpDate)
	})
	return out, nil
}

// StatusCountsSince returns per-user status counts for recent applications.
func (r *MemoryRepo) StatusCountsSince(ctx context.Context, since time.Time) (map[string]map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]map[string]int)
	for userID, list := range r.data {
		for _, app := range list {
			if app.CreatedAt.Before(since) {
				continue
			}
			if out[userID] == nil {
				out[userID] = make(map[string]int)
			}
			out[userID][app.Status]++
		}
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
