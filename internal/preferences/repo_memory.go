package preferences

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Preference // userID -> versions
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Preference),
	}
}

// CreateActive stores a new active preference, deactivating prior versions.
func (r *MemoryRepo) CreateActive(ctx context.Context, pref Preference) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.data[pref.UserID]
	for i := range list {
		list[i].IsActive = false
	}
	pref.IsActive = true
	r.data[pref.UserID] = append(list, pref)
	return nil
}

// InsertVersion appends next as the new active version after verifying oldID
// belongs to the user.
func (r *MemoryRepo) InsertVersion(ctx context.Context, oldID string, next Preference) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.data[next.UserID]
	found := false
	for i := range list {
		if list[i].ID == oldID {
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	for i := range list {
		list[i].IsActive = false
	}
	next.IsActive = true
	r.data[next.UserID] = append(list, next)
	return nil
}

// GetByID returns a preference version by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, prefID string) (Preference, error) {
	if err := ctx.Err(); err != nil {
		return Preference{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, pref := range r.data[userID] {
		if pref.ID == prefID {
			return pref, nil
		}
	}
	return Preference{}, ErrNotFound
}

// GetActive returns the active preference for a user.
func (r *MemoryRepo) GetActive(ctx context.Context, userID string) (Preference, error) {
	if err := ctx.Err(); err != nil {
		return Preference{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, pref := range r.data[userID] {
		if pref.IsActive {
			return pref, nil
		}
	}
	return Preference{}, ErrNotFound
}

// ListByUser returns versions newest-first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Preference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}

	r.mu.RLock()
	list := r.data[userID]
	r.mu.RUnlock()

	if len(list) == 0 || offset >= len(list) {
		return []Preference{}, nil
	}

	out := make([]Preference, len(list))
	copy(out, list)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	end := len(out)
	if offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// Activate makes prefID the only active version for the user.
func (r *MemoryRepo) Activate(ctx context.Context, userID, prefID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.data[userID]
	found := false
	for i := range list {
		if list[i].ID == prefID {
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	for i := range list {
		list[i].IsActive = list[i].ID == prefID
	}
	r.data[userID] = list
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
