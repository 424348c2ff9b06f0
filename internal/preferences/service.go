package preferences

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for job preferences.
type Service struct {
	Repo Repo
}

// CreateInput holds the fields accepted when creating a preference.
type CreateInput struct {
	Title       string
	Industry    string
	Location    string
	WorkMode    string
	MinSalary   *int64
	MaxSalary   *int64
	CompanySize string
	Keywords    []string
}

// UpdateInput is a partial patch. Nil fields are kept from the previous
// version; set fields replace it.
type UpdateInput struct {
	Title       *string
	Industry    *string
	Location    *string
	WorkMode    *string
	MinSalary   *int64
	MaxSalary   *int64
	CompanySize *string
	Keywords    []string
}

// Create stores a new preference as the user's active one.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Preference, error) {
	pref := Preference{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Industry:    strings.TrimSpace(in.Industry),
		Location:    strings.TrimSpace(in.Location),
		WorkMode:    normalizeEnum(in.WorkMode),
		MinSalary:   in.MinSalary,
		MaxSalary:   in.MaxSalary,
		CompanySize: normalizeEnum(in.CompanySize),
		Keywords:    cleanKeywords(in.Keywords),
		IsActive:    true,
	}
	now := time.Now().UTC()
	pref.CreatedAt = now
	pref.UpdatedAt = now

	if err := validate(pref); err != nil {
		return Preference{}, err
	}
	if err := s.Repo.CreateActive(ctx, pref); err != nil {
		return Preference{}, err
	}
	return pref, nil
}

// Update appends a new version derived from prefID with the patch applied,
// and makes it the active one. An empty patch still produces a new version.
func (s *Service) Update(ctx context.Context, userID, prefID string, in UpdateInput) (Preference, error) {
	old, err := s.Repo.GetByID(ctx, userID, prefID)
	if err != nil {
		return Preference{}, err
	}

	next := old
	next.ID = uuid.NewString()
	now := time.Now().UTC()
	next.CreatedAt = now
	next.UpdatedAt = now
	next.IsActive = true

	if in.Title != nil {
		next.Title = strings.TrimSpace(*in.Title)
	}
	if in.Industry != nil {
		next.Industry = strings.TrimSpace(*in.Industry)
	}
	if in.Location != nil {
		next.Location = strings.TrimSpace(*in.Location)
	}
	if in.WorkMode != nil {
		next.WorkMode = normalizeEnum(*in.WorkMode)
	}
	if in.MinSalary != nil {
		next.MinSalary = in.MinSalary
	}
	if in.MaxSalary != nil {
		next.MaxSalary = in.MaxSalary
	}
	if in.CompanySize != nil {
		next.CompanySize = normalizeEnum(*in.CompanySize)
	}
	if in.Keywords != nil {
		next.Keywords = cleanKeywords(in.Keywords)
	}

	if err := validate(next); err != nil {
		return Preference{}, err
	}
	if err := s.Repo.InsertVersion(ctx, old.ID, next); err != nil {
		return Preference{}, err
	}
	return next, nil
}

// Active returns the user's active preference.
func (s *Service) Active(ctx context.Context, userID string) (Preference, error) {
	return s.Repo.GetActive(ctx, userID)
}

// History returns the preference versions, newest first.
func (s *Service) History(ctx context.Context, userID string, limit, offset int) ([]Preference, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Activate makes prefID the user's only active preference version.
func (s *Service) Activate(ctx context.Context, userID, prefID string) error {
	return s.Repo.Activate(ctx, userID, prefID)
}

func validate(pref Preference) error {
	if pref.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if pref.WorkMode != "" && !WorkModes[pref.WorkMode] {
		return fmt.Errorf("%w: unknown work mode %q", ErrInvalidInput, pref.WorkMode)
	}
	if pref.CompanySize != "" && !CompanySizes[pref.CompanySize] {
		return fmt.Errorf("%w: unknown company size %q", ErrInvalidInput, pref.CompanySize)
	}
	if pref.MinSalary != nil && *pref.MinSalary < 0 {
		return fmt.Errorf("%w: minSalary must be non-negative", ErrInvalidInput)
	}
	if pref.MaxSalary != nil && *pref.MaxSalary < 0 {
		return fmt.Errorf("%w: maxSalary must be non-negative", ErrInvalidInput)
	}
	if pref.MinSalary != nil && pref.MaxSalary != nil && *pref.MinSalary > *pref.MaxSalary {
		return fmt.Errorf("%w: minSalary exceeds maxSalary", ErrInvalidInput)
	}
	return nil
}

func normalizeEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cleanKeywords(kw []string) []string {
	out := make([]string, 0, len(kw))
	seen := make(map[string]bool, len(kw))
	for _, k := range kw {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		lower := strings.ToLower(k)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		out = append(out, k)
	}
	return out
}
