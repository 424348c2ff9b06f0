package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Service contains business logic for user profiles.
type Service struct {
	Repo Repo
}

// Get returns the user's profile, provisioning a row from the token claims
// on first sight.
func (s *Service) Get(ctx context.Context, userID, email, name string) (User, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	now := time.Now().UTC()
	user = User{
		ID:        userID,
		Email:     strings.TrimSpace(email),
		FullName:  strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Update changes the mutable profile fields.
func (s *Service) Update(ctx context.Context, userID, email, fullName string) (User, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return User{}, fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}

	user, err := s.Get(ctx, userID, email, fullName)
	if err != nil {
		return User{}, err
	}
	user.FullName = fullName
	user.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Recipients returns users eligible for email digests.
func (s *Service) Recipients(ctx context.Context) ([]User, error) {
	return s.Repo.ListWithEmail(ctx)
}
