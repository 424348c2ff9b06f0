package applications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"autojobber-backend/internal/matching"
	"autojobber-backend/internal/parser"
	"autojobber-backend/internal/preferences"
	"autojobber-backend/internal/resumes"
	"autojobber-backend/internal/shared/telemetry"
)

// ResumeSource provides the active resume for match scoring.
type ResumeSource interface {
	GetActive(ctx context.Context, userID string) (resumes.Resume, error)
}

// PreferenceSource provides the active preference for match scoring.
type PreferenceSource interface {
	GetActive(ctx context.Context, userID string) (preferences.Preference, error)
}

// Service contains business logic for job applications.
type Service struct {
	Repo Repo
	// Resumes and Prefs feed the match scorer. Either may be nil; scoring
	// is skipped when no profile data is available.
	Resumes ResumeSource
	Prefs   PreferenceSource
}

// CreateInput holds the fields accepted when creating an application.
type CreateInput struct {
	JobTitle        string
	Company         string
	ApplicationDate time.Time
	Status          string
	FollowUpDate    *time.Time
	Notes           string
	MatchScore      *float64
}

// UpdateInput is a partial patch for an application.
type UpdateInput struct {
	JobTitle        *string
	Company         *string
	ApplicationDate *time.Time
	Status          *string
	FollowUpDate    *time.Time
	ClearFollowUp   bool
	Notes           *string
	Feedback        *string
	MatchScore      *float64
}

// Create validates and stores an application. When no match score is given,
// one is computed from the user's active resume and preference.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Application, error) {
	jobTitle := strings.TrimSpace(in.JobTitle)
	company := strings.TrimSpace(in.Company)
	if jobTitle == "" {
		return Application{}, fmt.Errorf("%w: job title is required", ErrInvalidInput)
	}
	if company == "" {
		return Application{}, fmt.Errorf("%w: company is required", ErrInvalidInput)
	}

	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status == "" {
		status = "applied"
	}
	if !Statuses[status] {
		return Application{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if in.MatchScore != nil && (*in.MatchScore < 0 || *in.MatchScore > 100) {
		return Application{}, fmt.Errorf("%w: matchScore must be between 0 and 100", ErrInvalidInput)
	}

	applicationDate := in.ApplicationDate
	if applicationDate.IsZero() {
		applicationDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	now := time.Now().UTC()
	app := Application{
		ID:              uuid.NewString(),
		UserID:          userID,
		JobTitle:        jobTitle,
		Company:         company,
		ApplicationDate: applicationDate,
		Status:          status,
		FollowUpDate:    in.FollowUpDate,
		Notes:           strings.TrimSpace(in.Notes),
		MatchScore:      in.MatchScore,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if app.MatchScore == nil {
		app.MatchScore = s.computeMatchScore(ctx, userID, app)
	}

	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// Get returns one application.
func (s *Service) Get(ctx context.Context, userID, appID string) (Application, error) {
	return s.Repo.GetByID(ctx, userID, appID)
}

// List returns the user's applications, optionally filtered by status.
func (s *Service) List(ctx context.Context, userID, status string, limit, offset int) ([]Application, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" && !Statuses[status] {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	return s.Repo.ListByUser(ctx, userID, status, limit, offset)
}

// Update applies a partial patch to an application.
func (s *Service) Update(ctx context.Context, userID, appID string, in UpdateInput) (Application, error) {
	app, err := s.Repo.GetByID(ctx, userID, appID)
	if err != nil {
		return Application{}, err
	}

	if in.JobTitle != nil {
		app.JobTitle = strings.TrimSpace(*in.JobTitle)
		if app.JobTitle == "" {
			return Application{}, fmt.Errorf("%w: job title is required", ErrInvalidInput)
		}
	}
	if in.Company != nil {
		app.Company = strings.TrimSpace(*in.Company)
		if app.Company == "" {
			return Application{}, fmt.Errorf("%w: company is required", ErrInvalidInput)
		}
	}
	if in.ApplicationDate != nil {
		app.ApplicationDate = *in.ApplicationDate
	}
	if in.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*in.Status))
		if !Statuses[status] {
			return Application{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
		}
		app.Status = status
	}
	if in.ClearFollowUp {
		app.FollowUpDate = nil
	} else if in.FollowUpDate != nil {
		app.FollowUpDate = in.FollowUpDate
	}
	if in.Notes != nil {
		app.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Feedback != nil {
		app.Feedback = strings.TrimSpace(*in.Feedback)
	}
	if in.MatchScore != nil {
		if *in.MatchScore < 0 || *in.MatchScore > 100 {
			return Application{}, fmt.Errorf("%w: matchScore must be between 0 and 100", ErrInvalidInput)
		}
		app.MatchScore = in.MatchScore
	}
	app.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// Delete removes an application.
func (s *Service) Delete(ctx context.Context, userID, appID string) error {
	return s.Repo.Delete(ctx, userID, appID)
}

// computeMatchScore scores the job against the user's active resume skills
// and preference keywords. Returns nil when there is no profile to score
// against, so an absent profile is distinguishable from a zero match.
func (s *Service) computeMatchScore(ctx context.Context, userID string, app Application) *float64 {
	var terms []string

	if s.Prefs != nil {
		pref, err := s.Prefs.GetActive(ctx, userID)
		switch {
		case err == nil:
			terms = append(terms, pref.Keywords...)
			if pref.Title != "" {
				terms = append(terms, pref.Title)
			}
		case !errors.Is(err, preferences.ErrNotFound):
			telemetry.Warn("applications.match_pref_lookup_failed", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}

	if s.Resumes != nil {
		resume, err := s.Resumes.GetActive(ctx, userID)
		switch {
		case err == nil:
			var parsed parser.ParsedResume
			if jsonErr := json.Unmarshal(resume.ParsedData, &parsed); jsonErr == nil {
				for _, skill := range parsed.Skills {
					terms = append(terms, skill.Name)
				}
			}
		case !errors.Is(err, resumes.ErrNotFound):
			telemetry.Warn("applications.match_resume_lookup_failed", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}

	if len(terms) == 0 {
		return nil
	}
	jobText := app.JobTitle + " " + app.Company + " " + app.Notes
	score := matching.Score(terms, jobText)
	return &score
}
