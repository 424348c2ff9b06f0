package applications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"autojobber-backend/internal/parser"
	"autojobber-backend/internal/preferences"
	"autojobber-backend/internal/resumes"
)

type stubResumes struct {
	resume resumes.Resume
	err    error
}

func (s *stubResumes) GetActive(ctx context.Context, userID string) (resumes.Resume, error) {
	if s.err != nil {
		return resumes.Resume{}, s.err
	}
	return s.resume, nil
}

type stubPrefs struct {
	pref preferences.Preference
	err  error
}

func (s *stubPrefs) GetActive(ctx context.Context, userID string) (preferences.Preference, error) {
	if s.err != nil {
		return preferences.Preference{}, s.err
	}
	return s.pref, nil
}

func resumeWithSkills(t *testing.T, skills ...string) resumes.Resume {
	t.Helper()
	parsed := parser.ParsedResume{}
	for _, name := range skills {
		parsed.Skills = append(parsed.Skills, parser.Skill{Name: name})
	}
	data, err := json.Marshal(parsed)
	if err != nil {
		t.Fatalf("marshal parsed resume: %v", err)
	}
	return resumes.Resume{ID: "resume-1", UserID: "user-1", ParsedData: data, IsActive: true}
}

func TestCreateFillsMatchScoreFromProfile(t *testing.T) {
	svc := &Service{
		Repo:    NewMemoryRepo(),
		Resumes: &stubResumes{resume: resumeWithSkills(t, "Go", "PostgreSQL")},
		Prefs:   &stubPrefs{err: preferences.ErrNotFound},
	}

	app, err := svc.Create(context.Background(), "user-1", CreateInput{
		JobTitle: "Go Engineer",
		Company:  "Acme",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if app.MatchScore == nil {
		t.Fatal("expected match score to be computed")
	}
	if *app.MatchScore != 50 {
		t.Fatalf("matchScore = %v, want 50 (one of two skills)", *app.MatchScore)
	}
}

func TestCreateKeepsExplicitMatchScore(t *testing.T) {
	svc := &Service{
		Repo:    NewMemoryRepo(),
		Resumes: &stubResumes{resume: resumeWithSkills(t, "Go")},
	}

	score := 12.5
	app, err := svc.Create(context.Background(), "user-1", CreateInput{
		JobTitle:   "Go Engineer",
		Company:    "Acme",
		MatchScore: &score,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if app.MatchScore == nil || *app.MatchScore != 12.5 {
		t.Fatalf("matchScore = %v, want the explicit 12.5", app.MatchScore)
	}
}

func TestCreateNilScoreWithoutProfile(t *testing.T) {
	svc := &Service{
		Repo:    NewMemoryRepo(),
		Resumes: &stubResumes{err: resumes.ErrNotFound},
		Prefs:   &stubPrefs{err: preferences.ErrNotFound},
	}

	app, err := svc.Create(context.Background(), "user-1", CreateInput{
		JobTitle: "Go Engineer",
		Company:  "Acme",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if app.MatchScore != nil {
		t.Fatalf("matchScore = %v, want nil without a profile", *app.MatchScore)
	}
}

func TestCreateValidatesStatus(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	_, err := svc.Create(context.Background(), "user-1", CreateInput{
		JobTitle: "Dev",
		Company:  "Acme",
		Status:   "daydreaming",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestCreateDefaultsStatusApplied(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	app, err := svc.Create(context.Background(), "user-1", CreateInput{
		JobTitle: "Dev",
		Company:  "Acme",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if app.Status != "applied" {
		t.Fatalf("status = %q, want applied", app.Status)
	}
}

func TestUpdatePatchesFields(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	app, err := svc.Create(context.Background(), "user-1", CreateInput{
		JobTitle: "Dev",
		Company:  "Acme",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	status := "interview"
	feedback := "phone screen went well"
	updated, err := svc.Update(context.Background(), "user-1", app.ID, UpdateInput{
		Status:   &status,
		Feedback: &feedback,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != "interview" {
		t.Fatalf("status = %q", updated.Status)
	}
	if updated.Feedback != feedback {
		t.Fatalf("feedback = %q", updated.Feedback)
	}
	if updated.Company != "Acme" {
		t.Fatalf("company = %q, want unchanged", updated.Company)
	}
}

func TestUpdateClearsFollowUp(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	followUp := time.Now().UTC().Add(48 * time.Hour)
	app, err := svc.Create(context.Background(), "user-1", CreateInput{
		JobTitle:     "Dev",
		Company:      "Acme",
		FollowUpDate: &followUp,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(context.Background(), "user-1", app.ID, UpdateInput{ClearFollowUp: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FollowUpDate != nil {
		t.Fatal("follow-up date should be cleared")
	}
}

func TestListFiltersByStatus(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	for _, status := range []string{"applied", "interview", "applied"} {
		if _, err := svc.Create(context.Background(), "user-1", CreateInput{
			JobTitle: "Dev",
			Company:  "Acme",
			Status:   status,
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	applied, err := svc.List(context.Background(), "user-1", "applied", 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(applied) != 2 {
		t.Fatalf("applied = %d, want 2", len(applied))
	}

	if _, err := svc.List(context.Background(), "user-1", "nonsense", 10, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput for unknown status filter", err)
	}
}

func TestGetForeignApplicationNotFound(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	app, err := svc.Create(context.Background(), "owner", CreateInput{
		JobTitle: "Dev",
		Company:  "Acme",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Get(context.Background(), "intruder", app.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
