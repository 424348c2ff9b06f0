package ratings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"autojobber-backend/internal/shared/telemetry"
)

const (
	statsCacheTTL  = time.Minute
	topCacheKey    = "ratings:top"
	statsKeyPrefix = "ratings:stats:"
)

// StatsCache caches read-time aggregates. Satisfied by the redis-backed
// cache; a nil Service.Cache disables caching entirely.
type StatsCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Service contains business logic for company ratings.
type Service struct {
	Repo Repo
	// Cache is optional. Only aggregates are cached, never rows.
	Cache StatsCache
	// MinRatings is the threshold a company must meet to appear in the
	// top-rated report.
	MinRatings int
}

// CreateInput holds the fields accepted when creating a rating.
type CreateInput struct {
	CompanyName      string
	JobApplicationID *string
	Overall          int
	Interview        *int
	WorkLife         *int
	Compensation     *int
	Growth           *int
	Review           string
	Pros             string
	Cons             string
	Anonymous        bool
}

// Create validates and stores a rating, then invalidates cached aggregates
// for the company.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Rating, error) {
	companyName := strings.TrimSpace(in.CompanyName)
	if companyName == "" {
		return Rating{}, fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}
	if err := checkRange("overallRating", &in.Overall); err != nil {
		return Rating{}, err
	}
	for _, dim := range []struct {
		name string
		val  *int
	}{
		{"interviewRating", in.Interview},
		{"workLifeRating", in.WorkLife},
		{"compensationRating", in.Compensation},
		{"growthRating", in.Growth},
	} {
		if err := checkRange(dim.name, dim.val); err != nil {
			return Rating{}, err
		}
	}

	rating := Rating{
		ID:               uuid.NewString(),
		UserID:           userID,
		JobApplicationID: in.JobApplicationID,
		CompanyName:      companyName,
		Overall:          in.Overall,
		Interview:        in.Interview,
		WorkLife:         in.WorkLife,
		Compensation:     in.Compensation,
		Growth:           in.Growth,
		Review:           strings.TrimSpace(in.Review),
		Pros:             strings.TrimSpace(in.Pros),
		Cons:             strings.TrimSpace(in.Cons),
		Anonymous:        in.Anonymous,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, rating); err != nil {
		return Rating{}, err
	}
	s.invalidate(ctx, companyName)
	return rating, nil
}

// Mine returns the caller's own ratings with user IDs intact.
func (s *Service) Mine(ctx context.Context, userID string, limit, offset int) ([]Rating, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Company returns stats plus the public rating listing for an exact,
// case-sensitive company name. Anonymous rows come back with UserID
// cleared for every caller, including the author.
func (s *Service) Company(ctx context.Context, companyName string, limit, offset int) (CompanyStats, []Rating, error) {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return CompanyStats{}, nil, fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}

	stats, err := s.stats(ctx, companyName)
	if err != nil {
		return CompanyStats{}, nil, err
	}
	rows, err := s.Repo.ListByCompany(ctx, companyName, limit, offset)
	if err != nil {
		return CompanyStats{}, nil, err
	}
	for i := range rows {
		if rows[i].Anonymous {
			rows[i].UserID = ""
		}
	}
	return stats, rows, nil
}

// Top returns the top-rated companies. Companies below the MinRatings
// threshold never appear regardless of their average.
func (s *Service) Top(ctx context.Context, limit int) ([]TopCompany, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	key := fmt.Sprintf("%s:%d", topCacheKey, limit)
	if s.Cache != nil {
		var cached []TopCompany
		if err := s.Cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}
	top, err := s.Repo.Top(ctx, limit, s.minRatings())
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, top, statsCacheTTL); err != nil {
			telemetry.Warn("ratings.cache_set_failed", map[string]any{"key": key, "error": err.Error()})
		}
	}
	return top, nil
}

func (s *Service) stats(ctx context.Context, companyName string) (CompanyStats, error) {
	key := statsKeyPrefix + companyName
	if s.Cache != nil {
		var cached CompanyStats
		if err := s.Cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}
	stats, err := s.Repo.Stats(ctx, companyName)
	if err != nil {
		return CompanyStats{}, err
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, stats, statsCacheTTL); err != nil {
			telemetry.Warn("ratings.cache_set_failed", map[string]any{"key": key, "error": err.Error()})
		}
	}
	return stats, nil
}

func (s *Service) invalidate(ctx context.Context, companyName string) {
	if s.Cache == nil {
		return
	}
	keys := []string{statsKeyPrefix + companyName}
	for _, limit := range []int{10, 20, 50, 100} {
		keys = append(keys, fmt.Sprintf("%s:%d", topCacheKey, limit))
	}
	if err := s.Cache.Delete(ctx, keys...); err != nil {
		telemetry.Warn("ratings.cache_invalidate_failed", map[string]any{
			"company": companyName,
			"error":   err.Error(),
		})
	}
}

func (s *Service) minRatings() int {
	if s.MinRatings <= 0 {
		return 3
	}
	return s.MinRatings
}

func checkRange(name string, v *int) error {
	if v == nil {
		return nil
	}
	if *v < 1 || *v > 5 {
		return fmt.Errorf("%w: %s must be between 1 and 5", ErrInvalidInput, name)
	}
	return nil
}
