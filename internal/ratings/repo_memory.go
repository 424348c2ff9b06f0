package ratings

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	rows []Rating
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create stores a rating.
func (r *MemoryRepo) Create(ctx context.Context, rating Rating) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, rating)
	return nil
}

// ListByUser returns the user's ratings, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []Rating
	for _, rating := range r.rows {
		if rating.UserID == userID {
			matched = append(matched, rating)
		}
	}
	return page(matched, limit, offset), nil
}

// ListByCompany returns ratings for an exact company name, newest first.
func (r *MemoryRepo) ListByCompany(ctx context.Context, companyName string, limit, offset int) ([]Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []Rating
	for _, rating := range r.rows {
		if rating.CompanyName == companyName {
			matched = append(matched, rating)
		}
	}
	return page(matched, limit, offset), nil
}

// Stats aggregates ratings for one company.
func (r *MemoryRepo) Stats(ctx context.Context, companyName string) (CompanyStats, error) {
	if err := ctx.Err(); err != nil {
		return CompanyStats{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := CompanyStats{CompanyName: companyName}
	var overall mean
	var interview, workLife, compensation, growth mean
	for _, rating := range r.rows {
		if rating.CompanyName != companyName {
			continue
		}
		stats.Count++
		overall.add(float64(rating.Overall))
		interview.addInt(rating.Interview)
		workLife.addInt(rating.WorkLife)
		compensation.addInt(rating.Compensation)
		growth.addInt(rating.Growth)
	}
	stats.AvgOverall = overall.value()
	stats.AvgInterview = interview.value()
	stats.AvgWorkLife = workLife.value()
	stats.AvgCompensation = compensation.value()
	stats.AvgGrowth = growth.value()
	return stats, nil
}

// Top returns the best-rated companies with enough ratings to qualify.
func (r *MemoryRepo) Top(ctx context.Context, limit, minRatings int) ([]TopCompany, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	byCompany := make(map[string]*mean)
	for _, rating := range r.rows {
		m, ok := byCompany[rating.CompanyName]
		if !ok {
			m = &mean{}
			byCompany[rating.CompanyName] = m
		}
		m.add(float64(rating.Overall))
	}

	var out []TopCompany
	for name, m := range byCompany {
		if m.count < minRatings {
			continue
		}
		avg := m.value()
		out = append(out, TopCompany{CompanyName: name, Count: m.count, AvgOverall: *avg})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgOverall != out[j].AvgOverall {
			return out[i].AvgOverall > out[j].AvgOverall
		}
		return out[i].CompanyName < out[j].CompanyName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.count++
}

func (m *mean) addInt(v *int) {
	if v != nil {
		m.add(float64(*v))
	}
}

func (m *mean) value() *float64 {
	if m.count == 0 {
		return nil
	}
	avg := m.sum / float64(m.count)
	return &avg
}

func page(rows []Rating, limit, offset int) []Rating {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	out := make([]Rating, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return []Rating{}
	}
	end := len(out)
	if offset+limit < end {
		end = offset + limit
	}
	return out[offset:end]
}

var _ Repo = (*MemoryRepo)(nil)
