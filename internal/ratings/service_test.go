package ratings

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeCache struct {
	mu      sync.Mutex
	store   map[string][]byte
	sets    int
	hits    int
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.store[key]
	if !ok {
		return errors.New("cache miss")
	}
	f.hits++
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = data
	f.sets++
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.store, key)
		f.deleted = append(f.deleted, key)
	}
	return nil
}

func intPtr(v int) *int { return &v }

func seedCompany(t *testing.T, svc *Service, user, company string, overalls ...int) {
	t.Helper()
	for _, overall := range overalls {
		if _, err := svc.Create(context.Background(), user, CreateInput{
			CompanyName: company,
			Overall:     overall,
		}); err != nil {
			t.Fatalf("Create(%s, %d): %v", company, overall, err)
		}
	}
}

func TestCreateValidatesRanges(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing company", CreateInput{Overall: 4}},
		{"overall too low", CreateInput{CompanyName: "Acme", Overall: 0}},
		{"overall too high", CreateInput{CompanyName: "Acme", Overall: 6}},
		{"interview out of range", CreateInput{CompanyName: "Acme", Overall: 4, Interview: intPtr(9)}},
		{"growth out of range", CreateInput{CompanyName: "Acme", Overall: 4, Growth: intPtr(0)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), "user-1", tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCompanyStatsMeans(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	seedCompany(t, svc, "user-1", "Acme", 5, 4, 3)

	stats, _, err := svc.Company(context.Background(), "Acme", 10, 0)
	if err != nil {
		t.Fatalf("Company: %v", err)
	}
	if stats.Count != 3 {
		t.Fatalf("count = %d, want 3", stats.Count)
	}
	if stats.AvgOverall == nil || *stats.AvgOverall != 4.0 {
		t.Fatalf("avgOverall = %v, want 4.0", stats.AvgOverall)
	}
	if stats.AvgInterview != nil {
		t.Fatal("avgInterview must be nil when no interview ratings exist")
	}
}

func TestCompanyStatsZeroCount(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	stats, rows, err := svc.Company(context.Background(), "Ghost Corp", 10, 0)
	if err != nil {
		t.Fatalf("Company: %v", err)
	}
	if stats.Count != 0 {
		t.Fatalf("count = %d, want 0", stats.Count)
	}
	if stats.AvgOverall != nil {
		t.Fatal("means must be nil for an unrated company")
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
}

func TestCompanyMatchingIsCaseSensitive(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	seedCompany(t, svc, "user-1", "Acme", 5)

	stats, _, err := svc.Company(context.Background(), "acme", 10, 0)
	if err != nil {
		t.Fatalf("Company: %v", err)
	}
	if stats.Count != 0 {
		t.Fatalf("count = %d, want 0 for different casing", stats.Count)
	}
}

func TestTopFiltersBelowThreshold(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), MinRatings: 3}
	seedCompany(t, svc, "user-1", "Qualified", 4, 4, 5)
	seedCompany(t, svc, "user-1", "Perfect But Thin", 5, 5)

	top, err := svc.Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 1 {
		t.Fatalf("top = %d entries, want 1", len(top))
	}
	if top[0].CompanyName != "Qualified" {
		t.Fatalf("top[0] = %s, want Qualified", top[0].CompanyName)
	}
}

func TestTopOrdersByAvgThenName(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), MinRatings: 3}
	seedCompany(t, svc, "user-1", "Beta", 4, 4, 4)
	seedCompany(t, svc, "user-1", "Alpha", 4, 4, 4)
	seedCompany(t, svc, "user-1", "Gamma", 5, 5, 5)

	top, err := svc.Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	want := []string{"Gamma", "Alpha", "Beta"}
	if len(top) != len(want) {
		t.Fatalf("top = %d entries, want %d", len(top), len(want))
	}
	for i, name := range want {
		if top[i].CompanyName != name {
			t.Fatalf("top[%d] = %s, want %s", i, top[i].CompanyName, name)
		}
	}
}

func TestAnonymousRatingsHideUserInPublicView(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	if _, err := svc.Create(context.Background(), "user-1", CreateInput{
		CompanyName: "Acme",
		Overall:     4,
		Anonymous:   true,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), "user-2", CreateInput{
		CompanyName: "Acme",
		Overall:     3,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, rows, err := svc.Company(context.Background(), "Acme", 10, 0)
	if err != nil {
		t.Fatalf("Company: %v", err)
	}
	for _, rating := range rows {
		if rating.Anonymous && rating.UserID != "" {
			t.Fatalf("anonymous rating leaked user id %q", rating.UserID)
		}
		if !rating.Anonymous && rating.UserID == "" {
			t.Fatal("public rating lost its user id")
		}
	}

	mine, err := svc.Mine(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("Mine: %v", err)
	}
	if len(mine) != 1 || mine[0].UserID != "user-1" {
		t.Fatalf("mine = %+v, want own rating with user id intact", mine)
	}
}

func TestCreateInvalidatesCachedStats(t *testing.T) {
	cache := newFakeCache()
	svc := &Service{Repo: NewMemoryRepo(), Cache: cache, MinRatings: 1}
	seedCompany(t, svc, "user-1", "Acme", 3)

	// Prime the cache.
	stats, _, err := svc.Company(context.Background(), "Acme", 10, 0)
	if err != nil {
		t.Fatalf("Company: %v", err)
	}
	if stats.Count != 1 {
		t.Fatalf("count = %d, want 1", stats.Count)
	}
	if cache.sets == 0 {
		t.Fatal("expected stats to be cached")
	}

	seedCompany(t, svc, "user-2", "Acme", 5)
	invalidated := false
	for _, key := range cache.deleted {
		if strings.Contains(key, "Acme") {
			invalidated = true
		}
	}
	if !invalidated {
		t.Fatalf("create did not invalidate company stats, deleted = %v", cache.deleted)
	}

	stats, _, err = svc.Company(context.Background(), "Acme", 10, 0)
	if err != nil {
		t.Fatalf("Company after invalidate: %v", err)
	}
	if stats.Count != 2 {
		t.Fatalf("count = %d, want 2 after second rating", stats.Count)
	}
}

func TestCompanyServedFromCache(t *testing.T) {
	cache := newFakeCache()
	svc := &Service{Repo: NewMemoryRepo(), Cache: cache}
	seedCompany(t, svc, "user-1", "Acme", 4)

	if _, _, err := svc.Company(context.Background(), "Acme", 10, 0); err != nil {
		t.Fatalf("first Company: %v", err)
	}
	if _, _, err := svc.Company(context.Background(), "Acme", 10, 0); err != nil {
		t.Fatalf("second Company: %v", err)
	}
	if cache.hits == 0 {
		t.Fatal("second read should hit the cache")
	}
}
