package scheduler

import (
	"context"
	"testing"
	"time"
)

type countingDigests struct {
	daily  int
	weekly int
}

func (c *countingDigests) RunDaily(ctx context.Context, now time.Time) error {
	c.daily++
	return nil
}

func (c *countingDigests) RunWeekly(ctx context.Context, now time.Time) error {
	c.weekly++
	return nil
}

func TestDailyRunsOncePerDay(t *testing.T) {
	digests := &countingDigests{}
	r := &Runner{Digester: digests, DailyHour: 8}

	// Tuesday, so the weekly run stays quiet.
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	r.Tick(context.Background(), day.Add(6*time.Hour))  // before the hour
	r.Tick(context.Background(), day.Add(8*time.Hour))  // fires
	r.Tick(context.Background(), day.Add(9*time.Hour))  // already ran today
	r.Tick(context.Background(), day.Add(23*time.Hour)) // still today

	if digests.daily != 1 {
		t.Fatalf("daily runs = %d, want 1", digests.daily)
	}

	r.Tick(context.Background(), day.AddDate(0, 0, 1).Add(8*time.Hour))
	if digests.daily != 2 {
		t.Fatalf("daily runs = %d, want 2 after next day", digests.daily)
	}
	if digests.weekly != 0 {
		t.Fatalf("weekly runs = %d, want 0 on a Tuesday", digests.weekly)
	}
}

func TestWeeklyRunsOnConfiguredDay(t *testing.T) {
	digests := &countingDigests{}
	r := &Runner{Digester: digests, DailyHour: 8, WeeklyDay: time.Monday}

	monday := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	if monday.Weekday() != time.Monday {
		t.Fatalf("fixture is %s, want Monday", monday.Weekday())
	}

	r.Tick(context.Background(), monday)
	r.Tick(context.Background(), monday.Add(2*time.Hour))
	if digests.weekly != 1 {
		t.Fatalf("weekly runs = %d, want 1", digests.weekly)
	}

	r.Tick(context.Background(), monday.AddDate(0, 0, 7))
	if digests.weekly != 2 {
		t.Fatalf("weekly runs = %d, want 2 after a week", digests.weekly)
	}
}
