// Package scheduler drives the periodic digest runs. It wakes on a coarse
// ticker and decides on each tick whether a daily or weekly run is owed,
// so missed ticks (restarts, clock jumps) catch up on the next wake.
package scheduler

import (
	"context"
	"time"

	"autojobber-backend/internal/shared/telemetry"
)

// Digests is the work the scheduler triggers.
type Digests interface {
	RunDaily(ctx context.Context, now time.Time) error
	RunWeekly(ctx context.Context, now time.Time) error
}

// Runner fires the daily digest once per day after DailyHour (UTC) and the
// weekly digest once per week on WeeklyDay after the same hour.
type Runner struct {
	Digester Digests
	// Interval is the wake-up granularity. Defaults to 15 minutes.
	Interval time.Duration
	// DailyHour is the earliest UTC hour for digest runs. Defaults to 8.
	DailyHour int
	// WeeklyDay is the weekday for the weekly summary. Defaults to Monday.
	WeeklyDay time.Weekday

	lastDaily  time.Time
	lastWeekly time.Time
}

// Start blocks until ctx is cancelled.
func (r *Runner) Start(ctx context.Context) {
	interval := r.Interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	telemetry.Info("scheduler.started", map[string]any{
		"interval": interval.String(),
	})

	r.Tick(ctx, time.Now().UTC())
	for {
		select {
		case <-ctx.Done():
			telemetry.Info("scheduler.stopped", nil)
			return
		case <-ticker.C:
			r.Tick(ctx, time.Now().UTC())
		}
	}
}

// Tick runs whatever is owed at the given time. Exported so tests can step
// the clock without a real ticker.
func (r *Runner) Tick(ctx context.Context, now time.Time) {
	if r.dailyDue(now) {
		runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		if err := r.Digester.RunDaily(runCtx, now); err != nil {
			telemetry.Error("scheduler.daily_failed", map[string]any{"error": err.Error()})
		} else {
			r.lastDaily = now
			telemetry.Info("scheduler.daily_completed", nil)
		}
		cancel()
	}

	if r.weeklyDue(now) {
		runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		if err := r.Digester.RunWeekly(runCtx, now); err != nil {
			telemetry.Error("scheduler.weekly_failed", map[string]any{"error": err.Error()})
		} else {
			r.lastWeekly = now
			telemetry.Info("scheduler.weekly_completed", nil)
		}
		cancel()
	}
}

func (r *Runner) dailyDue(now time.Time) bool {
	if now.Hour() < r.dailyHour() {
		return false
	}
	return !sameDay(r.lastDaily, now)
}

func (r *Runner) weeklyDue(now time.Time) bool {
	if now.Weekday() != r.weeklyDay() || now.Hour() < r.dailyHour() {
		return false
	}
	return r.lastWeekly.IsZero() || now.Sub(r.lastWeekly) > 24*time.Hour
}

func (r *Runner) dailyHour() int {
	if r.DailyHour > 0 && r.DailyHour < 24 {
		return r.DailyHour
	}
	return 8
}

func (r *Runner) weeklyDay() time.Weekday {
	if r.WeeklyDay != 0 {
		return r.WeeklyDay
	}
	return time.Monday
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
