package notify

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"autojobber-backend/internal/applications"
	"autojobber-backend/internal/shared/metrics"
	"autojobber-backend/internal/shared/telemetry"
	"autojobber-backend/internal/users"
)

// ApplicationSource provides the application data the digests read.
type ApplicationSource interface {
	DueFollowUps(ctx context.Context, asOf time.Time) ([]applications.Application, error)
	StatusCountsSince(ctx context.Context, since time.Time) (map[string]map[string]int, error)
}

// RecipientSource resolves digest recipients.
type RecipientSource interface {
	Recipients(ctx context.Context) ([]users.User, error)
}

// Digester assembles and sends the daily and weekly email digests. Both
// runs are pure read-and-notify: they never mutate application state.
type Digester struct {
	Apps   ApplicationSource
	Users  RecipientSource
	Sender EmailSender
}

// RunDaily emails each user their follow-ups due on or before now. Users
// with nothing due get no mail.
func (d *Digester) RunDaily(ctx context.Context, now time.Time) error {
	due, err := d.Apps.DueFollowUps(ctx, now)
	if err != nil {
		return fmt.Errorf("load due follow-ups: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	byUser := make(map[string][]applications.Application)
	for _, app := range due {
		byUser[app.UserID] = append(byUser[app.UserID], app)
	}

	recipients, err := d.recipients(ctx)
	if err != nil {
		return err
	}

	for userID, apps := range byUser {
		user, ok := recipients[userID]
		if !ok {
			continue
		}
		body := buildFollowUpBody(user.FullName, apps, now)
		d.send(ctx, user, "Follow-ups due today", body)
	}
	return nil
}

// RunWeekly emails each user a summary of their applications from the
// trailing seven days.
func (d *Digester) RunWeekly(ctx context.Context, now time.Time) error {
	counts, err := d.Apps.StatusCountsSince(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		return fmt.Errorf("load weekly counts: %w", err)
	}
	if len(counts) == 0 {
		return nil
	}

	recipients, err := d.recipients(ctx)
	if err != nil {
		return err
	}

	for userID, statusCounts := range counts {
		user, ok := recipients[userID]
		if !ok {
			continue
		}
		body := buildWeeklyBody(user.FullName, statusCounts)
		d.send(ctx, user, "Your week in applications", body)
	}
	return nil
}

func (d *Digester) recipients(ctx context.Context) (map[string]users.User, error) {
	list, err := d.Users.Recipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("load recipients: %w", err)
	}
	out := make(map[string]users.User, len(list))
	for _, user := range list {
		out[user.ID] = user
	}
	return out, nil
}

// send delivers one digest. A failed delivery is logged and skipped so one
// bad address cannot starve the rest of the run.
func (d *Digester) send(ctx context.Context, user users.User, subject, body string) {
	if err := d.Sender.Send(ctx, user.Email, subject, body); err != nil {
		telemetry.Warn("digest.send_failed", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		return
	}
	metrics.IncDigestSent()
	telemetry.Info("digest.sent", map[string]any{
		"user_id": user.ID,
		"subject": subject,
	})
}

func buildFollowUpBody(name string, apps []applications.Application, now time.Time) string {
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].FollowUpDate.Before(*apps[j].FollowUpDate)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", displayName(name))
	fmt.Fprintf(&b, "You have %d follow-up(s) due:\n\n", len(apps))
	for _, app := range apps {
		overdue := ""
		if app.FollowUpDate.Before(now.Truncate(24 * time.Hour)) {
			overdue = " (overdue)"
		}
		fmt.Fprintf(&b, "- %s at %s, follow up by %s%s\n",
			app.JobTitle, app.Company, app.FollowUpDate.Format("2006-01-02"), overdue)
	}
	b.WriteString("\nGood luck!\n")
	return b.String()
}

func buildWeeklyBody(name string, counts map[string]int) string {
	statuses := make([]string, 0, len(counts))
	total := 0
	for status, count := range counts {
		statuses = append(statuses, status)
		total += count
	}
	sort.Strings(statuses)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", displayName(name))
	fmt.Fprintf(&b, "You tracked %d application(s) this week:\n\n", total)
	for _, status := range statuses {
		fmt.Fprintf(&b, "- %s: %d\n", status, counts[status])
	}
	b.WriteString("\nKeep it up!\n")
	return b.String()
}

func displayName(name string) string {
	if name == "" {
		return "there"
	}
	return name
}
