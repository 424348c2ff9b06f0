package applications

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const appColumns = `id, user_id, job_title, company, application_date, status, follow_up_date, notes, feedback, match_score, created_at, updated_at`

// Create inserts an application row.
func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO job_applications (id, user_id, job_title, company, application_date, status, follow_up_date, notes, feedback, match_score, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		app.ID,
		app.UserID,
		app.JobTitle,
		app.Company,
		app.ApplicationDate,
		app.Status,
		app.FollowUpDate,
		nullString(app.Notes),
		nullString(app.Feedback),
		app.MatchScore,
		app.CreatedAt,
		app.UpdatedAt,
	)
	return err
}

// GetByID fetches an application by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, appID string) (Application, error) {
	const query = `
SELECT ` + appColumns + `
FROM job_applications
WHERE user_id = $1 AND id = $2
LIMIT 1`
	return scanApplication(r.DB.QueryRowContext(ctx, query, userID, appID))
}

// ListByUser lists applications, optionally filtered by status.
func (r *PGRepo) ListByUser(ctx context.Context, userID, status string, limit, offset int) ([]Application, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `
SELECT ` + appColumns + `
FROM job_applications
WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY application_date DESC, created_at DESC`
	query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

// Update replaces the mutable fields of an application row.
func (r *PGRepo) Update(ctx context.Context, app Application) error {
	const query = `
UPDATE job_applications
SET job_title = $1, company = $2, application_date = $3, status = $4,
    follow_up_date = $5, notes = $6, feedback = $7, match_score = $8,
    updated_at = $9
WHERE user_id = $10 AND id = $11`
	res, err := r.DB.ExecContext(
		ctx,
		query,
		app.JobTitle,
		app.Company,
		app.ApplicationDate,
		app.Status,
		app.FollowUpDate,
		nullString(app.Notes),
		nullString(app.Feedback),
		app.MatchScore,
		app.UpdatedAt,
		app.UserID,
		app.ID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an application row.
func (r *PGRepo) Delete(ctx context.Context, userID, appID string) error {
	const query = `DELETE FROM job_applications WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, appID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DueFollowUps returns applications with a follow-up date on or before asOf.
func (r *PGRepo) DueFollowUps(ctx context.Context, asOf time.Time) ([]Application, error) {
	const query = `
SELECT ` + appColumns + `
FROM job_applications
WHERE follow_up_date IS NOT NULL AND follow_up_date <= $1
ORDER BY user_id, follow_up_date`
	rows, err := r.DB.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

// StatusCountsSince returns per-user status counts for recent applications.
func (r *PGRepo) StatusCountsSince(ctx context.Context, since time.Time) (map[string]map[string]int, error) {
	const query = `
SELECT user_id, status, count(*)
FROM job_applications
WHERE created_at >= $1
GROUP BY user_id, status`
	rows, err := r.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]map[string]int)
	for rows.Next() {
		var userID, status string
		var count int
		if err := rows.Scan(&userID, &status, &count); err != nil {
			return nil, err
		}
		if out[userID] == nil {
			out[userID] = make(map[string]int)
		}
		out[userID][status] = count
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var followUp sql.NullTime
	var notes, feedback sql.NullString
	var score sql.NullFloat64
	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.JobTitle,
		&app.Company,
		&app.ApplicationDate,
		&app.Status,
		&followUp,
		&notes,
		&feedback,
		&score,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	if followUp.Valid {
		t := followUp.Time
		app.FollowUpDate = &t
	}
	app.Notes = notes.String
	app.Feedback = feedback.String
	if score.Valid {
		v := score.Float64
		app.MatchScore = &v
	}
	return app, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ Repo = (*PGRepo)(nil)
