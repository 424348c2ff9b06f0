package ratings

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const ratingColumns = `id, user_id, job_application_id, company_name, overall_rating, interview_rating, work_life_rating, compensation_rating, growth_rating, review, pros, cons, anonymous, created_at`

// Create inserts a rating row.
func (r *PGRepo) Create(ctx context.Context, rating Rating) error {
	const query = `
INSERT INTO company_ratings (id, user_id, job_application_id, company_name, overall_rating, interview_rating, work_life_rating, compensation_rating, growth_rating, review, pros, cons, anonymous, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		rating.ID,
		rating.UserID,
		rating.JobApplicationID,
		rating.CompanyName,
		rating.Overall,
		rating.Interview,
		rating.WorkLife,
		rating.Compensation,
		rating.Growth,
		nullString(rating.Review),
		nullString(rating.Pros),
		nullString(rating.Cons),
		rating.Anonymous,
		rating.CreatedAt,
	)
	return err
}

// ListByUser returns the user's ratings, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Rating, error) {
	const query = `
SELECT ` + ratingColumns + `
FROM company_ratings
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	return r.queryRatings(ctx, query, userID, clampLimit(limit), clampOffset(offset))
}

// ListByCompany returns ratings for an exact company name, newest first.
func (r *PGRepo) ListByCompany(ctx context.Context, companyName string, limit, offset int) ([]Rating, error) {
	const query = `
SELECT ` + ratingColumns + `
FROM company_ratings
WHERE company_name = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	return r.queryRatings(ctx, query, companyName, clampLimit(limit), clampOffset(offset))
}

// Stats aggregates ratings for one company.
func (r *PGRepo) Stats(ctx context.Context, companyName string) (CompanyStats, error) {
	const query = `
SELECT count(*),
       avg(overall_rating),
       avg(interview_rating),
       avg(work_life_rating),
       avg(compensation_rating),
       avg(growth_rating)
FROM company_ratings
WHERE company_name = $1`

	stats := CompanyStats{CompanyName: companyName}
	var overall, interview, workLife, compensation, growth sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, query, companyName).Scan(
		&stats.Count,
		&overall,
		&interview,
		&workLife,
		&compensation,
		&growth,
	)
	if err != nil {
		return CompanyStats{}, err
	}
	stats.AvgOverall = nullableFloat(overall)
	stats.AvgInterview = nullableFloat(interview)
	stats.AvgWorkLife = nullableFloat(workLife)
	stats.AvgCompensation = nullableFloat(compensation)
	stats.AvgGrowth = nullableFloat(growth)
	return stats, nil
}

// Top returns the best-rated companies with enough ratings to qualify.
func (r *PGRepo) Top(ctx context.Context, limit, minRatings int) ([]TopCompany, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	const query = `
SELECT company_name, count(*), avg(overall_rating)
FROM company_ratings
GROUP BY company_name
HAVING count(*) >= $1
ORDER BY avg(overall_rating) DESC, company_name ASC
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, minRatings, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TopCompany
	for rows.Next() {
		var company TopCompany
		if err := rows.Scan(&company.CompanyName, &company.Count, &company.AvgOverall); err != nil {
			return nil, err
		}
		out = append(out, company)
	}
	return out, rows.Err()
}

func (r *PGRepo) queryRatings(ctx context.Context, query string, args ...any) ([]Rating, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Rating
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rating)
	}
	return out, rows.Err()
}

func scanRating(rows *sql.Rows) (Rating, error) {
	var rating Rating
	var appID sql.NullString
	var interview, workLife, compensation, growth sql.NullInt64
	var review, pros, cons sql.NullString
	err := rows.Scan(
		&rating.ID,
		&rating.UserID,
		&appID,
		&rating.CompanyName,
		&rating.Overall,
		&interview,
		&workLife,
		&compensation,
		&growth,
		&review,
		&pros,
		&cons,
		&rating.Anonymous,
		&rating.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Rating{}, ErrNotFound
		}
		return Rating{}, err
	}
	if appID.Valid {
		rating.JobApplicationID = &appID.String
	}
	rating.Interview = nullableInt(interview)
	rating.WorkLife = nullableInt(workLife)
	rating.Compensation = nullableInt(compensation)
	rating.Growth = nullableInt(growth)
	rating.Review = review.String
	rating.Pros = pros.String
	rating.Cons = cons.String
	return rating, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

var _ Repo = (*PGRepo)(nil)
