package preferences

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"autojobber-backend/internal/active"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const prefColumns = `id, user_id, title, industry, location, work_mode, min_salary, max_salary, company_size, keywords, is_active, created_at, updated_at`

// CreateActive inserts a new active preference, deactivating any prior
// active version in the same transaction.
func (r *PGRepo) CreateActive(ctx context.Context, pref Preference) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := active.Deactivate(ctx, tx, active.TableJobPreferences, pref.UserID); err != nil {
		return err
	}
	if err := insertPreference(ctx, tx, pref); err != nil {
		return err
	}
	return tx.Commit()
}

// InsertVersion appends next as the new active version. The old row is
// locked and deactivated before the insert so the partial unique index on
// (user_id) WHERE is_active never sees two active rows.
func (r *PGRepo) InsertVersion(ctx context.Context, oldID string, next Preference) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var lockedID string
	const lock = `SELECT id FROM job_preferences WHERE id = $1 AND user_id = $2 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, lock, oldID, next.UserID).Scan(&lockedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	const deactivate = `UPDATE job_preferences SET is_active = FALSE, updated_at = now() WHERE user_id = $1 AND is_active`
	if _, err := tx.ExecContext(ctx, deactivate, next.UserID); err != nil {
		return err
	}
	if err := insertPreference(ctx, tx, next); err != nil {
		return err
	}
	return tx.Commit()
}

// GetByID fetches a preference version by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, prefID string) (Preference, error) {
	const query = `
SELECT ` + prefColumns + `
FROM job_preferences
WHERE user_id = $1 AND id = $2
LIMIT 1`
	return scanPreference(r.DB.QueryRowContext(ctx, query, userID, prefID))
}

// GetActive returns the active preference for a user.
func (r *PGRepo) GetActive(ctx context.Context, userID string) (Preference, error) {
	const query = `
SELECT ` + prefColumns + `
FROM job_preferences
WHERE user_id = $1 AND is_active
LIMIT 1`
	return scanPreference(r.DB.QueryRowContext(ctx, query, userID))
}

// ListByUser returns the version history, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Preference, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + prefColumns + `
FROM job_preferences
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Preference
	for rows.Next() {
		pref, err := scanPreference(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pref)
	}
	return out, rows.Err()
}

// Activate makes prefID the only active preference for the user.
func (r *PGRepo) Activate(ctx context.Context, userID, prefID string) error {
	err := active.Swap(ctx, r.DB, active.TableJobPreferences, userID, prefID)
	switch {
	case errors.Is(err, active.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, active.ErrConflict):
		return ErrConflict
	default:
		return err
	}
}

func insertPreference(ctx context.Context, tx *sql.Tx, pref Preference) error {
	keywords, err := json.Marshal(keywordsOrEmpty(pref.Keywords))
	if err != nil {
		return err
	}
	const query = `
INSERT INTO job_preferences (id, user_id, title, industry, location, work_mode, min_salary, max_salary, company_size, keywords, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE, $11, $12)`
	_, err = tx.ExecContext(
		ctx,
		query,
		pref.ID,
		pref.UserID,
		pref.Title,
		nullString(pref.Industry),
		nullString(pref.Location),
		nullString(pref.WorkMode),
		pref.MinSalary,
		pref.MaxSalary,
		nullString(pref.CompanySize),
		keywords,
		pref.CreatedAt,
		pref.UpdatedAt,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPreference(row rowScanner) (Preference, error) {
	var pref Preference
	var industry, location, workMode, companySize sql.NullString
	var keywords []byte
	err := row.Scan(
		&pref.ID,
		&pref.UserID,
		&pref.Title,
		&industry,
		&location,
		&workMode,
		&pref.MinSalary,
		&pref.MaxSalary,
		&companySize,
		&keywords,
		&pref.IsActive,
		&pref.CreatedAt,
		&pref.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Preference{}, ErrNotFound
		}
		return Preference{}, err
	}
	pref.Industry = industry.String
	pref.Location = location.String
	pref.WorkMode = workMode.String
	pref.CompanySize = companySize.String
	if len(keywords) > 0 {
		if err := json.Unmarshal(keywords, &pref.Keywords); err != nil {
			return Preference{}, err
		}
	}
	return pref, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func keywordsOrEmpty(kw []string) []string {
	if kw == nil {
		return []string{}
	}
	return kw
}

var _ Repo = (*PGRepo)(nil)
