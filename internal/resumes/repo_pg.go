package resumes

import (
	"context"
	"database/sql"
	"errors"

	"autojobber-backend/internal/active"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, storage_key, original_filename, mime_type, size_bytes, is_active, parsed_data, created_at`

// CreateActive inserts a new active resume, deactivating any prior active row
// for the user in the same transaction.
func (r *PGRepo) CreateActive(ctx context.Context, resume Resume) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := active.Deactivate(ctx, tx, active.TableResumes, resume.UserID); err != nil {
		return err
	}

	const query = `
INSERT INTO resumes (id, user_id, storage_key, original_filename, mime_type, size_bytes, is_active, parsed_data, created_at)
VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $8)`
	var parsed any
	if len(resume.ParsedData) > 0 {
		parsed = []byte(resume.ParsedData)
	}
	if _, err := tx.ExecContext(
		ctx,
		query,
		resume.ID,
		resume.UserID,
		resume.StorageKey,
		resume.OriginalFilename,
		resume.MimeType,
		resume.SizeBytes,
		parsed,
		resume.CreatedAt,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID fetches a resume by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1 AND id = $2
LIMIT 1`
	return scanResume(r.DB.QueryRowContext(ctx, query, userID, resumeID))
}

// GetActive returns the active resume for a user.
func (r *PGRepo) GetActive(ctx context.Context, userID string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1 AND is_active
LIMIT 1`
	return scanResume(r.DB.QueryRowContext(ctx, query, userID))
}

// ListByUser lists resumes ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
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
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// Activate makes resumeID the only active resume for the user.
func (r *PGRepo) Activate(ctx context.Context, userID, resumeID string) error {
	err := active.Swap(ctx, r.DB, active.TableResumes, userID, resumeID)
	switch {
	case errors.Is(err, active.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, active.ErrConflict):
		return ErrConflict
	default:
		return err
	}
}

// Delete hard-deletes a resume row.
func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) error {
	const query = `DELETE FROM resumes WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, resumeID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var parsed []byte
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.StorageKey,
		&resume.OriginalFilename,
		&resume.MimeType,
		&resume.SizeBytes,
		&resume.IsActive,
		&parsed,
		&resume.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if len(parsed) > 0 {
		resume.ParsedData = parsed
	}
	return resume, nil
}

var _ Repo = (*PGRepo)(nil)
