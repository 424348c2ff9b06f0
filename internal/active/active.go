// Package active enforces the single-active-row invariant for user-scoped
// versioned resources: for a given user and resource table, at most one row
// has is_active = true at any observable point.
package active

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"autojobber-backend/internal/shared/metrics"
)

// Tables that carry the active-flag invariant. Swap refuses anything else so
// table names never come from request input.
const (
	TableResumes        = "resumes"
	TableJobPreferences = "job_preferences"
)

var (
	// ErrNotFound indicates the target row is absent or owned by another user.
	ErrNotFound = errors.New("active: target row not found")

	// ErrConflict indicates concurrent activations could not be serialized.
	ErrConflict = errors.New("active: activation conflict")
)

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Swap atomically makes targetID the only active row for (userID, table).
// The find-deactivate-activate sequence runs in one transaction with the
// target row locked, so two concurrent swaps for the same user serialize and
// the invariant holds: never two active rows, never zero after success.
// Swapping to the already-active row commits the same state (idempotent).
// One retry is attempted on serialization failures before ErrConflict.
func Swap(ctx context.Context, db *sql.DB, table, userID, targetID string) error {
	if !validTable(table) {
		return fmt.Errorf("active: unknown table %q", table)
	}

	err := swapOnce(ctx, db, table, userID, targetID)
	if isRetryable(err) {
		metrics.IncActivationRetry()
		err = swapOnce(ctx, db, table, userID, targetID)
	}
	if err != nil {
		if isRetryable(err) {
			return ErrConflict
		}
		return err
	}
	metrics.IncActivation()
	return nil
}

// Deactivate clears the active flag on every row for (userID, table). It is
// meant to run inside the caller's transaction alongside an insert of a new
// active row, keeping the deactivate-old/activate-new pair atomic.
func Deactivate(ctx context.Context, ex Execer, table, userID string) error {
	if !validTable(table) {
		return fmt.Errorf("active: unknown table %q", table)
	}
	query := fmt.Sprintf(`UPDATE %s SET is_active = FALSE WHERE user_id = $1 AND is_active`, table)
	_, err := ex.ExecContext(ctx, query, userID)
	return err
}

func swapOnce(ctx context.Context, db *sql.DB, table, userID, targetID string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin activation: %w", err)
	}
	defer tx.Rollback()

	// Lock the target row and verify ownership in one step.
	var id string
	lockQuery := fmt.Sprintf(`SELECT id FROM %s WHERE id = $1 AND user_id = $2 FOR UPDATE`, table)
	if err := tx.QueryRowContext(ctx, lockQuery, targetID, userID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock target row: %w", err)
	}

	deactivate := fmt.Sprintf(`UPDATE %s SET is_active = FALSE WHERE user_id = $1 AND is_active AND id <> $2`, table)
	if _, err := tx.ExecContext(ctx, deactivate, userID, targetID); err != nil {
		return fmt.Errorf("deactivate previous: %w", err)
	}

	activate := fmt.Sprintf(`UPDATE %s SET is_active = TRUE WHERE id = $1`, table)
	if _, err := tx.ExecContext(ctx, activate, targetID); err != nil {
		return fmt.Errorf("activate target: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit activation: %w", err)
	}
	return nil
}

func validTable(table string) bool {
	switch table {
	case TableResumes, TableJobPreferences:
		return true
	default:
		return false
	}
}

// isRetryable reports whether the error is a transient serialization failure:
// a serialization/deadlock abort, or a unique violation on the partial
// single-active index raced by a concurrent activator.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01", "23505":
		return true
	default:
		return false
	}
}
