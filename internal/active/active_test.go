package active

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestSwapDeactivatesThenActivates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM resumes WHERE id = \\$1 AND user_id = \\$2 FOR UPDATE").
		WithArgs("resume-2", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("resume-2"))
	mock.ExpectExec("UPDATE resumes SET is_active = FALSE").
		WithArgs("user-1", "resume-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE resumes SET is_active = TRUE").
		WithArgs("resume-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := Swap(context.Background(), db, TableResumes, "user-1", "resume-2"); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestSwapNotFoundForForeignRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM job_preferences").
		WithArgs("pref-9", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err = Swap(context.Background(), db, TableJobPreferences, "user-1", "pref-9")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestSwapRetriesOnSerializationFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	serErr := &pgconn.PgError{Code: "40001"}

	// First attempt aborts at commit.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM resumes").
		WithArgs("resume-2", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("resume-2"))
	mock.ExpectExec("UPDATE resumes SET is_active = FALSE").
		WithArgs("user-1", "resume-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE resumes SET is_active = TRUE").
		WithArgs("resume-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(serErr)

	// Retry succeeds.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM resumes").
		WithArgs("resume-2", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("resume-2"))
	mock.ExpectExec("UPDATE resumes SET is_active = FALSE").
		WithArgs("user-1", "resume-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE resumes SET is_active = TRUE").
		WithArgs("resume-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := Swap(context.Background(), db, TableResumes, "user-1", "resume-2"); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestSwapSurfacesConflictAfterRetry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	serErr := &pgconn.PgError{Code: "40001"}

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM resumes").
			WithArgs("resume-2", "user-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("resume-2"))
		mock.ExpectExec("UPDATE resumes SET is_active = FALSE").
			WithArgs("user-1", "resume-2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE resumes SET is_active = TRUE").
			WithArgs("resume-2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit().WillReturnError(serErr)
	}

	err = Swap(context.Background(), db, TableResumes, "user-1", "resume-2")
	if err != ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestSwapRejectsUnknownTable(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Swap(context.Background(), db, "company_ratings", "user-1", "x"); err == nil {
		t.Fatalf("expected error for non-versioned table")
	}
}
