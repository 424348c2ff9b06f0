package preferences

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestInsertVersionDeactivatesBeforeInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	next := Preference{
		ID:        "pref-2",
		UserID:    "user-1",
		Title:     "Staff Engineer",
		Keywords:  []string{"go"},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM job_preferences WHERE id = \\$1 AND user_id = \\$2 FOR UPDATE").
		WithArgs("pref-1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("pref-1"))
	mock.ExpectExec("UPDATE job_preferences SET is_active = FALSE").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO job_preferences").
		WithArgs(
			"pref-2", "user-1", "Staff Engineer",
			nil, nil, nil, nil, nil, nil,
			[]byte(`["go"]`), now, now,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.InsertVersion(context.Background(), "pref-1", next); err != nil {
		t.Fatalf("InsertVersion: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestInsertVersionNotFoundForForeignRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM job_preferences").
		WithArgs("pref-9", "intruder").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err = repo.InsertVersion(context.Background(), "pref-9", Preference{ID: "pref-10", UserID: "intruder"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
