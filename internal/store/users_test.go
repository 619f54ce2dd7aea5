package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rajendra1296/OMF-Consumer/pkg/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newStore(t *testing.T) (*UserStore, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return NewUserStore(db), mock, func() { db.Close() }
}

func TestPut(t *testing.T) {
	s, mock, closeDB := newStore(t)
	defer closeDB()

	now := time.Now()
	user := models.User{
		ID:        "user-001",
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@x.com",
		DOB:       "2000-01-01",
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs("user-001", "John", "Doe", "john@x.com", "2000-01-01", "active", now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := s.Put(context.Background(), user); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestPut_AbsentFieldsStoredAsNull(t *testing.T) {
	s, mock, closeDB := newStore(t)
	defer closeDB()

	now := time.Now()
	user := models.User{
		ID:        "user-002",
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs("user-002", nil, nil, nil, nil, "active", now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := s.Put(context.Background(), user); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestUpdate_ForcesUpdatedStatus(t *testing.T) {
	s, mock, closeDB := newStore(t)
	defer closeDB()

	now := time.Now()
	mock.ExpectExec("UPDATE users SET first_name").
		WithArgs("Jane", nil, nil, "updated", now, "abc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.Update(context.Background(), "abc", models.UserPayload{FirstName: "Jane"}, now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestUpdate_NonexistentID(t *testing.T) {
	s, mock, closeDB := newStore(t)
	defer closeDB()

	mock.ExpectExec("UPDATE users SET first_name").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Update(context.Background(), "missing-id", models.UserPayload{}, time.Now())
	if !errors.Is(err, ErrConditionFailed) {
		t.Fatalf("expected ErrConditionFailed, got %v", err)
	}
}

func TestUpdateStatus_TouchesOnlyStatusAndUpdatedAt(t *testing.T) {
	s, mock, closeDB := newStore(t)
	defer closeDB()

	now := time.Now()
	mock.ExpectExec(`UPDATE users SET status = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs("suspended", now, "abc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.UpdateStatus(context.Background(), "abc", "suspended", now); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestUpdateStatus_NonexistentID(t *testing.T) {
	s, mock, closeDB := newStore(t)
	defer closeDB()

	mock.ExpectExec("UPDATE users SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateStatus(context.Background(), "missing-id", "suspended", time.Now())
	if !errors.Is(err, ErrConditionFailed) {
		t.Fatalf("expected ErrConditionFailed, got %v", err)
	}
}

func TestGetByEmailDOB(t *testing.T) {
	s, mock, closeDB := newStore(t)
	defer closeDB()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "dob", "status", "created_at", "updated_at"}).
		AddRow("user-123", "John", nil, "a@b.com", "1990-01-01", "active", now, now)
	mock.ExpectQuery("SELECT id, first_name, last_name, email, dob, status, created_at, updated_at FROM users WHERE email").
		WithArgs("a@b.com", "1990-01-01").
		WillReturnRows(rows)

	user, err := s.GetByEmailDOB(context.Background(), "a@b.com", "1990-01-01")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != "user-123" {
		t.Errorf("ID: expected user-123, got %s", user.ID)
	}
	if user.LastName != "" {
		t.Errorf("LastName: expected empty for NULL column, got %q", user.LastName)
	}
	if user.Status != "active" {
		t.Errorf("Status: expected active, got %s", user.Status)
	}
}

func TestGetByEmailDOB_NotFound(t *testing.T) {
	s, mock, closeDB := newStore(t)
	defer closeDB()

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "dob", "status", "created_at", "updated_at"})
	mock.ExpectQuery("SELECT id, first_name, last_name, email, dob, status, created_at, updated_at FROM users WHERE email").
		WithArgs("a@b.com", "1990-01-01").
		WillReturnRows(rows)

	_, err := s.GetByEmailDOB(context.Background(), "a@b.com", "1990-01-01")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	s, mock, closeDB := newStore(t)
	defer closeDB()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "dob", "status", "created_at", "updated_at"}).
		AddRow("user-123", "John", "Doe", "a@b.com", "1990-01-01", "updated", now, now)
	mock.ExpectQuery(`SELECT id, first_name, last_name, email, dob, status, created_at, updated_at FROM users WHERE id = \$1`).
		WithArgs("user-123").
		WillReturnRows(rows)

	user, err := s.GetByID(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.FirstName != "John" || user.LastName != "Doe" {
		t.Errorf("unexpected name: %s %s", user.FirstName, user.LastName)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	s, mock, closeDB := newStore(t)
	defer closeDB()

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "dob", "status", "created_at", "updated_at"})
	mock.ExpectQuery("SELECT id, first_name, last_name, email, dob, status, created_at, updated_at FROM users WHERE id").
		WithArgs("nonexistent").
		WillReturnRows(rows)

	_, err := s.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
