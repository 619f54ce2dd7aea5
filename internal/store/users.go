package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Rajendra1296/OMF-Consumer/pkg/models"
)

var (
	// ErrNotFound means a lookup matched no record.
	ErrNotFound = errors.New("user not found")
	// ErrConditionFailed means a conditional update targeted an id with
	// no existing record. Distinguished from infrastructure errors so
	// callers can tell a guard rejection from an outage.
	ErrConditionFailed = errors.New("no existing user for id")
)

// UserStore persists user records. Every write is a single atomic
// statement; updates are guarded on the row already existing rather
// than upserting.
type UserStore struct {
	DB *sql.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{DB: db}
}

// Put writes a record unconditionally, overwriting any record with the
// same id. Empty optional fields are stored as NULL.
func (s *UserStore) Put(ctx context.Context, user models.User) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, email, dob, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			dob = EXCLUDED.dob,
			status = EXCLUDED.status,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at`,
		user.ID, nullable(user.FirstName), nullable(user.LastName),
		nullable(user.Email), nullable(user.DOB), user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("put user %s: %w", user.ID, err)
	}
	return nil
}

// Update overwrites first name, last name and dob of an existing record,
// forces status to "updated" and refreshes updated_at. Email and
// created_at are never touched. Returns ErrConditionFailed when no
// record with the id exists.
func (s *UserStore) Update(ctx context.Context, id string, p models.UserPayload, updatedAt time.Time) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE users SET first_name = $1, last_name = $2, dob = $3, status = $4, updated_at = $5
		 WHERE id = $6`,
		nullable(p.FirstName), nullable(p.LastName), nullable(p.DOB),
		models.StatusUpdated, updatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("update user %s: %w", id, err)
	}
	return checkExisted(res, id)
}

// UpdateStatus overwrites only status and updated_at of an existing
// record. Same existence guard as Update.
func (s *UserStore) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	res, err := s.DB.ExecContext(ctx,
		"UPDATE users SET status = $1, updated_at = $2 WHERE id = $3",
		status, updatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("update status for user %s: %w", id, err)
	}
	return checkExisted(res, id)
}

// GetByEmailDOB looks a record up by the (email, dob) secondary key and
// returns the first match.
func (s *UserStore) GetByEmailDOB(ctx context.Context, email, dob string) (models.User, error) {
	row := s.DB.QueryRowContext(ctx,
		selectUser+" WHERE email = $1 AND dob = $2 LIMIT 1", email, dob)
	return scanUser(row)
}

// GetByID looks a record up by primary key.
func (s *UserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	row := s.DB.QueryRowContext(ctx, selectUser+" WHERE id = $1", id)
	return scanUser(row)
}

const selectUser = "SELECT id, first_name, last_name, email, dob, status, created_at, updated_at FROM users"

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var firstName, lastName, email, dob sql.NullString
	err := row.Scan(&user.ID, &firstName, &lastName, &email, &dob,
		&user.Status, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}
	user.FirstName = firstName.String
	user.LastName = lastName.String
	user.Email = email.String
	user.DOB = dob.String
	return user, nil
}

func checkExisted(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for user %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrConditionFailed, id)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
