// ABOUTME: User CRUD operations for SQLite storage.
// ABOUTME: Enforces email uniqueness through the table's UNIQUE constraint.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/fitness/internal/models"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateUser stores a new user and sets its ID. A second user with the same
// email fails with ErrDuplicateEmail and leaves the first untouched.
func (d *DB) CreateUser(ctx context.Context, u *models.User) error {
	return insertUser(ctx, d.db, u)
}

func insertUser(ctx context.Context, ex execer, u *models.User) error {
	query := `INSERT INTO users (name, email, password) VALUES (?, ?, ?)`

	result, err := ex.ExecContext(ctx, query, u.Name, u.Email, u.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %q: %w", u.Email, ErrDuplicateEmail)
		}
		return fmt.Errorf("create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	u.ID = id
	return nil
}

// GetUserByEmail looks up a user by exact email match.
func (d *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, COALESCE(name, ''), COALESCE(email, ''), COALESCE(password, '')
		FROM users
		WHERE email = ?
	`

	var u models.User
	err := d.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// ListUsers returns all users ordered by ID.
func (d *DB) ListUsers(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, COALESCE(name, ''), COALESCE(email, ''), COALESCE(password, '')
		FROM users
		ORDER BY id
	`

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &u)
	}

	return users, rows.Err()
}
