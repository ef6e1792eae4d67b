package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rumbahq/rumba/internal/models"
	"github.com/rumbahq/rumba/internal/storage"
)

const userColumns = "id, name, email, password_hash, role, last_login, created_at, updated_at"

// CreateUser persists a new user, assigning ID and timestamps.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if user.CreatedAt == 0 {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
		user.LastLogin, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email", email)
}

// GetUserByID retrieves a user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *SQLiteStore) getUser(ctx context.Context, column, value string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+column+" = ?", value,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.LastLogin, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateUser persists changes to name and email.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().Unix()
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET name = ?, email = ?, updated_at = ? WHERE id = ?",
		user.Name, user.Email, user.UpdatedAt, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return checkAffected(res)
}

// UpdatePassword replaces the stored password hash.
func (s *SQLiteStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?",
		passwordHash, time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return checkAffected(res)
}

// TouchLastLogin records a successful login time.
func (s *SQLiteStore) TouchLastLogin(ctx context.Context, id string, when int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET last_login = ? WHERE id = ?", when, id,
	)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return checkAffected(res)
}

// checkAffected converts a zero-row UPDATE/DELETE into ErrNotFound.
func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
