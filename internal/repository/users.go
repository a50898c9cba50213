package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ayush931/stackskills/internal/auth"
	"github.com/ayush931/stackskills/internal/model"
)

const userColumns = `id, stack_id, name, phone, school_name, class_name, password_hash, role, session, created_at, updated_at`

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.StackID,
		&user.Name,
		&user.Phone,
		&user.SchoolName,
		&user.ClassName,
		&user.PasswordHash,
		&user.Role,
		&user.Session,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

func (s *Store) GetUserByPhone(ctx context.Context, phone string) (model.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE phone = $1
	`, phone)
	return scanUser(row)
}

func (s *Store) GetUserByID(ctx context.Context, userID string) (model.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, userID)
	return scanUser(row)
}

func (s *Store) CreateUser(ctx context.Context, user model.User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, stack_id, name, phone, school_name, class_name, password_hash, role, session, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, user.ID, user.StackID, user.Name, user.Phone, user.SchoolName, user.ClassName, user.PasswordHash, user.Role, user.Session, user.CreatedAt, user.UpdatedAt)
	return err
}

func (s *Store) PhoneExists(ctx context.Context, phone string) (bool, error) {
	return exists(ctx, s.pool, `SELECT 1 FROM users WHERE phone = $1`, phone)
}

// PhoneTakenByOther reports whether a different account already owns the
// phone number; used by the profile-update flow.
func (s *Store) PhoneTakenByOther(ctx context.Context, phone, userID string) (bool, error) {
	var found bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE phone = $1 AND id <> $2)
	`, phone, userID).Scan(&found)
	return found, err
}

func (s *Store) StackIDExists(ctx context.Context, stackID string) (bool, error) {
	return exists(ctx, s.pool, `SELECT 1 FROM users WHERE stack_id = $1`, stackID)
}

// ClaimSession stores the token as the account's session marker only when no
// session is active. Returns false if another login already holds the marker.
func (s *Store) ClaimSession(ctx context.Context, userID, token string, now time.Time) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET session = $2, updated_at = $3
		WHERE id = $1 AND session IS NULL
	`, userID, token, now)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ClearSessionIfSet drops the session marker and reports whether one was
// actually present. The conditional WHERE keeps concurrent logins from both
// observing a stale marker.
func (s *Store) ClearSessionIfSet(ctx context.Context, userID string, now time.Time) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET session = NULL, updated_at = $2
		WHERE id = $1 AND session IS NOT NULL
	`, userID, now)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) ClearSession(ctx context.Context, userID string, now time.Time) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE users SET session = NULL, updated_at = $2
		WHERE id = $1
	`, userID, now)
	return err
}

// GetPasswordHashForUpdate locks the account row for the remainder of the
// transaction so verify-then-update cannot interleave with a concurrent
// password change.
func (s *Store) GetPasswordHashForUpdate(ctx context.Context, tx pgx.Tx, userID string) (string, error) {
	var hash string
	err := tx.QueryRow(ctx, `
		SELECT password_hash FROM users WHERE id = $1 FOR UPDATE
	`, userID).Scan(&hash)
	return hash, err
}

func (s *Store) UpdatePassword(ctx context.Context, tx pgx.Tx, userID, passwordHash string, now time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = $3
		WHERE id = $1
	`, userID, passwordHash, now)
	return err
}

func (s *Store) UpdateProfile(ctx context.Context, userID string, update model.ProfileUpdate, now time.Time) (model.User, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE users SET
			name = COALESCE($2, name),
			school_name = COALESCE($3, school_name),
			class_name = COALESCE($4, class_name),
			phone = COALESCE($5, phone),
			updated_at = $6
		WHERE id = $1
		RETURNING `+userColumns+`
	`, userID, update.Name, update.SchoolName, update.ClassName, update.Phone, now)
	return scanUser(row)
}

func (s *Store) ListUsers(ctx context.Context, limit int) ([]model.User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (s *Store) ListUsersByRole(ctx context.Context, role auth.Role, limit int) ([]model.User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE role = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, role, limit)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]model.User, error) {
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
