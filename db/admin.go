// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/twocans72/photos-voting/auth"
)

// EnsureAdmin creates the bootstrap account when no admin exists yet.
// Existing accounts are never overwritten.
func (s *Store) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO admins (username, password_hash, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
	`, username, hash, toMillis(s.Now()))
	if err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}

	return true, nil
}

// VerifyAdmin checks a username/password pair.
func (s *Store) VerifyAdmin(ctx context.Context, username, password string) (bool, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, `SELECT password_hash FROM admins WHERE username = $1`, username).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query admin: %w", err)
	}

	return auth.VerifyPassword(password, hash), nil
}

// CreateAdminSession stores a session token valid for ttl and purges expired
// sessions. It returns the expiry time.
func (s *Store) CreateAdminSession(ctx context.Context, token string, ttl time.Duration) (time.Time, error) {
	now := s.Now()
	expires := now.Add(ttl)

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO admin_sessions (token, expires_at, created_at)
			VALUES ($1, $2, $3)
		`, token, toMillis(expires), toMillis(now))
		if err != nil {
			return fmt.Errorf("failed to create admin session: %w", err)
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM admin_sessions WHERE expires_at <= $1`, toMillis(now))
		if err != nil {
			return fmt.Errorf("failed to purge admin sessions: %w", err)
		}
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}

	return expires, nil
}

// ValidateAdminSession reports whether token names an unexpired session.
func (s *Store) ValidateAdminSession(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM admin_sessions
			WHERE token = $1 AND expires_at > $2
		)
	`, token, toMillis(s.Now())).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to validate admin session: %w", err)
	}

	return exists, nil
}

// DeleteAdminSession ends a session. Unknown tokens are ignored.
func (s *Store) DeleteAdminSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to delete admin session: %w", err)
	}
	return nil
}
