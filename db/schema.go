// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Executed in order, one statement at a time. Timestamps are unix milliseconds (UTC).
var schema = []string{
	// Albums
	`CREATE TABLE IF NOT EXISTS albums (
    id TEXT PRIMARY KEY,
    immich_id TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    description TEXT,
    asset_count INTEGER NOT NULL DEFAULT 0,
    cover_asset_id TEXT,
    is_visible BOOLEAN NOT NULL DEFAULT FALSE,
    voting_enabled BOOLEAN NOT NULL DEFAULT FALSE,
    voting_start BIGINT,
    voting_end BIGINT,
    lottery_enabled BOOLEAN NOT NULL DEFAULT FALSE,
    lottery_drawn BOOLEAN NOT NULL DEFAULT FALSE,
    lottery_winner_id TEXT,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    CHECK ((lottery_drawn AND lottery_winner_id IS NOT NULL) OR (NOT lottery_drawn AND lottery_winner_id IS NULL))
)`,
	`CREATE INDEX IF NOT EXISTS idx_albums_visible ON albums(is_visible)`,

	// Votes
	`CREATE TABLE IF NOT EXISTS votes (
    id TEXT PRIMARY KEY,
    album_id TEXT NOT NULL REFERENCES albums(id) ON DELETE CASCADE,
    session_token TEXT NOT NULL,
    rank1_asset_id TEXT NOT NULL,
    rank2_asset_id TEXT,
    rank3_asset_id TEXT,
    email TEXT,
    name TEXT,
    ip_hash TEXT,
    created_at BIGINT NOT NULL,
    UNIQUE (album_id, session_token)
)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_album_id ON votes(album_id)`,

	// Lottery participants
	`CREATE TABLE IF NOT EXISTS lottery_participants (
    id TEXT PRIMARY KEY,
    album_id TEXT NOT NULL REFERENCES albums(id) ON DELETE CASCADE,
    vote_id TEXT NOT NULL REFERENCES votes(id) ON DELETE CASCADE,
    email TEXT NOT NULL,
    name TEXT,
    is_winner BOOLEAN NOT NULL DEFAULT FALSE,
    notified BOOLEAN NOT NULL DEFAULT FALSE,
    created_at BIGINT NOT NULL,
    UNIQUE (album_id, email)
)`,
	`CREATE INDEX IF NOT EXISTS idx_lottery_participants_album_id ON lottery_participants(album_id)`,
	`CREATE INDEX IF NOT EXISTS idx_lottery_participants_vote_id ON lottery_participants(vote_id)`,

	// Admin accounts and sessions
	`CREATE TABLE IF NOT EXISTS admins (
    username TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    created_at BIGINT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS admin_sessions (
    token TEXT PRIMARY KEY,
    expires_at BIGINT NOT NULL,
    created_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_admin_sessions_expires_at ON admin_sessions(expires_at)`,
}
