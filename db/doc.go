// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database, creates the schema and implements the Store
that backs every API operation.

# Drivers

Open accepts TypeSQLite (modernc.org/sqlite, pure Go) or TypePostgres
(github.com/lib/pq). Queries use $N placeholders, understood by both.
SQLite connections enable foreign keys, WAL and a busy timeout, and begin
transactions with BEGIN IMMEDIATE.

	conn, err := db.Open(db.TypeSQLite, "data/voting.db")
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}
	store := db.NewStore(conn, nil)

CreateSchema is safe to call multiple times - uses IF NOT EXISTS.

# Tables

  - albums: Albums synced from Immich plus voting window and lottery state
  - votes: One ranked vote per (album, session token)
  - lottery_participants: One entry per (album, email), linked to the vote
  - admins: Admin accounts with bcrypt hashes
  - admin_sessions: Admin session tokens with expiry

Timestamps are stored as unix milliseconds (UTC) so both drivers round-trip
them identically.

# Invariants

Uniqueness is enforced by constraints, not by checks in Go: a second vote
for the same session fails with voting.ErrDuplicateVote, a second lottery
entry for the same email is ignored. An album's lottery_winner_id is set if
and only if lottery_drawn is true.

DrawWinner selects, flags the participant and marks the album in a single
transaction whose album update only matches a pending album, so concurrent
draws produce exactly one winner and voting.ErrAlreadyDrawn for the rest.

# Time

The Store reads time from an injected clockwork.Clock; handlers use
Store.Now so window checks and stored timestamps agree.
*/
package db
