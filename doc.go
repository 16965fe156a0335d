// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the photos-voting API server.

photos-voting lets visitors rank their three favourite photos of an Immich
album and, optionally, leave an email to enter a one-winner prize lottery.
Administrators sync albums from Immich, open and close voting windows, and
draw the lottery.

# Starting the Server

Configuration comes from flags, the environment, or a .env file:

	IP_HASH_SALT=... ADMIN_PASSWORD=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -ip-salt ... -admin-password ...

# Configuration

Required settings:

  - IP_HASH_SALT (-ip-salt): Secret for hashing voter IP addresses
  - ADMIN_PASSWORD (-admin-password): Password of the bootstrap "admin" account

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): SQLite path or PostgreSQL DSN (default: data/voting.db)
  - IMMICH_URL, IMMICH_API_KEY: Photo library access
  - ADMIN_SESSION_TTL, SECURE_COOKIES: Cookie settings
  - LOG_LEVEL, LOG_FORMAT: slog output
  - RATE_LIMIT_PER_SECOND, RATE_LIMIT_BURST: Per-IP limits on votes and login

# Architecture

  - voting: Window, rank, tally and lottery rules (no I/O)
  - db: Store for albums, votes, participants and admin sessions
  - immich: Immich API client behind a circuit breaker
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, rate limiting, JSON helpers
  - metrics: Prometheus collectors
  - models: Request/response types
  - auth: Tokens, password and IP hashing
  - logging: slog setup
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
