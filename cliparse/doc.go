// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Sources

Each setting is resolved from, lowest precedence first:

 1. the default below
 2. a .env file in the working directory (github.com/joho/godotenv)
 3. the process environment (github.com/caarlos0/env)
 4. a command-line flag, when one exists

# Settings

	PORT                   -p               3318
	DATABASE_TYPE          -t               sqlite (sqlite or postgres)
	DATABASE_URL           -d               data/voting.db
	IP_HASH_SALT           -ip-salt         required
	ADMIN_PASSWORD         -admin-password  required
	ADMIN_SESSION_TTL                       24h
	SECURE_COOKIES         -secure-cookies  false
	IMMICH_URL             -immich-url      http://immich:2283
	IMMICH_API_KEY         -immich-api-key
	LOG_LEVEL              -log-level       info
	LOG_FORMAT             -log-format      text
	RATE_LIMIT_PER_SECOND                   1
	RATE_LIMIT_BURST                        5
	TRUSTED_PROXIES        -trusted-proxies none (comma-separated IPs or CIDRs)
	CORS_ORIGINS           -cors-origins    none (comma-separated origins)

X-Forwarded-For and X-Real-IP are ignored unless the connection comes from a
TRUSTED_PROXIES address. Cross-origin browser calls are refused unless their
origin is listed in CORS_ORIGINS.

For SQLite, DATABASE_URL is a file path; its directory is created on start.

# Validation

ParseFlags returns an error if:

  - IP_HASH_SALT or ADMIN_PASSWORD is missing
  - DATABASE_TYPE is neither sqlite nor postgres
  - the port is out of range
  - the session TTL or rate limit is not positive
  - a TRUSTED_PROXIES entry is neither an IP nor a CIDR
*/
package cliparse
