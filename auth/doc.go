// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation, password hashing and IP hashing.

# Voter Session Tokens

Each browser gets a random token per album, stored in the vote_<albumID>
cookie. The token is what makes a vote unique within an album:

	token, err := auth.GenerateSessionToken()  // 32 hex characters

# Admin Sessions

Admin tokens are random 32-byte secrets persisted in admin_sessions and sent
back in the admin_token cookie:

	token, err := auth.GenerateAdminToken()  // 64 hex characters

# Passwords

Admin passwords are stored as bcrypt hashes (cost PasswordCost):

	hash, err := auth.HashPassword(password)
	ok := auth.VerifyPassword(password, hash)

# ID Generation

Random hex IDs:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

Votes keep a salted hash of the client address instead of the address itself:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
