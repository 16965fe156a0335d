// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the photos-voting API.

# Handler Types

  - AlbumHandler: Visible albums, voting status, assets and leaderboard
  - VotingHandler: Vote submission and the caller's own vote
  - ProxyHandler: Thumbnail and original images streamed from Immich
  - AdminHandler: Login, session check, album settings, votes and sync
  - LotteryHandler: Participants and the draw

Handlers are created via constructor functions that take the *db.Store and
whatever else they need:

	albumHandler := handlers.NewAlbumHandler(store, immichClient)
	votingHandler := handlers.NewVotingHandler(store, cfg, m.Votes)

# Sessions

Voters are identified per album by the vote_{albumID} cookie, issued on the
first vote and kept for a year. Admins carry the admin_token cookie; routes
wrapped with AdminHandler.RequireAdmin answer 401 without a live session.

# Errors

Domain errors from the voting package map to a status and a stable code:

	ErrValidation        400 validation_error
	ErrDuplicateVote     409 duplicate_vote
	ErrWindowClosed      409 window_closed
	ErrLotteryNotEnabled 400 lottery_not_enabled
	ErrAlreadyDrawn      409 already_drawn
	ErrNoParticipants    400 no_participants
	ErrNotFound          404 not_found

Anything else is logged and returned as 500 internal_error. Immich failures
become 503 when the circuit breaker is open and 502 otherwise.
*/
package handlers
