// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SubmitVoteRequest: rank1, rank2, rank3, email, name
  - LoginRequest: username, password
  - AlbumPatch: is_visible, voting_enabled, voting_start, voting_end, lottery_enabled

AlbumPatch distinguishes an absent field from an explicit null. Boolean fields
are pointers; the two window bounds use OptionalTime, whose Set flag is true
whenever the key appeared in the body:

	{"voting_end": null}   // clears the end bound
	{}                     // leaves it untouched

# Response Types

  - SubmitVoteResponse: success, session_token
  - MyVoteResponse: voted, vote
  - AlbumDetailResponse: album, voting_status
  - SyncResponse: synced
  - DrawResponse: winner
  - ErrorResponse: error, message, code

# Domain Types

  - Album: album row synchronized from the photo library, plus voting and
    lottery settings
  - PublicAlbum: voter-facing view of an Album
  - AlbumSummary: Album with vote_count and lottery_count
  - VotingStatus: derived state of the voting window
  - Vote: one session's ranked choice of up to three assets
  - LotteryParticipant: a voter who left an email while the lottery was open
  - VoteStats / AlbumStats: per-asset tally and leaderboard

# Constants

Lottery states:

	LotteryNotDrawable = "not_drawable"
	LotteryPending     = "pending"
	LotteryDrawn       = "drawn"

Error codes (ErrorResponse.Code) map one-to-one to the domain errors of the
voting package: validation_error, duplicate_vote, window_closed,
lottery_not_enabled, already_drawn, no_participants, not_found.
*/
package models
