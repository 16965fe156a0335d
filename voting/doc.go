// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting holds the storage-free rules of album voting and the prize lottery.

# Voting Window

WindowStatus computes whether an album accepts votes at a given instant:

	status := voting.WindowStatus(album.VotingEnabled, album.VotingStart, album.VotingEnd, clock.Now())
	if !status.IsOpen {
		// reject
	}

Disabled voting is always closed. The start instant is already open, the end
instant is still open. The result is never cached; callers pass the current
time on every check.

# Rankings

NormalizeRanks trims up to three asset ids and rejects a missing rank1 or any
asset that appears on more than one rank. NormalizeContact validates the
optional lottery email and name.

# Tally

Votes are bucketed per asset and rank, then scored 3/2/1:

	counts := voting.Counts{}
	counts.AddRank(assetID, 1, n)
	stats := voting.Leaderboard(counts)

Leaderboard sorts by score descending and breaks ties by asset id.
Tally does the same starting from vote rows.

# Lottery

An album moves through not_drawable → pending → drawn. CheckDrawable maps the
state to ErrLotteryNotEnabled or ErrAlreadyDrawn. PickWinner chooses one
non-winning participant uniformly from a Source; tests inject a seeded
*rand.Rand, production uses DefaultSource.

# Errors

All domain failures are sentinel errors, tested with errors.Is:

	ErrValidation, ErrDuplicateVote, ErrWindowClosed,
	ErrLotteryNotEnabled, ErrAlreadyDrawn, ErrNoParticipants, ErrNotFound
*/
package voting
