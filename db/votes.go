// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/twocans72/photos-voting/models"
	"github.com/twocans72/photos-voting/voting"
)

const voteColumns = `v.id, v.album_id, v.session_token, v.rank1_asset_id, v.rank2_asset_id, v.rank3_asset_id,
	v.email, v.name, v.ip_hash, v.created_at`

func scanVote(row rowScanner, extra ...any) (models.Vote, error) {
	var (
		v                                 models.Vote
		rank2, rank3, email, name, ipHash sql.NullString
		createdAt                         int64
	)

	dest := []any{&v.ID, &v.AlbumID, &v.SessionToken, &v.Rank1AssetID, &rank2, &rank3, &email, &name, &ipHash, &createdAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return models.Vote{}, err
	}

	v.Rank2AssetID = stringPtr(rank2)
	v.Rank3AssetID = stringPtr(rank3)
	v.Email = stringPtr(email)
	v.Name = stringPtr(name)
	v.IPHash = stringPtr(ipHash)
	v.CreatedAt = fromMillis(createdAt)
	return v, nil
}

// SubmitVote records a ballot for one session. Ranks and the lottery contact
// are normalized first; the album must exist, be visible and have an open
// voting window. A voter who leaves an email while the album's lottery is
// pending is enrolled once per email; the receipt reports whether this vote
// created the entry.
func (s *Store) SubmitVote(ctx context.Context, p models.SubmitVoteParams) (models.VoteReceipt, error) {
	ranks, err := voting.NormalizeRanks(p.Rank1, p.Rank2, p.Rank3)
	if err != nil {
		return models.VoteReceipt{}, err
	}
	email, name, err := voting.NormalizeContact(p.Email, p.Name)
	if err != nil {
		return models.VoteReceipt{}, err
	}
	if strings.TrimSpace(p.SessionToken) == "" {
		return models.VoteReceipt{}, fmt.Errorf("%w: session token required", voting.ErrValidation)
	}

	now := s.Now()
	vote := models.Vote{
		ID:           uuid.NewString(),
		AlbumID:      p.AlbumID,
		SessionToken: p.SessionToken,
		Rank1AssetID: ranks.Rank1,
		CreatedAt:    fromMillis(toMillis(now)),
	}
	if ranks.Rank2 != "" {
		vote.Rank2AssetID = &ranks.Rank2
	}
	if ranks.Rank3 != "" {
		vote.Rank3AssetID = &ranks.Rank3
	}
	if email != "" {
		vote.Email = &email
	}
	if name != "" {
		vote.Name = &name
	}
	if p.IPHash != "" {
		ipHash := p.IPHash
		vote.IPHash = &ipHash
	}

	entered := false
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		album, err := getAlbum(ctx, tx, p.AlbumID)
		if err != nil {
			return err
		}
		if !album.IsVisible {
			return voting.ErrNotFound
		}
		if !voting.AlbumWindow(album, now).IsOpen {
			return voting.ErrWindowClosed
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO votes (id, album_id, session_token, rank1_asset_id, rank2_asset_id, rank3_asset_id, email, name, ip_hash, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, vote.ID, vote.AlbumID, vote.SessionToken, vote.Rank1AssetID,
			nullString(ranks.Rank2), nullString(ranks.Rank3), nullString(email), nullString(name),
			nullString(p.IPHash), toMillis(vote.CreatedAt))
		if IsUniqueViolation(err) {
			return voting.ErrDuplicateVote
		}
		if err != nil {
			return fmt.Errorf("failed to insert vote: %w", err)
		}

		if email == "" || !album.LotteryEnabled || album.LotteryDrawn {
			return nil
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO lottery_participants (id, album_id, vote_id, email, name, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (album_id, email) DO NOTHING
		`, uuid.NewString(), vote.AlbumID, vote.ID, email, nullString(name), toMillis(vote.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to enroll lottery participant: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to enroll lottery participant: %w", err)
		}
		entered = n == 1
		return nil
	})
	if err != nil {
		return models.VoteReceipt{}, err
	}

	return models.VoteReceipt{Vote: vote, LotteryEntered: entered}, nil
}

// VoteForSession returns the vote a session cast in an album, if any.
func (s *Store) VoteForSession(ctx context.Context, albumID, sessionToken string) (models.Vote, bool, error) {
	if sessionToken == "" {
		return models.Vote{}, false, nil
	}

	vote, err := scanVote(s.db.QueryRowContext(ctx, `
		SELECT `+voteColumns+`
		FROM votes v
		WHERE v.album_id = $1 AND v.session_token = $2
	`, albumID, sessionToken))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vote{}, false, nil
	}
	if err != nil {
		return models.Vote{}, false, fmt.Errorf("failed to query vote: %w", err)
	}

	return vote, true, nil
}

// ListVotes returns an album's votes newest first, each with the lottery
// outcome of its voter when the voter entered the lottery.
func (s *Store) ListVotes(ctx context.Context, albumID string) ([]models.AdminVote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+voteColumns+`, lp.is_winner
		FROM votes v
		LEFT JOIN lottery_participants lp ON lp.vote_id = v.id
		WHERE v.album_id = $1
		ORDER BY v.created_at DESC, v.id ASC
	`, albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.AdminVote{}
	for rows.Next() {
		var isWinner sql.NullBool
		vote, err := scanVote(rows, &isWinner)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}

		av := models.AdminVote{Vote: vote}
		if isWinner.Valid {
			w := isWinner.Bool
			av.IsWinner = &w
		}
		votes = append(votes, av)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate votes: %w", err)
	}

	return votes, nil
}

var rankColumns = [...]string{"rank1_asset_id", "rank2_asset_id", "rank3_asset_id"}

// ComputeStats tallies an album's votes. The album's existence is the
// caller's concern; an unknown id yields zero votes.
func (s *Store) ComputeStats(ctx context.Context, albumID string) (models.AlbumStats, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE album_id = $1`, albumID).Scan(&total)
	if err != nil {
		return models.AlbumStats{}, fmt.Errorf("failed to count votes: %w", err)
	}

	counts := voting.Counts{}
	for i, col := range rankColumns {
		if err := s.countRank(ctx, albumID, col, i+1, counts); err != nil {
			return models.AlbumStats{}, err
		}
	}

	return models.AlbumStats{
		TotalVotes: total,
		Stats:      voting.Leaderboard(counts),
	}, nil
}

func (s *Store) countRank(ctx context.Context, albumID, column string, rank int, counts voting.Counts) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+column+`, COUNT(*)
		FROM votes
		WHERE album_id = $1 AND `+column+` IS NOT NULL
		GROUP BY `+column, albumID)
	if err != nil {
		return fmt.Errorf("failed to count rank %d: %w", rank, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			assetID string
			n       int
		)
		if err := rows.Scan(&assetID, &n); err != nil {
			return fmt.Errorf("failed to scan rank %d count: %w", rank, err)
		}
		counts.AddRank(assetID, rank, n)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate rank %d counts: %w", rank, err)
	}
	return nil
}
