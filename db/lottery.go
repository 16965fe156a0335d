// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/twocans72/photos-voting/models"
	"github.com/twocans72/photos-voting/voting"
)

func scanParticipant(row rowScanner) (models.LotteryParticipant, error) {
	var (
		p         models.LotteryParticipant
		name      sql.NullString
		rank1     sql.NullString
		createdAt int64
	)
	err := row.Scan(&p.ID, &p.AlbumID, &p.VoteID, &p.Email, &name, &p.IsWinner, &p.Notified, &createdAt, &rank1)
	if err != nil {
		return models.LotteryParticipant{}, err
	}
	p.Name = stringPtr(name)
	p.Rank1AssetID = rank1.String
	p.CreatedAt = fromMillis(createdAt)
	return p, nil
}

func listParticipants(ctx context.Context, q queryer, albumID string, eligibleOnly bool) ([]models.LotteryParticipant, error) {
	query := `
		SELECT lp.id, lp.album_id, lp.vote_id, lp.email, lp.name, lp.is_winner, lp.notified, lp.created_at, v.rank1_asset_id
		FROM lottery_participants lp
		JOIN votes v ON v.id = lp.vote_id
		WHERE lp.album_id = $1`
	if eligibleOnly {
		query += ` AND lp.is_winner = FALSE`
	}
	query += ` ORDER BY lp.is_winner DESC, lp.created_at ASC, lp.id ASC`

	rows, err := q.QueryContext(ctx, query, albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	participants := []models.LotteryParticipant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

// ListParticipants returns an album's lottery entries, winners first, then in
// order of entry.
func (s *Store) ListParticipants(ctx context.Context, albumID string) ([]models.LotteryParticipant, error) {
	return listParticipants(ctx, s.db, albumID, false)
}

// DrawWinner picks one non-winning participant of the album with src and
// records the outcome. The album must have its lottery enabled and not yet
// drawn. The participant flag and the album flag are written in the same
// transaction, and the album update only succeeds on a still-pending album,
// so two concurrent draws cannot both win.
func (s *Store) DrawWinner(ctx context.Context, albumID string, src voting.Source) (models.LotteryParticipant, error) {
	var winner models.LotteryParticipant

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		album, err := getAlbum(ctx, tx, albumID)
		if err != nil {
			return err
		}
		if err := voting.CheckDrawable(album); err != nil {
			return err
		}

		participants, err := listParticipants(ctx, tx, albumID, true)
		if err != nil {
			return err
		}

		winner, err = voting.PickWinner(participants, src)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE albums
			SET lottery_drawn = TRUE, lottery_winner_id = $1, updated_at = $2
			WHERE id = $3 AND lottery_enabled = TRUE AND lottery_drawn = FALSE
		`, winner.Email, toMillis(s.Now()), albumID)
		if err != nil {
			return fmt.Errorf("failed to mark album drawn: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check album update: %w", err)
		}
		if n == 0 {
			return voting.ErrAlreadyDrawn
		}

		_, err = tx.ExecContext(ctx, `UPDATE lottery_participants SET is_winner = TRUE WHERE id = $1`, winner.ID)
		if err != nil {
			return fmt.Errorf("failed to mark winner: %w", err)
		}

		winner.IsWinner = true
		return nil
	})
	if err != nil {
		return models.LotteryParticipant{}, err
	}

	return winner, nil
}
