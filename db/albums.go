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

var albumColumnNames = []string{
	"id", "immich_id", "title", "description", "asset_count", "cover_asset_id",
	"is_visible", "voting_enabled", "voting_start", "voting_end",
	"lottery_enabled", "lottery_drawn", "lottery_winner_id",
	"created_at", "updated_at",
}

// albumColumns returns the album select list, each column prefixed.
func albumColumns(prefix string) string {
	cols := make([]string, len(albumColumnNames))
	for i, c := range albumColumnNames {
		cols[i] = prefix + c
	}
	return strings.Join(cols, ", ")
}

const summaryCounts = `
	(SELECT COUNT(*) FROM votes v WHERE v.album_id = a.id),
	(SELECT COUNT(*) FROM lottery_participants lp WHERE lp.album_id = a.id)`

func scanAlbum(row rowScanner, extra ...any) (models.Album, error) {
	var (
		a                            models.Album
		description, cover, winnerID sql.NullString
		start, end                   sql.NullInt64
		createdAt, updatedAt         int64
	)

	dest := []any{
		&a.ID, &a.ImmichID, &a.Title, &description, &a.AssetCount, &cover,
		&a.IsVisible, &a.VotingEnabled, &start, &end,
		&a.LotteryEnabled, &a.LotteryDrawn, &winnerID,
		&createdAt, &updatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return models.Album{}, err
	}

	a.Description = stringPtr(description)
	a.CoverAssetID = stringPtr(cover)
	a.VotingStart = timePtr(start)
	a.VotingEnd = timePtr(end)
	a.LotteryWinnerID = stringPtr(winnerID)
	a.CreatedAt = fromMillis(createdAt)
	a.UpdatedAt = fromMillis(updatedAt)
	return a, nil
}

func getAlbum(ctx context.Context, q queryer, id string) (models.Album, error) {
	album, err := scanAlbum(q.QueryRowContext(ctx,
		`SELECT `+albumColumns("")+` FROM albums WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Album{}, voting.ErrNotFound
	}
	if err != nil {
		return models.Album{}, fmt.Errorf("failed to query album: %w", err)
	}
	return album, nil
}

// GetAlbum returns an album regardless of visibility.
func (s *Store) GetAlbum(ctx context.Context, id string) (models.Album, error) {
	return getAlbum(ctx, s.db, id)
}

// GetVisibleAlbum returns an album only if it is shown to voters.
// Hidden albums are reported as not found.
func (s *Store) GetVisibleAlbum(ctx context.Context, id string) (models.Album, error) {
	album, err := getAlbum(ctx, s.db, id)
	if err != nil {
		return models.Album{}, err
	}
	if !album.IsVisible {
		return models.Album{}, voting.ErrNotFound
	}
	return album, nil
}

// ListVisibleAlbums returns the albums shown to voters, most recently updated first.
func (s *Store) ListVisibleAlbums(ctx context.Context) ([]models.Album, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+albumColumns("")+`
		FROM albums
		WHERE is_visible = TRUE
		ORDER BY updated_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query albums: %w", err)
	}
	defer rows.Close()

	albums := []models.Album{}
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan album: %w", err)
		}
		albums = append(albums, album)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate albums: %w", err)
	}

	return albums, nil
}

func scanSummary(row rowScanner) (models.AlbumSummary, error) {
	var summary models.AlbumSummary
	album, err := scanAlbum(row, &summary.VoteCount, &summary.LotteryCount)
	if err != nil {
		return models.AlbumSummary{}, err
	}
	summary.Album = album
	return summary, nil
}

// ListAlbumSummaries returns every album with its vote and participant counts.
func (s *Store) ListAlbumSummaries(ctx context.Context) ([]models.AlbumSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+albumColumns("a.")+`,`+summaryCounts+`
		FROM albums a
		ORDER BY a.updated_at DESC, a.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query album summaries: %w", err)
	}
	defer rows.Close()

	summaries := []models.AlbumSummary{}
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan album summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate album summaries: %w", err)
	}

	return summaries, nil
}

// GetAlbumSummary returns one album with its counters.
func (s *Store) GetAlbumSummary(ctx context.Context, id string) (models.AlbumSummary, error) {
	summary, err := scanSummary(s.db.QueryRowContext(ctx, `
		SELECT `+albumColumns("a.")+`,`+summaryCounts+`
		FROM albums a
		WHERE a.id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.AlbumSummary{}, voting.ErrNotFound
	}
	if err != nil {
		return models.AlbumSummary{}, fmt.Errorf("failed to query album summary: %w", err)
	}
	return summary, nil
}

// PatchAlbum applies the fields present in patch and returns the updated album.
// The resulting window must not end before it starts.
func (s *Store) PatchAlbum(ctx context.Context, id string, patch models.AlbumPatch) (models.Album, error) {
	if patch.IsEmpty() {
		return models.Album{}, fmt.Errorf("%w: no fields to update", voting.ErrValidation)
	}

	var updated models.Album
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		album, err := getAlbum(ctx, tx, id)
		if err != nil {
			return err
		}

		if patch.IsVisible != nil {
			album.IsVisible = *patch.IsVisible
		}
		if patch.VotingEnabled != nil {
			album.VotingEnabled = *patch.VotingEnabled
		}
		if patch.VotingStart.Set {
			album.VotingStart = patch.VotingStart.Time
		}
		if patch.VotingEnd.Set {
			album.VotingEnd = patch.VotingEnd.Time
		}
		if patch.LotteryEnabled != nil {
			album.LotteryEnabled = *patch.LotteryEnabled
		}

		if album.VotingStart != nil && album.VotingEnd != nil && album.VotingEnd.Before(*album.VotingStart) {
			return fmt.Errorf("%w: voting_end is before voting_start", voting.ErrValidation)
		}

		album.UpdatedAt = fromMillis(toMillis(s.Now()))
		_, err = tx.ExecContext(ctx, `
			UPDATE albums
			SET is_visible = $1, voting_enabled = $2, voting_start = $3, voting_end = $4,
			    lottery_enabled = $5, updated_at = $6
			WHERE id = $7
		`, album.IsVisible, album.VotingEnabled, nullMillis(album.VotingStart), nullMillis(album.VotingEnd),
			album.LotteryEnabled, toMillis(album.UpdatedAt), id)
		if err != nil {
			return fmt.Errorf("failed to update album: %w", err)
		}

		updated = album
		return nil
	})
	if err != nil {
		return models.Album{}, err
	}

	return updated, nil
}

// UpsertAlbums inserts new albums and refreshes the library metadata of known
// ones, matched by immich_id. Voting and lottery settings are left untouched.
func (s *Store) UpsertAlbums(ctx context.Context, albums []models.SyncedAlbum) (int, error) {
	now := toMillis(s.Now())

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, a := range albums {
			var description, cover sql.NullString
			if a.Description != nil {
				description = nullString(*a.Description)
			}
			if a.CoverAssetID != nil {
				cover = nullString(*a.CoverAssetID)
			}

			_, err := tx.ExecContext(ctx, `
				INSERT INTO albums (id, immich_id, title, description, asset_count, cover_asset_id, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				ON CONFLICT (immich_id) DO UPDATE SET
					title = excluded.title,
					description = excluded.description,
					asset_count = excluded.asset_count,
					cover_asset_id = excluded.cover_asset_id,
					updated_at = excluded.updated_at
			`, uuid.NewString(), a.ImmichID, a.Title, description, a.AssetCount, cover, now, now)
			if err != nil {
				return fmt.Errorf("failed to upsert album %s: %w", a.ImmichID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(albums), nil
}
