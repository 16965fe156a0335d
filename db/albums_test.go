package db_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twocans72/photos-voting/models"
	"github.com/twocans72/photos-voting/testutil"
	"github.com/twocans72/photos-voting/voting"
)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func TestGetVisibleAlbum(t *testing.T) {
	ctx := context.Background()
	store, conn, _ := testutil.NewTestStore(t)
	visible := testutil.CreateTestAlbum(t, conn, testutil.AlbumOptions{})
	hidden := testutil.CreateTestAlbum(t, conn, testutil.AlbumOptions{Hidden: true})

	album, err := store.GetVisibleAlbum(ctx, visible)
	require.NoError(t, err)
	assert.Equal(t, visible, album.ID)
	assert.True(t, album.VotingEnabled)
	assert.Nil(t, album.VotingStart)
	assert.Nil(t, album.LotteryWinnerID)

	_, err = store.GetVisibleAlbum(ctx, hidden)
	require.ErrorIs(t, err, voting.ErrNotFound)

	// Admins still see it
	album, err = store.GetAlbum(ctx, hidden)
	require.NoError(t, err)
	assert.False(t, album.IsVisible)

	_, err = store.GetAlbum(ctx, "missing")
	require.ErrorIs(t, err, voting.ErrNotFound)

	albums, err := store.ListVisibleAlbums(ctx)
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, visible, albums[0].ID)
}

func TestPatchAlbum(t *testing.T) {
	ctx := context.Background()
	store, conn, clock := testutil.NewTestStore(t)
	albumID := testutil.CreateTestAlbum(t, conn, testutil.AlbumOptions{Hidden: true, VotingDisabled: true})

	var patch models.AlbumPatch
	require.NoError(t, json.Unmarshal([]byte(`{
		"is_visible": true,
		"voting_enabled": true,
		"voting_start": "2025-06-01T13:00:00Z",
		"voting_end": "2025-06-02T13:00"
	}`), &patch))

	clock.Advance(time.Minute)
	album, err := store.PatchAlbum(ctx, albumID, patch)
	require.NoError(t, err)

	assert.True(t, album.IsVisible)
	assert.True(t, album.VotingEnabled)
	assert.False(t, album.LotteryEnabled)
	require.NotNil(t, album.VotingStart)
	require.NotNil(t, album.VotingEnd)
	assert.True(t, album.VotingStart.Equal(time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)))
	assert.True(t, album.VotingEnd.Equal(time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)))
	assert.True(t, album.UpdatedAt.Equal(testutil.Epoch.Add(time.Minute)))

	stored, err := store.GetAlbum(ctx, albumID)
	require.NoError(t, err)
	assert.True(t, stored.IsVisible)
	require.NotNil(t, stored.VotingEnd)
	assert.True(t, stored.VotingEnd.Equal(*album.VotingEnd))
	assert.True(t, stored.UpdatedAt.Equal(album.UpdatedAt))

	// Absent fields are left alone; null clears a bound
	patch = models.AlbumPatch{}
	require.NoError(t, json.Unmarshal([]byte(`{"voting_end": null, "lottery_enabled": true}`), &patch))
	album, err = store.PatchAlbum(ctx, albumID, patch)
	require.NoError(t, err)

	assert.True(t, album.IsVisible)
	assert.True(t, album.LotteryEnabled)
	require.NotNil(t, album.VotingStart)
	assert.Nil(t, album.VotingEnd)
}

func TestPatchAlbumErrors(t *testing.T) {
	ctx := context.Background()
	store, conn, _ := testutil.NewTestStore(t)

	end := testutil.Epoch.Add(time.Hour)
	albumID := testutil.CreateTestAlbum(t, conn, testutil.AlbumOptions{End: &end})

	_, err := store.PatchAlbum(ctx, albumID, models.AlbumPatch{})
	require.ErrorIs(t, err, voting.ErrValidation)

	_, err = store.PatchAlbum(ctx, "missing", models.AlbumPatch{IsVisible: boolPtr(true)})
	require.ErrorIs(t, err, voting.ErrNotFound)

	// A start after the stored end is rejected
	start := testutil.Epoch.Add(2 * time.Hour)
	_, err = store.PatchAlbum(ctx, albumID, models.AlbumPatch{
		IsVisible:   boolPtr(false),
		VotingStart: models.OptionalTime{Set: true, Time: &start},
	})
	require.ErrorIs(t, err, voting.ErrValidation)

	// and nothing was written
	album, err := store.GetAlbum(ctx, albumID)
	require.NoError(t, err)
	assert.True(t, album.IsVisible)
	assert.Nil(t, album.VotingStart)
}

func TestUpsertAlbums(t *testing.T) {
	ctx := context.Background()
	store, _, clock := testutil.NewTestStore(t)

	synced := []models.SyncedAlbum{
		{ImmichID: "immich-1", Title: "Summer", AssetCount: 10, CoverAssetID: strPtr("cover-1")},
		{ImmichID: "immich-2", Title: "Winter", Description: strPtr("Snow"), AssetCount: 4},
	}
	n, err := store.UpsertAlbums(ctx, synced)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	summaries, err := store.ListAlbumSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byImmich := map[string]models.AlbumSummary{}
	for _, s := range summaries {
		byImmich[s.ImmichID] = s
	}
	summer := byImmich["immich-1"]
	assert.Equal(t, "Summer", summer.Title)
	assert.False(t, summer.IsVisible, "new albums start hidden")
	assert.False(t, summer.VotingEnabled)
	require.NotNil(t, summer.CoverAssetID)
	assert.Equal(t, "cover-1", *summer.CoverAssetID)

	// Nothing is shown to voters until an admin says so
	visible, err := store.ListVisibleAlbums(ctx)
	require.NoError(t, err)
	assert.Empty(t, visible)

	_, err = store.PatchAlbum(ctx, summer.ID, models.AlbumPatch{IsVisible: boolPtr(true), VotingEnabled: boolPtr(true)})
	require.NoError(t, err)

	clock.Advance(time.Hour)
	_, err = store.UpsertAlbums(ctx, []models.SyncedAlbum{
		{ImmichID: "immich-1", Title: "Summer 2025", AssetCount: 12},
	})
	require.NoError(t, err)

	album, err := store.GetAlbum(ctx, summer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer 2025", album.Title)
	assert.Equal(t, 12, album.AssetCount)
	assert.Nil(t, album.CoverAssetID)
	assert.True(t, album.IsVisible, "settings survive a sync")
	assert.True(t, album.VotingEnabled)
	assert.True(t, album.CreatedAt.Equal(testutil.Epoch))
	assert.True(t, album.UpdatedAt.Equal(testutil.Epoch.Add(time.Hour)))

	summaries, err = store.ListAlbumSummaries(ctx)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
}

func TestGetAlbumSummaryCounts(t *testing.T) {
	ctx := context.Background()
	store, conn, _ := testutil.NewTestStore(t)
	albumID := testutil.CreateTestAlbum(t, conn, testutil.AlbumOptions{LotteryEnabled: true})

	testutil.SubmitTestVote(t, store, albumID, "s1", "a@example.com", "x")
	testutil.SubmitTestVote(t, store, albumID, "s2", "", "y")
	testutil.SubmitTestVote(t, store, albumID, "s3", "b@example.com", "x")

	summary, err := store.GetAlbumSummary(ctx, albumID)
	require.NoError(t, err)
	assert.Equal(t, albumID, summary.ID)
	assert.Equal(t, 3, summary.VoteCount)
	assert.Equal(t, 2, summary.LotteryCount)

	_, err = store.GetAlbumSummary(ctx, "missing")
	require.ErrorIs(t, err, voting.ErrNotFound)
}
