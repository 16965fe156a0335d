// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"

	"github.com/twocans72/photos-voting/db"
	"github.com/twocans72/photos-voting/immich"
	"github.com/twocans72/photos-voting/middleware"
	"github.com/twocans72/photos-voting/models"
	"github.com/twocans72/photos-voting/voting"
)

// ImmichClient is the part of the Immich API the handlers need.
type ImmichClient interface {
	ListAlbums(ctx context.Context) ([]immich.Album, error)
	GetAlbum(ctx context.Context, albumID string) (immich.Album, error)
	Thumbnail(ctx context.Context, assetID, size string) (*immich.Image, error)
	Original(ctx context.Context, assetID string) (*immich.Image, error)
	// Available is false while calls are short-circuited.
	Available() bool
}

type AlbumHandler struct {
	store  *db.Store
	immich ImmichClient
}

func NewAlbumHandler(store *db.Store, client ImmichClient) *AlbumHandler {
	return &AlbumHandler{store: store, immich: client}
}

// ListAlbums handles GET /api/albums
func (h *AlbumHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := h.store.ListVisibleAlbums(r.Context())
	if err != nil {
		writeError(w, err, "list albums")
		return
	}

	public := make([]models.PublicAlbum, 0, len(albums))
	for _, a := range albums {
		public = append(public, a.Public())
	}

	middleware.JSONResponse(w, http.StatusOK, public)
}

// GetAlbum handles GET /api/albums/{id}
// Returns the album and the current state of its voting window.
func (h *AlbumHandler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")

	album, err := h.store.GetVisibleAlbum(r.Context(), albumID)
	if err != nil {
		writeError(w, err, "get album", "album_id", albumID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AlbumDetailResponse{
		Album:        album.Public(),
		VotingStatus: voting.AlbumWindow(album, h.store.Now()),
	})
}

// GetAssets handles GET /api/albums/{id}/assets
// Lists the album's photos from Immich; videos are left out.
func (h *AlbumHandler) GetAssets(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")

	album, err := h.store.GetVisibleAlbum(r.Context(), albumID)
	if err != nil {
		writeError(w, err, "get album", "album_id", albumID)
		return
	}

	remote, err := h.immich.GetAlbum(r.Context(), album.ImmichID)
	if err != nil {
		writeImmichError(w, err, "fetch album assets", "album_id", albumID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, remote.ImageAssets())
}

// GetStats handles GET /api/albums/{id}/stats
func (h *AlbumHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")

	if _, err := h.store.GetVisibleAlbum(r.Context(), albumID); err != nil {
		writeError(w, err, "get album", "album_id", albumID)
		return
	}

	stats, err := h.store.ComputeStats(r.Context(), albumID)
	if err != nil {
		writeError(w, err, "compute stats", "album_id", albumID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}
