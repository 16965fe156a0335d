// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/twocans72/photos-voting/db"
	"github.com/twocans72/photos-voting/metrics"
	"github.com/twocans72/photos-voting/middleware"
	"github.com/twocans72/photos-voting/models"
	"github.com/twocans72/photos-voting/voting"
)

type LotteryHandler struct {
	store   *db.Store
	src     voting.Source
	metrics *metrics.LotteryMetrics
}

// NewLotteryHandler uses src to pick winners; nil means voting.DefaultSource.
func NewLotteryHandler(store *db.Store, src voting.Source, m *metrics.LotteryMetrics) *LotteryHandler {
	if src == nil {
		src = voting.DefaultSource
	}
	return &LotteryHandler{store: store, src: src, metrics: m}
}

// ListParticipants handles GET /api/admin/lottery/{id}
func (h *LotteryHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")

	if _, err := h.store.GetAlbum(r.Context(), albumID); err != nil {
		writeError(w, err, "get album", "album_id", albumID)
		return
	}

	participants, err := h.store.ListParticipants(r.Context(), albumID)
	if err != nil {
		writeError(w, err, "list participants", "album_id", albumID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, participants)
}

// Draw handles POST /api/admin/lottery/{id}
// Draws the album's single winner. A second draw fails with already_drawn.
func (h *LotteryHandler) Draw(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")

	winner, err := h.store.DrawWinner(r.Context(), albumID, h.src)
	if err != nil {
		h.metrics.Draws.WithLabelValues(drawResult(err)).Inc()
		writeError(w, err, "draw winner", "album_id", albumID)
		return
	}

	h.metrics.Draws.WithLabelValues("drawn").Inc()
	slog.Info("lottery drawn", "album_id", albumID, "participant_id", winner.ID)

	middleware.JSONResponse(w, http.StatusOK, models.DrawResponse{Winner: winner})
}

func drawResult(err error) string {
	switch {
	case errors.Is(err, voting.ErrAlreadyDrawn):
		return "already_drawn"
	case errors.Is(err, voting.ErrNoParticipants):
		return "no_participants"
	case errors.Is(err, voting.ErrLotteryNotEnabled):
		return "not_enabled"
	case errors.Is(err, voting.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
