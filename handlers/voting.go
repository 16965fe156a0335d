// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/twocans72/photos-voting/auth"
	"github.com/twocans72/photos-voting/cliparse"
	"github.com/twocans72/photos-voting/db"
	"github.com/twocans72/photos-voting/metrics"
	"github.com/twocans72/photos-voting/middleware"
	"github.com/twocans72/photos-voting/models"
	"github.com/twocans72/photos-voting/voting"
)

// voteCookieMaxAge keeps the session for a year
const voteCookieMaxAge = 365 * 24 * 60 * 60

// VoteCookieName is the cookie holding a browser's session token for an album.
func VoteCookieName(albumID string) string {
	return "vote_" + albumID
}

type VotingHandler struct {
	store   *db.Store
	cfg     cliparse.Config
	ips     *middleware.IPResolver
	metrics *metrics.VoteMetrics
}

func NewVotingHandler(store *db.Store, cfg cliparse.Config, m *metrics.VoteMetrics) *VotingHandler {
	return &VotingHandler{
		store:   store,
		cfg:     cfg,
		ips:     middleware.NewIPResolver(cfg.TrustedProxyPrefixes()),
		metrics: m,
	}
}

// SubmitVote handles POST /api/albums/{id}/votes
// The session token comes from the album's vote cookie; a new one is issued
// when the browser has none.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")

	// Parse request
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		h.metrics.VotesSubmitted.WithLabelValues(metrics.ResultInvalid).Inc()
		middleware.ErrorCodeResponse(w, http.StatusBadRequest, models.CodeValidation, "Invalid JSON")
		return
	}

	sessionToken := ""
	if c, err := r.Cookie(VoteCookieName(albumID)); err == nil {
		sessionToken = c.Value
	}
	if sessionToken == "" {
		token, err := auth.GenerateSessionToken()
		if err != nil {
			writeError(w, err, "generate session token")
			return
		}
		sessionToken = token
	}

	receipt, err := h.store.SubmitVote(r.Context(), models.SubmitVoteParams{
		AlbumID:      albumID,
		SessionToken: sessionToken,
		Rank1:        req.Rank1,
		Rank2:        req.Rank2,
		Rank3:        req.Rank3,
		Email:        req.Email,
		Name:         req.Name,
		IPHash:       auth.HashIP(h.ips.ClientIP(r), h.cfg.IPHashSalt),
	})
	if err != nil {
		h.metrics.VotesSubmitted.WithLabelValues(voteResult(err)).Inc()
		writeError(w, err, "submit vote", "album_id", albumID)
		return
	}

	h.metrics.VotesSubmitted.WithLabelValues(metrics.ResultAccepted).Inc()
	if receipt.LotteryEntered {
		h.metrics.LotteryEntries.Inc()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     VoteCookieName(albumID),
		Value:    sessionToken,
		Path:     "/",
		MaxAge:   voteCookieMaxAge,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	slog.Info("vote submitted", "album_id", albumID, "vote_id", receipt.Vote.ID, "lottery_entered", receipt.LotteryEntered)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		Success:      true,
		SessionToken: sessionToken,
	})
}

func voteResult(err error) string {
	switch {
	case errors.Is(err, voting.ErrDuplicateVote):
		return metrics.ResultDuplicate
	case errors.Is(err, voting.ErrWindowClosed):
		return metrics.ResultClosed
	case errors.Is(err, voting.ErrValidation), errors.Is(err, voting.ErrNotFound):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}

// GetMyVote handles GET /api/albums/{id}/votes
// Reports whether this browser has voted in the album and, if so, how.
func (h *VotingHandler) GetMyVote(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")

	c, err := r.Cookie(VoteCookieName(albumID))
	if err != nil || c.Value == "" {
		middleware.JSONResponse(w, http.StatusOK, models.MyVoteResponse{Voted: false})
		return
	}

	vote, found, err := h.store.VoteForSession(r.Context(), albumID, c.Value)
	if err != nil {
		writeError(w, err, "get vote", "album_id", albumID)
		return
	}
	if !found {
		middleware.JSONResponse(w, http.StatusOK, models.MyVoteResponse{Voted: false})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MyVoteResponse{Voted: true, Vote: &vote})
}
