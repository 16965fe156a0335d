// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/twocans72/photos-voting/auth"
	"github.com/twocans72/photos-voting/cliparse"
	"github.com/twocans72/photos-voting/db"
	"github.com/twocans72/photos-voting/metrics"
	"github.com/twocans72/photos-voting/middleware"
	"github.com/twocans72/photos-voting/models"
)

// AdminCookieName holds the admin session token
const AdminCookieName = "admin_token"

type AdminHandler struct {
	store   *db.Store
	cfg     cliparse.Config
	immich  ImmichClient
	ips     *middleware.IPResolver
	metrics *metrics.SyncMetrics
}

func NewAdminHandler(store *db.Store, cfg cliparse.Config, client ImmichClient, m *metrics.SyncMetrics) *AdminHandler {
	return &AdminHandler{
		store:   store,
		cfg:     cfg,
		immich:  client,
		ips:     middleware.NewIPResolver(cfg.TrustedProxyPrefixes()),
		metrics: m,
	}
}

func (h *AdminHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     AdminCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorCodeResponse(w, http.StatusBadRequest, models.CodeValidation, "Invalid JSON")
		return
	}

	ok, err := h.store.VerifyAdmin(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err, "verify admin")
		return
	}
	if !ok {
		slog.Warn("admin login failed", "username", req.Username, "remote", h.ips.ClientIP(r))
		middleware.ErrorCodeResponse(w, http.StatusUnauthorized, models.CodeUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.GenerateAdminToken()
	if err != nil {
		writeError(w, err, "generate admin token")
		return
	}
	if _, err := h.store.CreateAdminSession(r.Context(), token, h.cfg.AdminSessionTTL); err != nil {
		writeError(w, err, "create admin session")
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(h.cfg.AdminSessionTTL.Seconds())))
	slog.Info("admin logged in", "username", req.Username)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Logout handles POST /api/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(AdminCookieName); err == nil && c.Value != "" {
		if err := h.store.DeleteAdminSession(r.Context(), c.Value); err != nil {
			writeError(w, err, "delete admin session")
			return
		}
	}

	http.SetCookie(w, h.sessionCookie("", -1))
	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// RequireAdmin rejects requests without a valid admin session cookie.
func (h *AdminHandler) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(AdminCookieName)
		if err != nil || c.Value == "" {
			middleware.ErrorCodeResponse(w, http.StatusUnauthorized, models.CodeUnauthorized, "Admin session required")
			return
		}

		ok, err := h.store.ValidateAdminSession(r.Context(), c.Value)
		if err != nil {
			writeError(w, err, "validate admin session")
			return
		}
		if !ok {
			middleware.ErrorCodeResponse(w, http.StatusUnauthorized, models.CodeUnauthorized, "Admin session expired")
			return
		}

		next(w, r)
	}
}

// ListAlbums handles GET /api/admin/albums
func (h *AdminHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.store.ListAlbumSummaries(r.Context())
	if err != nil {
		writeError(w, err, "list album summaries")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, summaries)
}

// GetAlbum handles GET /api/admin/albums/{id}
func (h *AdminHandler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")

	summary, err := h.store.GetAlbumSummary(r.Context(), albumID)
	if err != nil {
		writeError(w, err, "get album summary", "album_id", albumID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, summary)
}

// PatchAlbum handles PATCH /api/admin/albums/{id}
// Only the fields present in the body change; null clears a window bound.
func (h *AdminHandler) PatchAlbum(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")

	var patch models.AlbumPatch
	if err := middleware.ParseJSONBody(r, &patch); err != nil {
		middleware.ErrorCodeResponse(w, http.StatusBadRequest, models.CodeValidation, "Invalid JSON: "+err.Error())
		return
	}

	album, err := h.store.PatchAlbum(r.Context(), albumID, patch)
	if err != nil {
		writeError(w, err, "patch album", "album_id", albumID)
		return
	}

	slog.Info("album updated",
		"album_id", albumID,
		"is_visible", album.IsVisible,
		"voting_enabled", album.VotingEnabled,
		"lottery_enabled", album.LotteryEnabled,
	)

	middleware.JSONResponse(w, http.StatusOK, album)
}

// ListVotes handles GET /api/admin/albums/{id}/votes
func (h *AdminHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")

	if _, err := h.store.GetAlbum(r.Context(), albumID); err != nil {
		writeError(w, err, "get album", "album_id", albumID)
		return
	}

	votes, err := h.store.ListVotes(r.Context(), albumID)
	if err != nil {
		writeError(w, err, "list votes", "album_id", albumID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, votes)
}

// Sync handles POST /api/admin/sync
// Pulls the album list from Immich and upserts it. Voting settings of
// existing albums are kept.
func (h *AdminHandler) Sync(w http.ResponseWriter, r *http.Request) {
	remote, err := h.immich.ListAlbums(r.Context())
	if err != nil {
		h.metrics.Runs.WithLabelValues("immich_error").Inc()
		writeImmichError(w, err, "list immich albums")
		return
	}

	synced := make([]models.SyncedAlbum, 0, len(remote))
	for _, a := range remote {
		synced = append(synced, a.Synced())
	}

	n, err := h.store.UpsertAlbums(r.Context(), synced)
	if err != nil {
		h.metrics.Runs.WithLabelValues("db_error").Inc()
		writeError(w, err, "upsert albums")
		return
	}

	h.metrics.Runs.WithLabelValues("ok").Inc()
	h.metrics.AlbumsSynced.Set(float64(n))
	slog.Info("albums synced", "count", n)

	middleware.JSONResponse(w, http.StatusOK, models.SyncResponse{Synced: n})
}
