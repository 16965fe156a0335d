// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/twocans72/photos-voting/cliparse"
	"github.com/twocans72/photos-voting/db"
	"github.com/twocans72/photos-voting/handlers"
	"github.com/twocans72/photos-voting/metrics"
	"github.com/twocans72/photos-voting/middleware"
	"github.com/twocans72/photos-voting/voting"
)

// Options carries the optional collaborators of the router.
type Options struct {
	// Clock drives the rate limiters. Defaults to the wall clock.
	Clock clockwork.Clock
	// LotterySource picks lottery winners. Defaults to voting.DefaultSource.
	LotterySource voting.Source
}

func NewRouter(store *db.Store, cfg cliparse.Config, client handlers.ImmichClient, reg *prometheus.Registry, opts Options) http.Handler {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	mux := http.NewServeMux()
	m := metrics.New(reg)

	// Initialize handlers
	albumHandler := handlers.NewAlbumHandler(store, client)
	votingHandler := handlers.NewVotingHandler(store, cfg, m.Votes)
	proxyHandler := handlers.NewProxyHandler(client)
	adminHandler := handlers.NewAdminHandler(store, cfg, client, m.Sync)
	lotteryHandler := handlers.NewLotteryHandler(store, opts.LotterySource, m.Lottery)

	// Votes and logins draw from separate buckets
	ips := middleware.NewIPResolver(cfg.TrustedProxyPrefixes())
	voteLimiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst, opts.Clock, ips)
	loginLimiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst, opts.Clock, ips)

	admin := adminHandler.RequireAdmin

	// Health check
	// Immich being down degrades browsing but voting keeps working
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		if !client.Available() {
			w.Write([]byte("DEGRADED: immich unavailable"))
			return
		}
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler(reg))

	// Albums and voting (public)
	mux.HandleFunc("GET /api/albums", middleware.WithLogging(albumHandler.ListAlbums))
	mux.HandleFunc("GET /api/albums/{id}", middleware.WithLogging(albumHandler.GetAlbum))
	mux.HandleFunc("GET /api/albums/{id}/assets", middleware.WithLogging(albumHandler.GetAssets))
	mux.HandleFunc("GET /api/albums/{id}/stats", middleware.WithLogging(albumHandler.GetStats))
	mux.HandleFunc("POST /api/albums/{id}/votes", middleware.WithLogging(voteLimiter.Limit(votingHandler.SubmitVote)))
	mux.HandleFunc("GET /api/albums/{id}/votes", middleware.WithLogging(votingHandler.GetMyVote))

	// Image proxy (public)
	mux.HandleFunc("GET /api/proxy/thumbnail/{assetId}", proxyHandler.Thumbnail)
	mux.HandleFunc("GET /api/proxy/original/{assetId}", proxyHandler.Original)

	// Admin session
	mux.HandleFunc("POST /api/admin/login", middleware.WithLogging(loginLimiter.Limit(adminHandler.Login)))
	mux.HandleFunc("POST /api/admin/logout", middleware.WithLogging(adminHandler.Logout))

	// Admin operations (cookie session)
	mux.HandleFunc("GET /api/admin/albums", middleware.WithLogging(admin(adminHandler.ListAlbums)))
	mux.HandleFunc("GET /api/admin/albums/{id}", middleware.WithLogging(admin(adminHandler.GetAlbum)))
	mux.HandleFunc("PATCH /api/admin/albums/{id}", middleware.WithLogging(admin(adminHandler.PatchAlbum)))
	mux.HandleFunc("GET /api/admin/albums/{id}/votes", middleware.WithLogging(admin(adminHandler.ListVotes)))
	mux.HandleFunc("POST /api/admin/sync", middleware.WithLogging(admin(adminHandler.Sync)))
	mux.HandleFunc("GET /api/admin/lottery/{id}", middleware.WithLogging(admin(lotteryHandler.ListParticipants)))
	mux.HandleFunc("POST /api/admin/lottery/{id}", middleware.WithLogging(admin(lotteryHandler.Draw)))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("photos-voting API v1"))
	})

	return m.HTTP.Middleware(mux)
}
