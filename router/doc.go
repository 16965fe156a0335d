// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the photos-voting API.

# Route Registration

NewRouter builds the handler tree and wraps it with request metrics:

	reg := metrics.NewRegistry()
	h := router.NewRouter(store, cfg, immichClient, reg, router.Options{})

# Endpoints

Health and metrics:

	GET /health  - 200 when the database answers; the body reads
	               "DEGRADED: immich unavailable" while the Immich breaker is open
	GET /metrics - Prometheus exposition

Albums and voting (public):

	GET  /api/albums              - Visible albums
	GET  /api/albums/{id}         - Album and voting status
	GET  /api/albums/{id}/assets  - Photos of the album
	GET  /api/albums/{id}/stats   - Leaderboard
	POST /api/albums/{id}/votes   - Submit a vote (rate limited)
	GET  /api/albums/{id}/votes   - This browser's vote

Image proxy (public):

	GET /api/proxy/thumbnail/{assetId}?size=thumbnail|preview
	GET /api/proxy/original/{assetId}

Admin (admin_token cookie):

	POST  /api/admin/login              - Start a session (rate limited)
	POST  /api/admin/logout             - End it
	GET   /api/admin/albums             - Albums with counters
	GET   /api/admin/albums/{id}        - One album with counters
	PATCH /api/admin/albums/{id}        - Edit visibility, window, lottery
	GET   /api/admin/albums/{id}/votes  - Raw votes
	POST  /api/admin/sync               - Pull albums from Immich
	GET   /api/admin/lottery/{id}       - Participants
	POST  /api/admin/lottery/{id}       - Draw the winner

Vote submission and login each get their own per-IP token bucket, sized by
Config.RateLimitPerSecond and Config.RateLimitBurst.
*/
package router
