// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# CORS Middleware

Enable cross-origin requests for a frontend served from another origin:

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigins)(mux),
	}

Only origins in the list are reflected, with credentials allowed, so the vote
and admin_token cookies travel with their requests. Preflights from other
origins get 403 and their regular requests get no CORS headers. Requests
without an Origin header pass through untouched.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorCodeResponse(w, http.StatusConflict, models.CodeDuplicateVote, "already voted")

Parse JSON request bodies:

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorCodeResponse(w, http.StatusBadRequest, models.CodeValidation, "Invalid JSON")
		return
	}

# Client IP Extraction

An IPResolver finds the client address. Forwarding headers are only read
when the direct peer is a trusted proxy, and then the right-most
X-Forwarded-For hop that is not a trusted proxy wins:

	ips := middleware.NewIPResolver(cfg.TrustedProxyPrefixes())
	ip := ips.ClientIP(r)

Used for IP hashing of votes and as the rate limiter key.

# Rate Limiting

A token bucket per client IP (golang.org/x/time/rate), applied to vote
submission and admin login:

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst, clock, ips)
	mux.HandleFunc("POST /api/admin/login", limiter.Limit(h.Login))

Rejected requests get 429 with code rate_limited and a Retry-After header.
Buckets idle for ten minutes are dropped.

Bodies passed to ParseJSONBody are capped at 1 MiB.
*/
package middleware
