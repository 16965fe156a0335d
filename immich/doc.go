// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package immich is a small client for the Immich photo server.

Only the calls the voting service needs are implemented:

	c := immich.New(cfg.ImmichURL, cfg.ImmichAPIKey)
	albums, err := c.ListAlbums(ctx)       // GET /api/albums
	album, err := c.GetAlbum(ctx, id)      // GET /api/albums/{id}?withoutAssets=false
	img, err := c.Thumbnail(ctx, id, immich.SizePreview)
	img, err := c.Original(ctx, id)

Requests carry the API key in the x-api-key header.

# Circuit Breaker

Every call runs through a github.com/sony/gobreaker breaker. Five consecutive
failures open it for thirty seconds (see WithBreaker); while open, calls fail
fast with ErrUnavailable. A 404 from Immich is reported as ErrNotFound and
does not count as a failure.
*/
package immich
